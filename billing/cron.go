package billing

import (
	"context"
	"time"

	temporal "encore.app/billing/workflow"
	"encore.dev/cron"
	"encore.dev/rlog"
)

// This cron job runs on the first day of every month to roll every active
// line over to the new billing month.
var _ = cron.NewJob("advance-monthly-billing", cron.JobConfig{
	Title:    "Advance Monthly Billing",
	Schedule: "0 0 1 * *",
	Endpoint: AdvanceMonthlyBilling,
})

// AdvanceMonthlyBilling is the cron job handler that signals a new billing
// month to every active contract.
//
//encore:api private
func AdvanceMonthlyBilling(ctx context.Context) error {
	s, err := initService()
	if err != nil {
		return err
	}

	now := time.Now()
	contractIDs, hasMore, err := s.db.GetActiveContractIDs(ctx, 10000, now)
	if err != nil {
		rlog.Error("failed to get active contract IDs", "error", err)
		return err
	}
	if hasMore {
		// TODO: page with the last row's created_at once a single region
		// holds more than 10k active lines.
		rlog.Error("too many active contracts for one cron run, some lines were not advanced")
	}

	for _, contractID := range contractIDs {
		workflowID := temporal.ContractWorkflowID(contractID)
		signal := temporal.NewMonthSignalRequest{
			ContractID: contractID,
			Month:      int(now.Month()),
			Year:       now.Year(),
		}
		err := s.client.SignalWorkflow(ctx, workflowID, "", temporal.NewMonthSignal, signal)
		if err != nil {
			rlog.Error("failed to signal new month", "error", err, "contract_id", contractID)
			// Continue to the next line even if one fails.
			continue
		}
	}

	return nil
}
