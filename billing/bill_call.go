package billing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"encore.app/billing/contract"
	"encore.app/billing/model"
	"encore.app/billing/utils"
	temporal "encore.app/billing/workflow"
	"encore.dev/beta/errs"
	"encore.dev/rlog"
	"go.temporal.io/api/serviceerror"
)

type BillCallParams struct {
	// Duration of the call, e.g. "5m30s". Billed in whole minutes, rounded
	// up.
	Duration       utils.Duration `json:"duration"`
	IdempotencyKey string         `header:"X-Idempotency-Key"`
}

type BillCallResponse struct {
	CallID     string `json:"call_id"`
	ContractID string `json:"contract_id"`
	Minutes    int    `json:"minutes"`
}

//encore:api public method=POST path=/contracts/:contractID/calls tag:idempotency
func (s *Service) BillCall(ctx context.Context, contractID string, params *BillCallParams) (*BillCallResponse, error) {
	if params.Duration.Duration <= 0 {
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: "duration must be positive",
		}
	}
	signal := temporal.BillCallSignalRequest{
		ContractID:      contractID,
		CallID:          utils.UUID(),
		DurationSeconds: int(params.Duration.Duration / time.Second),
	}
	workflowID := temporal.ContractWorkflowID(contractID)

	err := s.client.SignalWorkflow(ctx, workflowID, "", temporal.BillCallSignal, signal)
	if err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) || errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.Error{
				Code:    errs.NotFound,
				Message: "contract not found or already cancelled",
			}
		}
		rlog.Error("failed to signal bill call workflow", "error", err)
		return nil, err
	}

	return &BillCallResponse{
		CallID:     signal.CallID,
		ContractID: contractID,
		Minutes:    contract.CallMinutes(model.Call{DurationSeconds: signal.DurationSeconds}),
	}, nil
}
