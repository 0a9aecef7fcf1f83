package billing

import (
	"context"
	"database/sql"
	"errors"

	temporal "encore.app/billing/workflow"
	"encore.dev/beta/errs"
	"encore.dev/rlog"
	"go.temporal.io/api/serviceerror"
)

type AdvanceMonthParams struct {
	Month          int    `json:"month"`
	Year           int    `json:"year"`
	IdempotencyKey string `header:"X-Idempotency-Key"`
}

type AdvanceMonthResponse struct {
	ContractID string `json:"contract_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

// AdvanceMonth opens a new billing month on a line. Every call billed after
// this lands on the new month's statement.
//
//encore:api public method=POST path=/contracts/:contractID/advance tag:idempotency
func (s *Service) AdvanceMonth(ctx context.Context, contractID string, params *AdvanceMonthParams) (*AdvanceMonthResponse, error) {
	if params.Month < 1 || params.Month > 12 {
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: "month must be between 1 and 12",
		}
	}
	if params.Year <= 0 {
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: "year must be positive",
		}
	}

	signal := temporal.NewMonthSignalRequest{
		ContractID: contractID,
		Month:      params.Month,
		Year:       params.Year,
	}
	workflowID := temporal.ContractWorkflowID(contractID)

	err := s.client.SignalWorkflow(ctx, workflowID, "", temporal.NewMonthSignal, signal)
	if err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) || errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.Error{
				Code:    errs.NotFound,
				Message: "contract not found or already cancelled",
			}
		}
		rlog.Error("failed to signal new month workflow", "error", err)
		return nil, err
	}

	return &AdvanceMonthResponse{
		ContractID: contractID,
		Month:      params.Month,
		Year:       params.Year,
	}, nil
}
