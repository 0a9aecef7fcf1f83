package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"encore.app/billing/dao"
	"encore.app/billing/model"
	temporal "encore.app/billing/workflow"
	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

type CancelContractParams struct {
	IdempotencyKey string `header:"X-Idempotency-Key"`
}

type CancelContractResponse struct {
	ContractID       string `json:"contract_id"`
	AmountDue        string `json:"amount_due"`
	DisplayAmountDue string `json:"display_amount_due"`
}

// CancelContract closes the line and reports the final amount owed,
// including any deposit refund or forfeited prepaid credit the plan applies.
//
//encore:api public method=POST path=/contracts/:contractID/cancel tag:idempotency
func (s *Service) CancelContract(ctx context.Context, contractID string, params *CancelContractParams) (*CancelContractResponse, error) {
	if contractID == "" {
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: "contractID is mandatory",
		}
	}

	// A cancelled line has no running workflow to wait on, so catch repeat
	// cancellations here rather than hanging on the workflow result below.
	status, err := s.db.GetContractStatus(ctx, contractID)
	if err != nil {
		if errors.Is(err, dao.ErrContractNotFound) {
			return nil, &errs.Error{
				Code:    errs.NotFound,
				Message: "contract not found",
			}
		}
		rlog.Error("failed to get contract status", "error", err, "contract_id", contractID)
		return nil, err
	}
	if status == model.ContractStatusCancelled {
		return nil, &errs.Error{
			Code:    errs.FailedPrecondition,
			Message: "contract already cancelled",
		}
	}

	workflowID := temporal.ContractWorkflowID(contractID)
	signal := temporal.CancelContractSignalRequest{
		ContractID: contractID,
	}

	// Signal the workflow to cancel the contract
	err = s.client.SignalWorkflow(ctx, workflowID, "", temporal.CancelSignal, signal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.Error{
				Code:    errs.NotFound,
				Message: "contract not found or already cancelled",
			}
		}
		rlog.Error("failed to signal workflow to cancel contract", "error", err, "contract_id", contractID)
		return nil, fmt.Errorf("failed to signal workflow: %w", err)
	}

	// Get a handle to the workflow run
	run := s.client.GetWorkflow(ctx, workflowID, "")

	// Wait for the workflow to complete and retrieve the final amount due
	var result temporal.CancelContractResponse
	err = run.Get(ctx, &result)
	if err != nil {
		rlog.Error("failed to get workflow result", "error", err, "contract_id", contractID)
		return nil, fmt.Errorf("failed to get workflow result: %w", err)
	}

	return &CancelContractResponse{
		ContractID:       result.ContractID,
		AmountDue:        result.AmountDue.String(),
		DisplayAmountDue: model.FormatAmount(result.AmountDue),
	}, nil
}
