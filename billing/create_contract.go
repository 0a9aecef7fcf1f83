package billing

import (
	"context"
	"errors"
	"time"

	"encore.app/billing/model"
	temporal "encore.app/billing/workflow"
	"encore.dev/beta/errs"
	"encore.dev/rlog"
	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/client"
)

type CreateContractParams struct {
	ContractID string `json:"contract_id"`
	PlanType   string `json:"plan_type"`
	// StartDate is the calendar date the line begins service.
	StartDate time.Time `json:"start_date"`
	// EndDate is the committed term's end. Mandatory for TERM plans.
	EndDate *time.Time `json:"end_date,omitempty"`
	// PrepaidAmount is the up-front credit in dollars, e.g. "40.00".
	// Mandatory for PREPAID plans.
	PrepaidAmount  string `json:"prepaid_amount,omitempty"`
	IdempotencyKey string `header:"X-Idempotency-Key"`
}

type CreateContractResponse struct {
	ContractID string `json:"contract_id"`
	PlanType   string `json:"plan_type"`
	Status     string `json:"status"`
}

//encore:api public method=POST path=/contracts tag:idempotency
func (s *Service) CreateContract(ctx context.Context, params *CreateContractParams) (*CreateContractResponse, error) {
	if params.ContractID == "" {
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: "contract_id is a required field",
		}
	}
	planType, err := model.ToPlanType(params.PlanType)
	if err != nil {
		rlog.Error("failed to create contract, plan type is mandatory", "error", err, "contract_id", params.ContractID)
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: err.Error(),
		}
	}
	if params.StartDate.IsZero() {
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: "start_date is a required field",
		}
	}

	prepaidAmount := decimal.Zero
	switch planType {
	case model.FixedTerm:
		if params.EndDate == nil || !params.EndDate.After(params.StartDate) {
			return nil, &errs.Error{
				Code:    errs.InvalidArgument,
				Message: "end_date must be after start_date for plan=TERM",
			}
		}
	case model.Prepaid:
		if params.PrepaidAmount == "" {
			return nil, &errs.Error{
				Code:    errs.InvalidArgument,
				Message: "prepaid_amount is mandatory for plan=PREPAID",
			}
		}
		prepaidAmount, err = decimal.NewFromString(params.PrepaidAmount)
		if err != nil || prepaidAmount.Sign() <= 0 {
			return nil, &errs.Error{
				Code:    errs.InvalidArgument,
				Message: "prepaid_amount must be more than zero",
			}
		}
	}

	exists, err := s.db.IsContractExists(ctx, params.ContractID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &errs.Error{
			Code:    errs.InvalidArgument,
			Message: "duplicate contract id",
		}
	}

	req := &temporal.ContractLifecycleWorkflowRequest{
		ContractID:    params.ContractID,
		PlanType:      planType,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		PrepaidAmount: prepaidAmount,
	}

	_, err = s.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        temporal.ContractWorkflowID(params.ContractID),
		TaskQueue: temporal.ContractTaskQueue,
	}, temporal.ContractLifecycleWorkflow, req)
	if err != nil {
		rlog.Error("failed to start contract lifecycle workflow", "error", err, "contract_id", params.ContractID)
		return nil, errors.New("failed to start workflow: " + params.ContractID)
	}

	return &CreateContractResponse{
		ContractID: params.ContractID,
		PlanType:   string(planType),
		Status:     string(model.ContractStatusActive),
	}, nil
}
