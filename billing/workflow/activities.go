package temporal

import (
	"context"
	"errors"
	"fmt"

	"encore.app/billing/dao"
	"encore.app/billing/model"
	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/temporal"
)

const (
	contractCancelled = "ContractCancelledError"
	contractNotFound  = "ContractNotFoundError"
)

type Activities struct {
	DB dao.DB
}

func (a *Activities) CreateContract(ctx context.Context, req *ContractLifecycleWorkflowRequest) error {
	err := a.DB.CreateContract(ctx, req.ContractID, req.PlanType, req.StartDate, req.EndDate, req.PrepaidAmount)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (a *Activities) SaveStatement(ctx context.Context, statement model.Statement) error {
	err := a.DB.UpsertStatement(ctx, statement)
	if err != nil {
		return fmt.Errorf("failed to save statement: %w", err)
	}
	return nil
}

func (a *Activities) RecordCall(ctx context.Context, call model.CallRecord) error {
	err := a.DB.InsertCall(ctx, call)
	if err != nil {
		return fmt.Errorf("failed to record call: %w", err)
	}
	return nil
}

func (a *Activities) CloseContract(ctx context.Context, contractID string, amountDue decimal.Decimal) error {
	return a.DB.CloseContract(ctx, contractID, amountDue)
}

func (a *Activities) GetContractDetail(ctx context.Context, contractID string) (*model.ContractDetail, error) {
	detail, err := a.DB.GetContract(ctx, contractID)
	if err != nil {
		if errors.Is(err, dao.ErrContractNotFound) {
			return nil, temporal.NewNonRetryableApplicationError("contract not found", contractNotFound, err)
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return detail, nil
}
