package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"encore.app/billing/dao"
	"encore.app/billing/model"
	temporal "encore.app/billing/workflow"
	"encore.dev/beta/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockStatementValue mimics the encoded value a workflow query returns.
type mockStatementValue struct {
	statement *model.Statement
}

func (v *mockStatementValue) Get(valPtr interface{}) error {
	if p, ok := valPtr.(**model.Statement); ok {
		*p = v.statement
	}
	return nil
}

func (v *mockStatementValue) HasValue() bool {
	return v.statement != nil
}

func TestGetContracts_Active(t *testing.T) {
	service, mockDB, mockTemporalClient := setup(t)

	params := &GetContractsParams{
		Status: "ACTIVE",
		Limit:  10,
	}

	contracts := []*model.ContractDetail{
		{
			ContractID: "test-contract-id",
			PlanType:   "MTM",
			Status:     "ACTIVE",
			StartDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt:  time.Now(),
		},
	}

	mockDB.On("GetContracts", mock.Anything, model.ContractStatusActive, params.Limit, mock.Anything).Return(contracts, false, nil)
	mockTemporalClient.On(
		"QueryWorkflow",
		mock.Anything,
		"contract-test-contract-id",
		"",
		temporal.QueryStatement,
		mock.Anything,
	).Return(&mockStatementValue{statement: &model.Statement{
		ContractID: "test-contract-id",
		Month:      1,
		Year:       2024,
		Plan:       "MTM",
		Total:      decimal.RequireFromString("50.50"),
	}}, nil)

	resp, err := service.GetContracts(context.Background(), params)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.False(t, resp.HasMore)
	assert.Len(t, resp.Contracts, 1)
	assert.Equal(t, "test-contract-id", resp.Contracts[0].ContractID)
	assert.Equal(t, "50.50", resp.Contracts[0].CurrentMonthTotal)
	assert.Empty(t, resp.Contracts[0].AmountDue)

	mockDB.AssertExpectations(t)
	mockTemporalClient.AssertExpectations(t)
}

func TestGetContracts_Cancelled(t *testing.T) {
	service, mockDB, _ := setup(t)

	params := &GetContractsParams{
		Status: "CANCELLED",
		Limit:  10,
	}

	cancelledAt := time.Now()
	amountDue := decimal.RequireFromString("-280")
	contracts := []*model.ContractDetail{
		{
			ContractID:  "cancelled-contract-id",
			PlanType:    "TERM",
			Status:      "CANCELLED",
			StartDate:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			CreatedAt:   time.Now(),
			CancelledAt: &cancelledAt,
			AmountDue:   &amountDue,
		},
	}

	// Cancelled lines are final: no live workflow query.
	mockDB.On("GetContracts", mock.Anything, model.ContractStatusCancelled, params.Limit, mock.Anything).Return(contracts, false, nil)

	resp, err := service.GetContracts(context.Background(), params)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Len(t, resp.Contracts, 1)
	assert.Equal(t, "cancelled-contract-id", resp.Contracts[0].ContractID)
	assert.Equal(t, "-280.00", resp.Contracts[0].AmountDue)
	assert.Empty(t, resp.Contracts[0].CurrentMonthTotal)

	mockDB.AssertExpectations(t)
}

func TestGetContracts_InvalidStatus(t *testing.T) {
	service, _, _ := setup(t)

	_, err := service.GetContracts(context.Background(), &GetContractsParams{Status: "FROZEN"})

	assert.Error(t, err)
	var errsErr *errs.Error
	assert.True(t, errors.As(err, &errsErr))
	assert.Equal(t, errs.InvalidArgument, errsErr.Code)
}

func TestGetContract_NotFound(t *testing.T) {
	service, mockDB, _ := setup(t)

	mockDB.On("GetContract", mock.Anything, "missing-contract").Return(nil, dao.ErrContractNotFound).Once()

	_, err := service.GetContract(context.Background(), "missing-contract")

	assert.Error(t, err)
	var errsErr *errs.Error
	assert.True(t, errors.As(err, &errsErr))
	assert.Equal(t, errs.NotFound, errsErr.Code)
	mockDB.AssertExpectations(t)
}

func TestGetContract_Success(t *testing.T) {
	service, mockDB, _ := setup(t)

	detail := &model.ContractDetail{
		ContractID: "test-contract-id",
		PlanType:   "MTM",
		Status:     "ACTIVE",
		StartDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	mockDB.On("GetContract", mock.Anything, "test-contract-id").Return(detail, nil).Once()

	got, err := service.GetContract(context.Background(), "test-contract-id")

	assert.NoError(t, err)
	assert.Equal(t, detail, got)
	mockDB.AssertExpectations(t)
}
