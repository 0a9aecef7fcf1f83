package billing

import (
	"context"
	"errors"
	"testing"

	"encore.app/billing/dao"
	"encore.app/billing/model"
	temporal "encore.app/billing/workflow"
	"encore.dev/beta/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCancelContract_MissingContractID(t *testing.T) {
	service, _, _ := setup(t)

	_, err := service.CancelContract(context.Background(), "", &CancelContractParams{})

	assert.Error(t, err)
	var errsErr *errs.Error
	assert.True(t, errors.As(err, &errsErr))
	assert.Equal(t, errs.InvalidArgument, errsErr.Code)
	assert.Equal(t, "contractID is mandatory", errsErr.Message)
}

func TestCancelContract_NotFound(t *testing.T) {
	service, mockDB, _ := setup(t)

	mockDB.On("GetContractStatus", mock.Anything, "missing-contract").
		Return(model.ContractStatus(""), dao.ErrContractNotFound).Once()

	_, err := service.CancelContract(context.Background(), "missing-contract", &CancelContractParams{})

	assert.Error(t, err)
	var errsErr *errs.Error
	assert.True(t, errors.As(err, &errsErr))
	assert.Equal(t, errs.NotFound, errsErr.Code)
	mockDB.AssertExpectations(t)
}

func TestCancelContract_AlreadyCancelled(t *testing.T) {
	service, mockDB, _ := setup(t)

	mockDB.On("GetContractStatus", mock.Anything, "closed-contract").
		Return(model.ContractStatusCancelled, nil).Once()

	_, err := service.CancelContract(context.Background(), "closed-contract", &CancelContractParams{})

	assert.Error(t, err)
	var errsErr *errs.Error
	assert.True(t, errors.As(err, &errsErr))
	assert.Equal(t, errs.FailedPrecondition, errsErr.Code)
	assert.Equal(t, "contract already cancelled", errsErr.Message)
	mockDB.AssertExpectations(t)
}

func TestCancelContract_SignalError(t *testing.T) {
	service, mockDB, mockTemporalClient := setup(t)
	signalErr := errors.New("temporal unavailable")

	mockDB.On("GetContractStatus", mock.Anything, "test-contract").
		Return(model.ContractStatusActive, nil).Once()
	mockTemporalClient.On(
		"SignalWorkflow",
		mock.Anything,
		temporal.ContractWorkflowID("test-contract"),
		"",
		temporal.CancelSignal,
		mock.Anything,
	).Return(signalErr).Once()

	_, err := service.CancelContract(context.Background(), "test-contract", &CancelContractParams{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to signal workflow")
	mockDB.AssertExpectations(t)
	mockTemporalClient.AssertExpectations(t)
}

func TestCancelContract_WorkflowResultError(t *testing.T) {
	service, mockDB, mockTemporalClient := setup(t)
	workflowID := temporal.ContractWorkflowID("test-contract")

	mockDB.On("GetContractStatus", mock.Anything, "test-contract").
		Return(model.ContractStatusActive, nil).Once()
	mockTemporalClient.On(
		"SignalWorkflow",
		mock.Anything,
		workflowID,
		"",
		temporal.CancelSignal,
		mock.Anything,
	).Return(nil).Once()
	mockTemporalClient.On("GetWorkflow", mock.Anything, workflowID, "").
		Return(&mockWorkflowRun{err: errors.New("workflow failed")}).Once()

	_, err := service.CancelContract(context.Background(), "test-contract", &CancelContractParams{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get workflow result")
	mockDB.AssertExpectations(t)
	mockTemporalClient.AssertExpectations(t)
}

func TestCancelContract_Success(t *testing.T) {
	service, mockDB, mockTemporalClient := setup(t)
	workflowID := temporal.ContractWorkflowID("test-contract")

	expectedSignal := temporal.CancelContractSignalRequest{
		ContractID: "test-contract",
	}
	workflowResult := temporal.CancelContractResponse{
		ContractID: "test-contract",
		AmountDue:  decimal.RequireFromString("50.5"),
	}

	mockDB.On("GetContractStatus", mock.Anything, "test-contract").
		Return(model.ContractStatusActive, nil).Once()
	mockTemporalClient.On(
		"SignalWorkflow",
		mock.Anything,
		workflowID,
		"",
		temporal.CancelSignal,
		expectedSignal,
	).Return(nil).Once()
	mockTemporalClient.On("GetWorkflow", mock.Anything, workflowID, "").
		Return(&mockWorkflowRun{result: workflowResult}).Once()

	resp, err := service.CancelContract(context.Background(), "test-contract", &CancelContractParams{})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, "test-contract", resp.ContractID)
	assert.Equal(t, "50.5", resp.AmountDue)
	assert.Equal(t, "50.50", resp.DisplayAmountDue)
	mockDB.AssertExpectations(t)
	mockTemporalClient.AssertExpectations(t)
}
