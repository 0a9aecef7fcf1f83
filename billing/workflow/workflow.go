package temporal

import (
	"time"

	"encore.app/billing/contract"
	"encore.app/billing/ledger"
	"encore.app/billing/model"
	"encore.dev"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

var (
	envName                   = encore.Meta().Environment.Name
	ContractTaskQueue         = envName + "contract-lifecycle"
	startToCloseTimeout       = 1 * time.Minute
	QueryStatement            = "GET_STATEMENT"
	maxRetryAttempt     int32 = 10
)

const (
	NewMonthSignal = "new-month"
	BillCallSignal = "bill-call"
	CancelSignal   = "cancel-contract"
)

// ContractLifecycleWorkflow owns one phone line from subscription to
// cancellation. The driver sends signals in strict temporal order: one
// new-month per calendar month, then that month's calls, and finally a
// single cancel. The plan policy and its running bill live in workflow
// state; activities persist snapshots as the months close.
func ContractLifecycleWorkflow(ctx workflow.Context, req *ContractLifecycleWorkflowRequest) (*CancelContractResponse, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: startToCloseTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        maxRetryAttempt,
			NonRetryableErrorTypes: []string{contractNotFound, contractCancelled},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	var activities *Activities

	// 1. Create the contract row first so the line is visible before any
	// billing happens.
	if err := workflow.ExecuteActivity(ctx, activities.CreateContract, req).Get(ctx, nil); err != nil {
		workflow.GetLogger(ctx).Error("Failed to create contract in database, failing workflow", "error", err, "contract_id", req.ContractID)
		return nil, err
	}

	plan, err := contract.New(req.PlanType, req.StartDate, req.EndDate, req.PrepaidAmount, contract.DefaultRates())
	if err != nil {
		workflow.GetLogger(ctx).Error("Invalid plan configuration, failing workflow", "error", err, "contract_id", req.ContractID)
		return nil, err
	}

	// The bill for the month currently being accrued. Nil until the first
	// new-month signal binds one.
	var bill *ledger.Bill

	// Query handler so the API can read the live current-month statement
	// before it is persisted.
	err = workflow.SetQueryHandler(ctx, QueryStatement, func() (*model.Statement, error) {
		if bill == nil {
			return nil, nil
		}
		statement := bill.Summary()
		statement.ContractID = req.ContractID
		return &statement, nil
	})
	if err != nil {
		workflow.GetLogger(ctx).Error("Failed to register statement query handler", "error", err)
		return nil, err
	}

	monthChan := workflow.GetSignalChannel(ctx, NewMonthSignal)
	callChan := workflow.GetSignalChannel(ctx, BillCallSignal)
	cancelChan := workflow.GetSignalChannel(ctx, CancelSignal)

	var resp CancelContractResponse
	var failErr error
	workflowCompleted := false
	for !workflowCompleted {
		selector := workflow.NewSelector(ctx)

		selector.AddReceive(monthChan, func(c workflow.ReceiveChannel, more bool) {
			var signal NewMonthSignalRequest
			c.Receive(ctx, &signal)

			// Close out the month we are leaving before binding the next
			// one.
			if bill != nil {
				saveStatement(ctx, activities, req.ContractID, bill)
			}
			next := ledger.NewBill(signal.Month, signal.Year)
			if err := plan.AdvanceMonth(signal.Month, signal.Year, next); err != nil {
				workflow.GetLogger(ctx).Error("Failed to advance contract month, failing workflow.", "Error", err, "ContractID", req.ContractID)
				failErr = err
				workflowCompleted = true
				return
			}
			bill = next
		})

		selector.AddReceive(callChan, func(c workflow.ReceiveChannel, more bool) {
			var signal BillCallSignalRequest
			c.Receive(ctx, &signal)

			call, err := model.NewCall(signal.CallID, signal.DurationSeconds)
			if err != nil {
				workflow.GetLogger(ctx).Error("Rejected call, failing workflow.", "Error", err, "ContractID", req.ContractID)
				failErr = err
				workflowCompleted = true
				return
			}
			if err := plan.BillCall(call); err != nil {
				workflow.GetLogger(ctx).Error("Failed to bill call, failing workflow.", "Error", err, "ContractID", req.ContractID)
				failErr = err
				workflowCompleted = true
				return
			}

			record := model.CallRecord{
				CallID:          call.CallID,
				ContractID:      req.ContractID,
				Month:           bill.Month(),
				Year:            bill.Year(),
				DurationSeconds: call.DurationSeconds,
				Minutes:         contract.CallMinutes(call),
			}
			// A failed persist does not fail the line: the bill state is
			// already correct in the workflow, so we log and move on.
			if err := workflow.ExecuteActivity(ctx, activities.RecordCall, record).Get(ctx, nil); err != nil {
				workflow.GetLogger(ctx).Error("Failed to record call after all retries.", "Error", err, "ContractID", req.ContractID)
			} else {
				workflow.GetLogger(ctx).Debug("Record call activity completed.", "ContractID", req.ContractID, "CallID", call.CallID)
			}
		})

		selector.AddReceive(cancelChan, func(c workflow.ReceiveChannel, more bool) {
			var signal CancelContractSignalRequest
			c.Receive(ctx, &signal)

			amountDue, err := plan.Cancel()
			if err != nil {
				workflow.GetLogger(ctx).Error("Failed to cancel contract, failing workflow.", "Error", err, "ContractID", req.ContractID)
				failErr = err
				workflowCompleted = true
				return
			}
			workflow.GetLogger(ctx).Info("Received cancel signal, closing the line.", "ContractID", req.ContractID)
			resp = CancelContractResponse{ContractID: req.ContractID, AmountDue: amountDue}
			workflowCompleted = true
		})

		selector.Select(ctx)
	}

	if failErr != nil {
		return nil, failErr
	}

	// --- Close the line ---
	// Persist the final month (including any deposit refund applied at
	// cancellation) and mark the contract cancelled.
	if bill != nil {
		saveStatement(ctx, activities, req.ContractID, bill)
	}
	if err := workflow.ExecuteActivity(ctx, activities.CloseContract, req.ContractID, resp.AmountDue).Get(ctx, nil); err != nil {
		// If closing fails, the workflow must fail to prevent incorrect
		// financial state.
		workflow.GetLogger(ctx).Error("Failed to close contract, failing workflow.", "Error", err, "ContractID", req.ContractID)
		return nil, err
	}

	// Read the closed contract back so the completion event carries the
	// persisted state, not just the in-memory totals.
	var detail model.ContractDetail
	if err := workflow.ExecuteActivity(ctx, activities.GetContractDetail, req.ContractID).Get(ctx, &detail); err != nil {
		workflow.GetLogger(ctx).Error("Failed to read back closed contract.", "Error", err, "ContractID", req.ContractID)
	} else {
		workflow.GetLogger(ctx).Info("Contract closed successfully.", "ContractID", req.ContractID, "AmountDue", resp.AmountDue, "Statements", len(detail.Statements))
	}

	return &resp, nil
}

func saveStatement(ctx workflow.Context, activities *Activities, contractID string, bill *ledger.Bill) {
	statement := bill.Summary()
	statement.ContractID = contractID
	if err := workflow.ExecuteActivity(ctx, activities.SaveStatement, statement).Get(ctx, nil); err != nil {
		// One failed snapshot should not stop the whole line; the statement
		// is rewritten the next time the month closes.
		workflow.GetLogger(ctx).Error("Failed to save statement after all retries.", "Error", err, "ContractID", contractID)
	}
}
