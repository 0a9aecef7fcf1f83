package temporal

import (
	"time"

	"encore.app/billing/model"
	"github.com/shopspring/decimal"
)

type ContractLifecycleWorkflowRequest struct {
	ContractID    string
	PlanType      model.PlanType
	StartDate     time.Time
	EndDate       *time.Time
	PrepaidAmount decimal.Decimal
}

type NewMonthSignalRequest struct {
	ContractID string
	Month      int
	Year       int
}

type BillCallSignalRequest struct {
	ContractID      string
	CallID          string
	DurationSeconds int
}

type CancelContractSignalRequest struct {
	ContractID string
}

type CancelContractResponse struct {
	ContractID string
	AmountDue  decimal.Decimal
}
