package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus represents the lifecycle status of a phone line contract.
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

func ToContractStatus(s string) (ContractStatus, error) {
	switch ContractStatus(s) {
	case ContractStatusActive:
		return ContractStatusActive, nil
	case ContractStatusCancelled:
		return ContractStatusCancelled, nil
	default:
		return "", fmt.Errorf("invalid ContractStatus: %s", s)
	}
}

// PlanType represents the billing plan a phone line is subscribed to.
type PlanType string

const (
	MonthToMonth PlanType = "MTM"
	FixedTerm    PlanType = "TERM"
	Prepaid      PlanType = "PREPAID"
)

// ToPlanType converts a string to a PlanType, validating it against the
// known plans. It accepts lowercase inputs and converts them to uppercase
// for validation.
func ToPlanType(s string) (PlanType, error) {
	upperS := strings.ToUpper(s)
	switch PlanType(upperS) {
	case MonthToMonth:
		return MonthToMonth, nil
	case FixedTerm:
		return FixedTerm, nil
	case Prepaid:
		return Prepaid, nil
	default:
		return "", fmt.Errorf("invalid PlanType: %s", s)
	}
}

// Call is a single phone call placed on a line. Durations come from the
// switch in whole seconds.
type Call struct {
	CallID          string `json:"call_id"`
	DurationSeconds int    `json:"duration_seconds"`
}

// NewCall builds a Call, rejecting negative durations. The billing policies
// rely on this and never re-validate.
func NewCall(callID string, durationSeconds int) (Call, error) {
	if durationSeconds < 0 {
		return Call{}, fmt.Errorf("invalid call duration: %d seconds", durationSeconds)
	}
	return Call{CallID: callID, DurationSeconds: durationSeconds}, nil
}

// FormatAmount renders a dollar amount with two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Statement is the summary of one contract month: what the plan charged,
// how many minutes were billed and how many were covered by an allowance.
type Statement struct {
	ContractID    string          `json:"contract_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Plan          string          `json:"plan"`
	PerMinuteRate decimal.Decimal `json:"per_minute_rate"`
	FixedCost     decimal.Decimal `json:"fixed_cost"`
	BilledMinutes int             `json:"billed_minutes"`
	FreeMinutes   int             `json:"free_minutes"`
	Total         decimal.Decimal `json:"total"`
}

// CallRecord is a persisted call, stamped with the month it was billed in.
type CallRecord struct {
	CallID          string    `json:"call_id"`
	ContractID      string    `json:"contract_id"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	DurationSeconds int       `json:"duration_seconds"`
	Minutes         int       `json:"minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

type ContractDetail struct {
	ContractID    string           `json:"contract_id"`
	PlanType      string           `json:"plan_type"`
	Status        string           `json:"status"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       *time.Time       `json:"end_date,omitempty"`
	PrepaidAmount *decimal.Decimal `json:"prepaid_amount,omitempty"`
	AmountDue     *decimal.Decimal `json:"amount_due,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CancelledAt   *time.Time       `json:"cancelled_at,omitempty"`
	Statements    []Statement      `json:"statements"`
	Calls         []CallRecord     `json:"calls"`
}
