// Package contract implements the billing policies for phone line plans.
// Each plan decides how a monthly bill is initialized, how calls accrue
// against it, and what the customer owes when the line is cancelled.
package contract

import (
	"errors"
	"fmt"
	"time"

	"encore.app/billing/model"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoActiveBill reports a call or cancellation arriving before a bill
	// was bound for the month. This is a sequencing bug in the driver, not a
	// recoverable condition.
	ErrNoActiveBill = errors.New("no bill bound for the current month")

	// ErrContractCancelled reports an operation on a line that was already
	// cancelled.
	ErrContractCancelled = errors.New("contract already cancelled")
)

// Ledger is the monthly bill a contract accrues charges against. The
// contract borrows exactly one ledger per month; nothing else mutates it
// while it is bound.
type Ledger interface {
	SetRates(plan string, perMinute decimal.Decimal)
	AddFixedCost(amount decimal.Decimal)
	AddBilledMinutes(minutes int)
	AddFreeMinutes(minutes int)
	TotalCost() decimal.Decimal
}

// Contract is the shared lifecycle of a phone line plan. The driver calls
// AdvanceMonth once per calendar month, BillCall for every call placed in
// that month, and Cancel at most once to close the line.
type Contract interface {
	// AdvanceMonth binds bill as the active ledger for the given month and
	// applies the plan's rate and fixed monthly charges. It must be called
	// before any call in that month is billed.
	AdvanceMonth(month, year int, bill Ledger) error

	// BillCall accrues the call against the active ledger, rounding the
	// duration up to whole minutes.
	BillCall(call model.Call) error

	// Cancel closes the line permanently and returns the amount owed.
	Cancel() (decimal.Decimal, error)
}

// RateSchedule carries the fees and rates the plans bill with. It is
// injected at construction so tests can run alternative schedules.
type RateSchedule struct {
	MTMMonthlyFee decimal.Decimal
	MTMPerMinute  decimal.Decimal

	TermMonthlyFee      decimal.Decimal
	TermPerMinute       decimal.Decimal
	TermDeposit         decimal.Decimal
	TermIncludedMinutes int

	PrepaidPerMinute decimal.Decimal
	// A prepaid balance above TopUpThreshold (credit below the floor)
	// triggers an automatic top-up of TopUpAmount.
	TopUpThreshold decimal.Decimal
	TopUpAmount    decimal.Decimal
}

// DefaultRates is the published rate schedule.
func DefaultRates() RateSchedule {
	return RateSchedule{
		MTMMonthlyFee:       decimal.RequireFromString("50.00"),
		MTMPerMinute:        decimal.RequireFromString("0.05"),
		TermMonthlyFee:      decimal.RequireFromString("20.00"),
		TermPerMinute:       decimal.RequireFromString("0.10"),
		TermDeposit:         decimal.RequireFromString("300.00"),
		TermIncludedMinutes: 100,
		PrepaidPerMinute:    decimal.RequireFromString("0.025"),
		TopUpThreshold:      decimal.NewFromInt(-10),
		TopUpAmount:         decimal.NewFromInt(25),
	}
}

// New is a factory that returns the plan implementation for the given plan
// type. end is required for TERM plans; prepaid must be positive for
// PREPAID plans.
func New(plan model.PlanType, start time.Time, end *time.Time, prepaid decimal.Decimal, rates RateSchedule) (Contract, error) {
	switch plan {
	case model.MonthToMonth:
		return NewMonthToMonth(start, rates), nil
	case model.FixedTerm:
		if end == nil || !end.After(start) {
			return nil, fmt.Errorf("end date must be after the start date for plan=%s", plan)
		}
		return NewFixedTerm(start, *end, rates), nil
	case model.Prepaid:
		if prepaid.Sign() <= 0 {
			return nil, fmt.Errorf("prepaid amount must be more than zero for plan=%s", plan)
		}
		return NewPrepaid(start, prepaid, rates), nil
	default:
		return nil, fmt.Errorf("unsupported plan type: %s", plan)
	}
}

// CallMinutes rounds a call up to whole minutes; a partial minute bills as a
// full one.
func CallMinutes(call model.Call) int {
	return (call.DurationSeconds + 59) / 60
}

// base carries the state every plan shares: the start date and the ledger
// bound for the current month.
type base struct {
	start time.Time // zeroed once the line is cancelled
	bill  Ledger    // nil until the first AdvanceMonth
}

func (b *base) bind(bill Ledger) { b.bill = bill }

func (b *base) cancelled() bool { return b.start.IsZero() }

func (b *base) check() error {
	if b.cancelled() {
		return ErrContractCancelled
	}
	if b.bill == nil {
		return ErrNoActiveBill
	}
	return nil
}

// billCall is the default billing behavior: every minute is billed, no
// allowance.
func (b *base) billCall(call model.Call) error {
	if err := b.check(); err != nil {
		return err
	}
	b.bill.AddBilledMinutes(CallMinutes(call))
	return nil
}

// cancel clears the start date, marking the line permanently inactive, and
// reports the amount owed on the active bill.
func (b *base) cancel() (decimal.Decimal, error) {
	if err := b.check(); err != nil {
		return decimal.Zero, err
	}
	b.start = time.Time{}
	return b.bill.TotalCost(), nil
}

// monthStart normalizes a month and year to the first day of that month so
// dates can be compared at month granularity.
func monthStart(month, year int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
