// Package ledger implements the monthly bill a contract accrues charges
// against.
package ledger

import (
	"encore.app/billing/model"
	"github.com/shopspring/decimal"
)

// Bill accumulates the charges for one contract month. A contract binds a
// fresh Bill at every month advance and is the only writer until the month
// rolls over.
type Bill struct {
	month int
	year  int

	plan          string
	perMinuteRate decimal.Decimal
	fixedCost     decimal.Decimal
	billedMinutes int
	freeMinutes   int
}

func NewBill(month, year int) *Bill {
	return &Bill{month: month, year: year}
}

func (b *Bill) Month() int { return b.month }
func (b *Bill) Year() int  { return b.year }

// SetRates sets the plan label and the per-minute rate applied to billed
// minutes. Called once per month by the contract.
func (b *Bill) SetRates(plan string, perMinute decimal.Decimal) {
	b.plan = plan
	b.perMinuteRate = perMinute
}

// AddFixedCost adds a flat charge to the bill. Negative amounts are credits
// or refunds.
func (b *Bill) AddFixedCost(amount decimal.Decimal) {
	b.fixedCost = b.fixedCost.Add(amount)
}

// AddBilledMinutes adds minutes charged at the per-minute rate.
func (b *Bill) AddBilledMinutes(minutes int) {
	b.billedMinutes += minutes
}

// AddFreeMinutes adds minutes covered by the plan's included allowance.
func (b *Bill) AddFreeMinutes(minutes int) {
	b.freeMinutes += minutes
}

// TotalCost is the fixed costs plus the per-minute rate applied to the
// billed minutes.
func (b *Bill) TotalCost() decimal.Decimal {
	return b.fixedCost.Add(b.perMinuteRate.Mul(decimal.NewFromInt(int64(b.billedMinutes))))
}

// Summary snapshots the bill as a statement. The caller stamps the contract
// ID.
func (b *Bill) Summary() model.Statement {
	return model.Statement{
		Month:         b.month,
		Year:          b.year,
		Plan:          b.plan,
		PerMinuteRate: b.perMinuteRate,
		FixedCost:     b.fixedCost,
		BilledMinutes: b.billedMinutes,
		FreeMinutes:   b.freeMinutes,
		Total:         b.TotalCost(),
	}
}
