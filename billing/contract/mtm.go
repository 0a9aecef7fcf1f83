package contract

import (
	"time"

	"encore.app/billing/model"
	"github.com/shopspring/decimal"
)

// MonthToMonth is the no-commitment plan: a flat monthly fee and a flat
// per-minute rate from the first minute. No allowance, no deposit.
type MonthToMonth struct {
	base
	rates RateSchedule
}

func NewMonthToMonth(start time.Time, rates RateSchedule) *MonthToMonth {
	return &MonthToMonth{base: base{start: start}, rates: rates}
}

func (c *MonthToMonth) AdvanceMonth(month, year int, bill Ledger) error {
	if c.cancelled() {
		return ErrContractCancelled
	}
	bill.SetRates(string(model.MonthToMonth), c.rates.MTMPerMinute)
	bill.AddFixedCost(c.rates.MTMMonthlyFee)
	c.bind(bill)
	return nil
}

func (c *MonthToMonth) BillCall(call model.Call) error {
	return c.billCall(call)
}

func (c *MonthToMonth) Cancel() (decimal.Decimal, error) {
	return c.cancel()
}
