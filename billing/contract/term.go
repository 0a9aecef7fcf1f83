package contract

import (
	"time"

	"encore.app/billing/model"
	"github.com/shopspring/decimal"
)

// FixedTerm is the commitment plan: a lower monthly fee, a deposit held for
// the length of the term, and an included-minutes allowance that resets
// every month.
type FixedTerm struct {
	base
	rates RateSchedule
	end   time.Time

	// depositReleased flips once the contract reaches its end month. It is
	// never reverted; cancelling after that refunds the deposit.
	depositReleased bool
	// minutesUsed is the ceiling-rounded minute count consumed against this
	// month's allowance. Reset at every month advance.
	minutesUsed int
}

func NewFixedTerm(start, end time.Time, rates RateSchedule) *FixedTerm {
	return &FixedTerm{base: base{start: start}, rates: rates, end: end}
}

func (c *FixedTerm) AdvanceMonth(month, year int, bill Ledger) error {
	if c.cancelled() {
		return ErrContractCancelled
	}
	bill.SetRates(string(model.FixedTerm), c.rates.TermPerMinute)
	bill.AddFixedCost(c.rates.TermMonthlyFee)
	c.minutesUsed = 0

	switch {
	case int(c.start.Month()) == month && c.start.Year() == year:
		// The one-time deposit lands in the literal first month only.
		bill.AddFixedCost(c.rates.TermDeposit)
	case !monthStart(month, year).Before(monthStart(int(c.end.Month()), c.end.Year())):
		// The term has run its course: the deposit is due back to the
		// customer at cancellation. Compared at month granularity with a
		// single date comparison; the end month itself already releases it.
		c.depositReleased = true
	}
	c.bind(bill)
	return nil
}

// BillCall splits the call between the monthly included allowance and
// billed minutes. Once the allowance is exhausted every minute is billed.
func (c *FixedTerm) BillCall(call model.Call) error {
	if err := c.check(); err != nil {
		return err
	}
	mins := CallMinutes(call)
	billable := c.minutesUsed + mins - c.rates.TermIncludedMinutes
	if billable < 0 {
		billable = 0
	}
	if billable > mins {
		billable = mins
	}
	c.bill.AddBilledMinutes(billable)
	c.bill.AddFreeMinutes(mins - billable)
	c.minutesUsed += mins
	return nil
}

// Cancel closes the line. Cancelling before the term's end forfeits the
// deposit; once the term has been served the deposit comes back as a credit
// on the final bill.
func (c *FixedTerm) Cancel() (decimal.Decimal, error) {
	if err := c.check(); err != nil {
		return decimal.Zero, err
	}
	if c.depositReleased {
		c.bill.AddFixedCost(c.rates.TermDeposit.Neg())
	}
	return c.cancel()
}
