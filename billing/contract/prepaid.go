package contract

import (
	"time"

	"encore.app/billing/model"
	"github.com/shopspring/decimal"
)

// Prepaid is the pay-ahead plan. The customer's credit is stored as a
// negative balance; each month the signed balance lands on the bill as a
// fixed cost, and a low balance triggers an automatic top-up charge.
type Prepaid struct {
	base
	rates   RateSchedule
	balance decimal.Decimal // negative while the customer holds credit
}

func NewPrepaid(start time.Time, prepaid decimal.Decimal, rates RateSchedule) *Prepaid {
	return &Prepaid{base: base{start: start}, rates: rates, balance: prepaid.Neg()}
}

func (c *Prepaid) AdvanceMonth(month, year int, bill Ledger) error {
	if c.cancelled() {
		return ErrContractCancelled
	}
	// Credit below the floor: charge the top-up and bank it as credit.
	// Calls never touch the balance directly; it only moves here.
	if c.balance.GreaterThan(c.rates.TopUpThreshold) {
		c.balance = c.balance.Sub(c.rates.TopUpAmount)
		bill.AddFixedCost(c.rates.TopUpAmount)
	}
	bill.SetRates(string(model.Prepaid), c.rates.PrepaidPerMinute)
	bill.AddFixedCost(c.balance)
	c.bind(bill)
	return nil
}

func (c *Prepaid) BillCall(call model.Call) error {
	return c.billCall(call)
}

// Cancel closes the line. Credit remaining on the line is forfeited, never
// refunded in cash, so a negative bill total comes back as zero owed.
func (c *Prepaid) Cancel() (decimal.Decimal, error) {
	owed, err := c.cancel()
	if err != nil {
		return decimal.Zero, err
	}
	if owed.IsNegative() {
		return decimal.Zero, nil
	}
	return owed, nil
}
