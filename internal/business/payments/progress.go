package payments

import (
	"github.com/shopspring/decimal"

	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// TotalPaid sums recorded payments, ignoring non-positive entries.
func TotalPaid(payments []model.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		amt := decimal.NewFromFloat(p.Amount.Float())
		if amt.IsPositive() {
			total = total.Add(amt)
		}
	}
	return total
}

// Progress computes how much of an invoice has been paid. Amounts round to
// cents and the percentage to two decimals; overpayment clamps at 100%.
func Progress(inv model.Invoice) model.PaymentProgress {
	total := decimal.NewFromFloat(inv.Amount.Float())
	if total.IsNegative() {
		total = decimal.Zero
	}
	paid := TotalPaid(inv.Payments)

	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	percent := decimal.Zero
	switch {
	case total.IsZero() && paid.IsPositive():
		percent = hundred
	case total.IsPositive():
		percent = paid.Div(total).Mul(hundred)
		if percent.GreaterThan(hundred) {
			percent = hundred
		}
	}

	halfway := total.Mul(half)
	toHalf := halfway.Sub(paid)
	if toHalf.IsNegative() {
		toHalf = decimal.Zero
	}

	return model.PaymentProgress{
		TotalPaid:       paid.Round(2).InexactFloat64(),
		RemainingAmount: remaining.Round(2).InexactFloat64(),
		PaymentProgress: percent.Round(2).InexactFloat64(),
		Status: model.PaymentStatus{
			HasReached50Percent: total.IsPositive() && paid.GreaterThanOrEqual(halfway),
			AmountFor50Percent:  toHalf.Round(2).InexactFloat64(),
		},
	}
}

// Summarize totals a set of invoices for the dashboard.
func Summarize(invoices []model.Invoice) model.InvoiceSummary {
	invoiced, paid, outstanding := decimal.Zero, decimal.Zero, decimal.Zero
	var fullyPaid int
	for _, inv := range invoices {
		total := decimal.NewFromFloat(inv.Amount.Float())
		p := TotalPaid(inv.Payments)
		invoiced = invoiced.Add(total)
		paid = paid.Add(p)
		if rest := total.Sub(p); rest.IsPositive() {
			outstanding = outstanding.Add(rest)
		} else {
			fullyPaid++
		}
	}
	return model.InvoiceSummary{
		Count:         len(invoices),
		TotalInvoiced: invoiced.Round(2).InexactFloat64(),
		TotalPaid:     paid.Round(2).InexactFloat64(),
		Outstanding:   outstanding.Round(2).InexactFloat64(),
		FullyPaid:     fullyPaid,
	}
}
