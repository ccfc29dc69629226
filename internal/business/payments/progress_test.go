package payments

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

func invoice(total float64, paid ...float64) model.Invoice {
	inv := model.Invoice{Amount: model.Amount(total)}
	for _, p := range paid {
		inv.Payments = append(inv.Payments, model.Payment{Amount: model.Amount(p)})
	}
	return inv
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		inv  model.Invoice
		want model.PaymentProgress
	}{
		{
			name: "unpaid",
			inv:  invoice(300),
			want: model.PaymentProgress{
				RemainingAmount: 300,
				Status:          model.PaymentStatus{AmountFor50Percent: 150},
			},
		},
		{
			name: "deposit below half",
			inv:  invoice(300, 50, 49.99),
			want: model.PaymentProgress{
				TotalPaid:       99.99,
				RemainingAmount: 200.01,
				PaymentProgress: 33.33,
				Status:          model.PaymentStatus{AmountFor50Percent: 50.01},
			},
		},
		{
			name: "exactly half",
			inv:  invoice(250.5, 125.25),
			want: model.PaymentProgress{
				TotalPaid:       125.25,
				RemainingAmount: 125.25,
				PaymentProgress: 50,
				Status:          model.PaymentStatus{HasReached50Percent: true},
			},
		},
		{
			name: "overpaid",
			inv:  invoice(100, 80, 40),
			want: model.PaymentProgress{
				TotalPaid:       120,
				PaymentProgress: 100,
				Status:          model.PaymentStatus{HasReached50Percent: true},
			},
		},
		{
			name: "negative payment ignored",
			inv:  invoice(100, -30, 10),
			want: model.PaymentProgress{
				TotalPaid:       10,
				RemainingAmount: 90,
				PaymentProgress: 10,
				Status:          model.PaymentStatus{AmountFor50Percent: 40},
			},
		},
		{
			name: "zero invoice",
			inv:  invoice(0),
			want: model.PaymentProgress{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Progress(tt.inv)); diff != "" {
				t.Errorf("Progress (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize([]model.Invoice{
		invoice(100, 100),
		invoice(200, 50),
		invoice(0.1, 0.2),
	})
	want := model.InvoiceSummary{
		Count:         3,
		TotalInvoiced: 300.1,
		TotalPaid:     150.2,
		Outstanding:   150,
		FullyPaid:     2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize (-want +got):\n%s", diff)
	}
}
