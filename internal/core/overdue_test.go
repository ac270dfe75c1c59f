package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDetectOverdue(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		record       Record
		wantOverdue  bool
		wantDaysLate int
	}{
		{
			name: "paid record is never overdue regardless of dates",
			record: Record{
				Status:      "Pago",
				PaymentDate: NewDate(2024, 11, 21), // 100 days past
			},
			wantOverdue: false,
		},
		{
			name: "english paid spelling also counts as settled",
			record: Record{
				Status:      "Paid",
				PaymentDate: NewDate(2024, 11, 21),
			},
			wantOverdue: false,
		},
		{
			name: "pending with only a reference date falls back to it",
			record: Record{
				Status:        "Pendente",
				ReferenceDate: NewDate(2025, 2, 24), // 5 days past
			},
			wantOverdue:  true,
			wantDaysLate: 5,
		},
		{
			name: "due today is not overdue, lateness must be strictly positive",
			record: Record{
				Status:      "Atrasado",
				PaymentDate: NewDate(2025, 3, 1),
			},
			wantOverdue: false,
		},
		{
			name: "one whole day late",
			record: Record{
				Status:      "Atrasado",
				PaymentDate: NewDate(2025, 2, 28),
			},
			wantOverdue:  true,
			wantDaysLate: 1,
		},
		{
			name: "pending without any date is unknown, not overdue",
			record: Record{
				Status: "Pendente",
			},
			wantOverdue: false,
		},
		{
			name: "payment date preferred over reference date",
			record: Record{
				Status:        "Pendente",
				PaymentDate:   NewDate(2025, 2, 27),
				ReferenceDate: NewDate(2025, 1, 1),
			},
			wantOverdue:  true,
			wantDaysLate: 2,
		},
		{
			name: "future anchor is not overdue",
			record: Record{
				Status:      "Pendente",
				PaymentDate: NewDate(2025, 3, 10),
			},
			wantOverdue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectOverdue([]Record{tt.record}, now)
			if tt.wantOverdue != (len(got) == 1) {
				t.Fatalf("overdue = %v, want %v", len(got) == 1, tt.wantOverdue)
			}
			if tt.wantOverdue && got[0].DaysLate != tt.wantDaysLate {
				t.Errorf("DaysLate = %d, want %d", got[0].DaysLate, tt.wantDaysLate)
			}
		})
	}
}

func TestDetectOverduePreservesViewOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Client: "Menos atrasado", Status: "Pendente", PaymentDate: NewDate(2025, 2, 27)},
		{Client: "Mais atrasado", Status: "Atrasado", PaymentDate: NewDate(2025, 1, 1)},
		{Client: "Em dia", Status: "Pago", PaymentDate: NewDate(2025, 1, 1)},
	}
	got := DetectOverdue(records, now)
	if len(got) != 2 {
		t.Fatalf("got %d overdue records, want 2", len(got))
	}
	// View order, not lateness order.
	if got[0].Client != "Menos atrasado" || got[1].Client != "Mais atrasado" {
		t.Errorf("overdue output resorted: %q, %q", got[0].Client, got[1].Client)
	}
}

func TestOverdueEndToEndScenario(t *testing.T) {
	// A pending invoice created 59 days before now, with a blank payment
	// cell.
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	row := RawRow{
		"Cliente":           "Acme",
		"Status":            "Pendente",
		"Valor":             "1500,00",
		"Data de Pagamento": "",
		" Data Criacao":     "01/01/2025",
	}
	rec := NormalizeRow(row, DefaultAliasTable())

	if !rec.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Amount = %s, want 1500", rec.Amount)
	}
	overdue := DetectOverdue([]Record{rec}, now)
	if len(overdue) != 1 {
		t.Fatal("record should be overdue")
	}
	if overdue[0].DaysLate != 59 {
		t.Errorf("DaysLate = %d, want 59", overdue[0].DaysLate)
	}
}
