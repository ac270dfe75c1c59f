package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeRow(t *testing.T) {
	aliases := DefaultAliasTable()

	t.Run("typical invoice row", func(t *testing.T) {
		row := RawRow{
			"Cliente":           "Acme",
			"Assunto":           "Consultoria",
			"Valor":             "1500,00",
			"Status":            "Pendente",
			"Data de Pagamento": "",
			" Data Criacao":     "01/01/2025",
			"NF":                "2025-0042",
		}
		rec := NormalizeRow(row, aliases)

		if rec.Client != "Acme" {
			t.Errorf("Client = %q, want Acme", rec.Client)
		}
		if rec.Service != "Consultoria" {
			t.Errorf("Service = %q", rec.Service)
		}
		if !rec.Amount.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("Amount = %s, want 1500", rec.Amount)
		}
		if rec.Status != "Pendente" {
			t.Errorf("Status = %q", rec.Status)
		}
		if !rec.PaymentDate.IsEmpty() {
			t.Error("empty payment cell should resolve to no date")
		}
		if rec.ReferenceDate.IsEmpty() || rec.ReferenceDate.Year() != 2025 || rec.ReferenceDate.Month() != 1 || rec.ReferenceDate.Day() != 1 {
			t.Errorf("ReferenceDate = %v, want 2025-01-01", rec.ReferenceDate)
		}
		if got := rec.Extra["NF"]; got != "2025-0042" {
			t.Errorf("unknown column not preserved: %v", got)
		}
		if _, claimed := rec.Extra["Cliente"]; claimed {
			t.Error("canonical columns must not leak into Extra")
		}
	})

	t.Run("missing headers degrade to absence", func(t *testing.T) {
		rec := NormalizeRow(RawRow{"Qualquer": "x"}, aliases)
		if rec.Client != "" || rec.Status != "" {
			t.Error("missing fields should stay empty")
		}
		if !rec.Amount.Equal(decimal.Zero) {
			t.Errorf("missing amount should be zero, got %s", rec.Amount)
		}
		if !rec.PaymentDate.IsEmpty() || !rec.ReferenceDate.IsEmpty() {
			t.Error("missing date columns should stay absent")
		}
	})

	t.Run("serial payment date", func(t *testing.T) {
		rec := NormalizeRow(RawRow{"Data de Pagamento": float64(45658)}, aliases)
		if rec.PaymentDate.IsEmpty() || rec.PaymentDate.Year() != 2025 {
			t.Errorf("PaymentDate = %v, want 2025-01-01", rec.PaymentDate)
		}
	})
}

func TestNormalizeGrid(t *testing.T) {
	aliases := DefaultAliasTable()
	grid := [][]any{
		{"Cliente", "Valor", "Status", "Data de Pagamento"},
		{"Acme", "100,00", "Pago", "10/01/2025"},
		{"", "", "", ""},
		{"Beta", 200.5, "Pendente"},
	}

	records := NormalizeGrid(grid, aliases)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (blank row dropped)", len(records))
	}
	if records[0].Client != "Acme" || records[1].Client != "Beta" {
		t.Errorf("order not preserved: %q, %q", records[0].Client, records[1].Client)
	}
	if !records[1].Amount.Equal(decimal.NewFromFloat(200.5)) {
		t.Errorf("short row amount = %s, want 200.5", records[1].Amount)
	}
	if !records[1].PaymentDate.IsEmpty() {
		t.Error("missing trailing cell should mean no date")
	}

	if got := NormalizeGrid(nil, aliases); got != nil {
		t.Error("nil grid should produce no records")
	}
	if got := NormalizeGrid([][]any{{"Cliente"}}, aliases); got != nil {
		t.Error("header-only grid should produce no records")
	}
}
