package services

import (
	"fmt"
	"strings"

	"financas/internal/core"
)

// csvHeader is the legacy export layout consumed by downstream spreadsheets.
// Semicolon-delimited, dates as dd/mm/yyyy, decimal comma; the format is
// fixed and not locale-negotiated.
const csvHeader = "data;cliente;assunto;valor;status"

// ExportCSV renders the filtered view as CSV and returns the suggested
// download filename alongside the body. Semicolons inside text fields are
// replaced by commas rather than quoted, matching the legacy files already
// in circulation. A pending load error is left queued for the dashboard.
func (s *DashboardService) ExportCSV(filter core.FilterState) (string, []byte) {
	now := s.now()
	view := s.buildView(filter, false)

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, rec := range view.Records {
		b.WriteString(csvLine(rec))
		b.WriteByte('\n')
	}

	filename := fmt.Sprintf("financas-filtrado-%s.csv", now.Format("2006-01-02"))
	return filename, []byte(b.String())
}

func csvLine(rec core.Record) string {
	date := ""
	if !rec.PaymentDate.IsEmpty() {
		date = rec.PaymentDate.Format("02/01/2006")
	}
	amount := strings.ReplaceAll(rec.Amount.String(), ".", ",")
	fields := []string{
		date,
		csvField(rec.Client),
		csvField(rec.Service),
		amount,
		csvField(rec.Status),
	}
	return strings.Join(fields, ";")
}

func csvField(s string) string {
	return strings.ReplaceAll(s, ";", ",")
}
