package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status values recognized by the pipeline. Spreadsheets carry the
// Portuguese labels; the English aliases exist for mixed datasets.
// Anything else is passed through verbatim for display.
var (
	paidStatuses    = []string{"pago", "paid"}
	pendingStatuses = []string{"pendente", "pending"}
	overdueStatuses = []string{"atrasado", "overdue"}
)

type (
	// RawRow is one spreadsheet row keyed by its original header strings.
	// It only lives inside the normalization step.
	RawRow map[string]any

	// Date is an optional calendar day. The zero value means "no date".
	Date struct {
		time.Time
	}

	// Record is the canonical shape every row is normalized into.
	Record struct {
		Client  string
		Service string
		Amount  decimal.Decimal
		Status  string

		// PaymentDate comes from the payment-date alias family,
		// ReferenceDate from the emission/creation family. Either may be
		// empty; AnchorDate picks between them.
		PaymentDate   Date
		ReferenceDate Date

		// Extra holds columns not claimed by any alias set, verbatim,
		// keyed by their trimmed original header.
		Extra map[string]any
	}
)

// NewDate creates a Date pinned to UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date is absent.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AnchorDate is the date used for range filtering and overdue computation:
// the payment date when known, otherwise the reference date.
func (r Record) AnchorDate() Date {
	if !r.PaymentDate.IsEmpty() {
		return r.PaymentDate
	}
	return r.ReferenceDate
}

// IsPaid reports whether the record's status marks it as settled.
func (r Record) IsPaid() bool {
	return statusIn(r.Status, paidStatuses)
}

// IsPendingOrOverdue reports whether the status belongs to the unpaid family.
func (r Record) IsPendingOrOverdue() bool {
	return statusIn(r.Status, pendingStatuses) || statusIn(r.Status, overdueStatuses)
}

func statusIn(status string, set []string) bool {
	s := strings.TrimSpace(status)
	for _, candidate := range set {
		if strings.EqualFold(s, candidate) {
			return true
		}
	}
	return false
}
