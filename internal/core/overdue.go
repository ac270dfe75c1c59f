package core

import (
	"math"
	"time"
)

// OverdueRecord is a filtered-view record classified as overdue, tagged with
// its resolved dates and the computed lateness.
type OverdueRecord struct {
	Record
	DaysLate int
}

// DetectOverdue returns the subset of the filtered view that is unpaid and
// strictly past its anchor date, in filtered-view order. Membership is
// exactly: status in the pending/overdue family AND daysLate > 0. A record
// due today (daysLate == 0) is not overdue, and a paid record never is,
// regardless of dates. Severity thresholds are presentation concerns.
func DetectOverdue(records []Record, now time.Time) []OverdueRecord {
	var out []OverdueRecord
	for _, rec := range records {
		if !rec.IsPendingOrOverdue() {
			continue
		}
		anchor := rec.AnchorDate()
		if anchor.IsEmpty() {
			continue
		}
		days := daysBetween(anchor.Time, now)
		if days <= 0 {
			continue
		}
		out = append(out, OverdueRecord{Record: rec, DaysLate: days})
	}
	return out
}

// daysBetween is floor((now - anchor) in whole days). Anchors are UTC
// midnights, so truncating now to its calendar day gives the whole-day
// difference independent of the time of day.
func daysBetween(anchor, now time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Floor(nowDay.Sub(anchor).Hours() / 24))
}
