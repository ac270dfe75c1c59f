package core

import (
	"strings"
	"time"
)

// UnanchoredRecordsPassDateFilters is the deliberate policy that records
// without a resolvable anchor date are never excluded by quick-range, month
// or year filters. Date-bounded dimensions only constrain records that have
// a date to compare.
const UnanchoredRecordsPassDateFilters = true

// QuickRange is a relative, now-anchored date window layered on top of the
// explicit month/year filters.
type QuickRange string

const (
	RangeAll    QuickRange = ""
	Range30Days QuickRange = "30d"
	Range90Days QuickRange = "90d"
	RangeYTD    QuickRange = "ytd"
)

// FilterState is the set of simultaneously applied predicates. Zero values
// ("", 0, RangeAll) mean "all" for their dimension.
type FilterState struct {
	Query  string
	Client string
	Status string
	Month  int // 1-12, 0 = all
	Year   int // 0 = all
	Range  QuickRange
}

// FilterRecords returns the subset of records satisfying every dimension of
// the filter state (logical AND). The result preserves the relative order of
// the input; filtering never resorts.
func FilterRecords(records []Record, f FilterState, now time.Time) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if matchesFilter(rec, f, now) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesFilter(rec Record, f FilterState, now time.Time) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		haystack := strings.ToLower(rec.Client + " " + rec.Service)
		if !strings.Contains(haystack, strings.ToLower(q)) {
			return false
		}
	}
	if f.Client != "" && rec.Client != f.Client {
		return false
	}
	if f.Status != "" && !strings.EqualFold(strings.TrimSpace(rec.Status), f.Status) {
		return false
	}

	anchor := rec.AnchorDate()
	if anchor.IsEmpty() {
		return UnanchoredRecordsPassDateFilters
	}
	if !matchesRange(anchor, f.Range, now) {
		return false
	}
	if f.Month != 0 && anchor.Month() != f.Month {
		return false
	}
	if f.Year != 0 && anchor.Year() != f.Year {
		return false
	}
	return true
}

func matchesRange(anchor Date, r QuickRange, now time.Time) bool {
	var start time.Time
	switch r {
	case RangeAll:
		return true
	case Range30Days:
		start = now.AddDate(0, 0, -30)
	case Range90Days:
		start = now.AddDate(0, 0, -90)
	case RangeYTD:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return true
	}
	// Compare whole days so an anchor equal to today passes regardless of
	// now's time of day.
	day := anchor.Time
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(startDay) && !day.After(endDay)
}
