package core

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the spreadsheet serial-date epoch: day 0 is Dec 30, 1899.
// Serial 1 therefore resolves to Dec 31, 1899.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dayMonthYearRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// genericDateLayouts are the unambiguous string formats tried after the
// explicit DD/MM/YYYY path. Locale-ambiguous forms like 01/02/2025 never
// reach these layouts.
var genericDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// CoerceDate converts a raw cell value into a calendar date. Coercion never
// fails: anything unparseable degrades to the empty Date, and downstream
// logic treats absence as "exclude from date-bounded comparisons".
func CoerceDate(v any) Date {
	switch val := v.(type) {
	case nil:
		return Date{}
	case Date:
		return val
	case time.Time:
		if val.IsZero() {
			return Date{}
		}
		return NewDate(val.Year(), int(val.Month()), val.Day())
	case float64:
		return dateFromSerial(val)
	case float32:
		return dateFromSerial(float64(val))
	case int:
		return dateFromSerial(float64(val))
	case int64:
		return dateFromSerial(float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return dateFromSerial(f)
		}
		return Date{}
	case string:
		return dateFromString(val)
	default:
		return Date{}
	}
}

// dateFromSerial maps a spreadsheet day serial onto a calendar date. A half
// day is added before truncation so that the calendar day survives any
// host timezone from UTC-12 to UTC+14; without it, whole-day serials read
// back one day early under negative offsets.
func dateFromSerial(serial float64) Date {
	t := serialEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	t = t.Add(12 * time.Hour)
	return NewDate(t.UTC().Year(), int(t.UTC().Month()), t.UTC().Day())
}

// dateFromString handles DD/MM/YYYY explicitly, then the generic layouts.
// The day/month/year split is never handed to a locale-sensitive parser,
// and the date is constructed directly in UTC so no timezone compensation
// is needed.
func dateFromString(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	if dayMonthYearRe.MatchString(s) {
		parts := strings.Split(s, "/")
		day, _ := strconv.Atoi(parts[0])
		month, _ := strconv.Atoi(parts[1])
		year, _ := strconv.Atoi(parts[2])
		d := NewDate(year, month, day)
		// time.Date normalizes overflow (31/02 becomes 02/03); reject
		// anything that did not round-trip instead of corrupting it.
		if d.Day() != day || d.Month() != month || d.Year() != year {
			return Date{}
		}
		return d
	}
	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day())
		}
	}
	return Date{}
}
