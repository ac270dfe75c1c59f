package core

import (
	"testing"
	"time"
)

func TestCoerceDateSerial(t *testing.T) {
	tests := []struct {
		name   string
		serial float64
		wantY  int
		wantM  int
		wantD  int
	}{
		{"serial 1 is the day after the epoch", 1, 1899, 12, 31},
		{"typical invoice serial", 45658, 2025, 1, 1},
		{"float error below the whole day", 45657.9999999, 2025, 1, 1},
		{"float error above the whole day", 45658.0000001, 2025, 1, 1},
		{"morning fraction stays on the day", 45658.25, 2025, 1, 1},
		{"evening fraction rounds forward", 45658.75, 2025, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceDate(tt.serial)
			if got.IsEmpty() {
				t.Fatal("CoerceDate() returned empty date")
			}
			if got.Year() != tt.wantY || got.Month() != tt.wantM || got.Day() != tt.wantD {
				t.Errorf("CoerceDate(%v) = %04d-%02d-%02d, want %04d-%02d-%02d",
					tt.serial, got.Year(), got.Month(), got.Day(), tt.wantY, tt.wantM, tt.wantD)
			}
		})
	}
}

func TestCoerceDateSerialTimezoneStability(t *testing.T) {
	// The coercion path never consults the host timezone: the date is
	// constructed in UTC, so the calendar day read back through Year/Month/Day
	// is identical under any process locale from UTC-12 to UTC+14.
	got := CoerceDate(float64(45658))
	if loc := got.Time.Location(); loc != time.UTC {
		t.Fatalf("date constructed in %v, want UTC", loc)
	}
	if got.Year() != 2025 || got.Month() != 1 || got.Day() != 1 {
		t.Fatalf("serial 45658 = %04d-%02d-%02d, want 2025-01-01",
			got.Year(), got.Month(), got.Day())
	}

	// The half-day correction keeps whole-day serials carrying float error
	// on their day instead of shifting them backward.
	for _, serial := range []float64{45657.9999999, 45658.0000001} {
		if d := CoerceDate(serial); d.Year() != 2025 || d.Month() != 1 || d.Day() != 1 {
			t.Errorf("serial %v = %04d-%02d-%02d, want 2025-01-01",
				serial, d.Year(), d.Month(), d.Day())
		}
	}
}

func TestCoerceDateStrings(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantEmpty bool
		wantY     int
		wantM     int
		wantD     int
	}{
		{"day month year never swapped", "31/12/2024", false, 2024, 12, 31},
		{"day first even when ambiguous", "01/02/2025", false, 2025, 2, 1},
		{"iso date", "2025-03-15", false, 2025, 3, 15},
		{"rfc3339", "2025-03-15T10:30:00Z", false, 2025, 3, 15},
		{"impossible day rejected", "31/02/2025", true, 0, 0, 0},
		{"garbage", "not a date", true, 0, 0, 0},
		{"empty", "", true, 0, 0, 0},
		{"whitespace", "   ", true, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceDate(tt.in)
			if got.IsEmpty() != tt.wantEmpty {
				t.Fatalf("CoerceDate(%q) empty = %v, want %v", tt.in, got.IsEmpty(), tt.wantEmpty)
			}
			if tt.wantEmpty {
				return
			}
			if got.Year() != tt.wantY || got.Month() != tt.wantM || got.Day() != tt.wantD {
				t.Errorf("CoerceDate(%q) = %04d-%02d-%02d, want %04d-%02d-%02d",
					tt.in, got.Year(), got.Month(), got.Day(), tt.wantY, tt.wantM, tt.wantD)
			}
		})
	}
}

func TestCoerceDateNonStringKinds(t *testing.T) {
	if d := CoerceDate(nil); !d.IsEmpty() {
		t.Error("nil should coerce to no date")
	}
	if d := CoerceDate(45658); d.IsEmpty() || d.Year() != 2025 {
		t.Error("int serial should coerce like a float serial")
	}
	if d := CoerceDate(struct{}{}); !d.IsEmpty() {
		t.Error("unknown types should coerce to no date")
	}
	if d := CoerceDate(time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)); d.Day() != 1 || d.Month() != 6 {
		t.Error("time.Time should truncate to its calendar day")
	}
}
