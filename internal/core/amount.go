package core

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceAmount converts a raw cell value into a decimal amount. Absent or
// unparseable values coerce to zero so a Record's amount is always finite.
// String input accepts both decimal comma and decimal dot, with optional
// thousands separators ("1.234,56", "1,234.56", "1500,00", "1500.00").
func CoerceAmount(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case float32:
		return decimal.NewFromFloat32(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case json.Number:
		if d, err := decimal.NewFromString(val.String()); err == nil {
			return d
		}
		return decimal.Zero
	case string:
		return amountFromString(val)
	default:
		return decimal.Zero
	}
}

func amountFromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		// The rightmost separator is the decimal one; the other marks
		// thousands and is dropped.
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
