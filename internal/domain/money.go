package domain

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount that unmarshals from either a JSON number
// or a numeric string and marshals back as a string with at least two
// decimal places, so "10.10" round-trips as "10.10" instead of 10.1.
type Money struct {
	decimal.Decimal
}

// NewMoney builds a Money from a decimal.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromFloat builds a Money from a float64 amount.
func MoneyFromFloat(f float64) Money {
	return Money{Decimal: decimal.NewFromFloat(f)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		m.Decimal = decimal.Zero
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// Unparseable strings fall back to zero instead of failing the
		// whole payload.
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = d
	return nil
}

// MarshalJSON implements json.Marshaler.
// Amounts carry at least two decimal places; extra precision on the
// input is kept as-is rather than rounded away.
func (m Money) MarshalJSON() ([]byte, error) {
	if m.Decimal.Exponent() < -2 {
		return []byte(`"` + m.Decimal.String() + `"`), nil
	}
	return []byte(`"` + m.Decimal.StringFixed(2) + `"`), nil
}

// Mul returns the product of two Money values.
func (m Money) Mul(other Money) Money {
	return Money{Decimal: m.Decimal.Mul(other.Decimal)}
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}
