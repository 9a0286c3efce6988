package entity

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount stored in cents. It travels as a decimal number in JSON.
type Money int64

// MoneyFromDecimal converts a decimal amount to cents, rounding half away from zero.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(2).Round(0).IntPart())
}

// Decimal returns the amount as a decimal value
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Float returns the amount as a float, for display only
func (m Money) Float() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(data, `"`)
	if len(raw) == 0 || string(raw) == "null" {
		*m = 0
		return nil
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	*m = MoneyFromDecimal(d)
	return nil
}
