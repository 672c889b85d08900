package rewards

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// divisionPrecision is the number of decimal places kept by Amount.Div.
const divisionPrecision = 20

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T int | int32 | int64 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Amount is an exact decimal figure: a balance, an interest total or an
// average. Its zero value is 0.
//
// Amounts are persisted as JSON strings, which is what the dashboard reads.
type Amount struct {
	value decimal.Decimal
}

// A creates an Amount from an integer or a decimal.
func A[T int | int32 | int64 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a decimal string such as "0.0123".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount           { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Cmp(b Amount) int              { return a.value.Cmp(b.value) }
func (a Amount) Equal(b Amount) bool           { return a.value.Equal(b.value) }
func (a Amount) GreaterThan(b Amount) bool     { return a.value.GreaterThan(b.value) }
func (a Amount) IsZero() bool                  { return a.value.IsZero() }
func (a Amount) IsNegative() bool              { return a.value.IsNegative() }
func (a Amount) Decimal() decimal.Decimal      { return a.value }
func (a Amount) String() string                { return a.value.String() }
func (a Amount) StringFixed(places int) string { return a.value.StringFixed(int32(places)) }

// Div divides a by b, rounded to divisionPrecision places.
// Dividing by zero panics, callers check their divisor.
func (a Amount) Div(b Amount) Amount {
	return Amount{value: a.value.DivRound(b.value, divisionPrecision)}
}

// Max returns the greater of a and b.
func (a Amount) Max(b Amount) Amount {
	if b.value.GreaterThan(a.value) {
		return b
	}
	return a
}

// MarshalJSON implements the json.Marshaler interface, always as a quoted string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.value.String())
}

// UnmarshalJSON accepts both quoted and bare decimal numbers.
func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.value.UnmarshalJSON(b)
}
