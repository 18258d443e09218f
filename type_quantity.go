package marketsim

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a number of units of an instrument.
//
// Trades only accept whole, non-negative quantities; see Quantity.Validate.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses free-text input as a trade quantity.
//
// Only base-10 non-negative integers are accepted, surrounding space is ignored.
func ParseQuantity(text string) (Quantity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Quantity{}, fmt.Errorf("%w: empty", ErrInvalidQuantity)
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return Quantity{}, fmt.Errorf("%w: %q is not a whole number", ErrInvalidQuantity, text)
		}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	}
	return Quantity{value: d}, nil
}

// Validate returns ErrInvalidQuantity unless q is a whole number >= 0.
func (q Quantity) Validate() error {
	if q.value.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidQuantity, q)
	}
	if !q.value.IsInteger() {
		return fmt.Errorf("%w: %s is not a whole number", ErrInvalidQuantity, q)
	}
	return nil
}

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) Add(p Quantity) Quantity     { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity     { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) Int() int64                  { return q.value.IntPart() }
func (q Quantity) String() string              { return q.value.String() }

func (q Quantity) MarshalJSON() ([]byte, error) {
	// quantities are whole numbers, write them unquoted.
	return []byte(q.value.String()), nil
}
