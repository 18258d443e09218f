package marketsim

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxMove is the largest relative price move of a single step.
const MaxMove = 0.1

// Instrument is a tradable instrument and its full price history.
//
// The price follows a multiplicative random walk: each step multiplies it by
// (1+r) with r drawn uniformly from [-MaxMove, MaxMove).
type Instrument struct {
	symbol  string
	tag     string
	price   float64
	history []float64
}

// NewInstrument creates an instrument quoted at price.
//
// tag is an opaque display attribute (e.g. a chart color) that is passed
// through unchanged.
func NewInstrument(symbol string, price float64, tag string) (*Instrument, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is missing", ErrInvalidInstrument)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return nil, fmt.Errorf("%w: %s must start with a strictly positive price, got %v", ErrInvalidPrice, symbol, price)
	}
	return &Instrument{
		symbol:  symbol,
		tag:     tag,
		price:   price,
		history: []float64{price},
	}, nil
}

func (i *Instrument) Symbol() string { return i.symbol }
func (i *Instrument) Tag() string    { return i.tag }
func (i *Instrument) Price() float64 { return i.price }

// Steps returns the number of times the instrument has been advanced.
func (i *Instrument) Steps() int { return len(i.history) - 1 }

// History returns a copy of all prices, from creation to now.
func (i *Instrument) History() []float64 { return slices.Clone(i.history) }

// Change returns the relative change between the initial and the current price.
func (i *Instrument) Change() Percent { return change(i.history[0], i.price) }

// Low returns the lowest price ever observed.
func (i *Instrument) Low() float64 { return slices.Min(i.history) }

// High returns the highest price ever observed.
func (i *Instrument) High() float64 { return slices.Max(i.history) }

// Advance moves the price by one step and returns the new price.
func (i *Instrument) Advance(src Source) float64 {
	r := src.Uniform(-MaxMove, MaxMove)
	// keep misbehaving sources inside the band.
	if math.IsNaN(r) {
		r = 0
	}
	r = max(-MaxMove, min(MaxMove, r))
	// step in decimal so that quoted prices move by exact decimal ratios.
	p := decimal.NewFromFloat(i.price).Mul(decimal.NewFromFloat(r).Add(decimal.NewFromInt(1))).InexactFloat64()
	switch {
	case math.IsInf(p, 1):
		// cap overflow at the largest finite price.
		p = math.MaxFloat64
	case !(p > 0):
		// floor underflow at the smallest representable positive price.
		p = math.SmallestNonzeroFloat64
	}
	i.price = p
	i.history = append(i.history, p)
	return p
}

// unitPrice returns the current price as money in currency cur.
func (i *Instrument) unitPrice(cur string) Money { return M(i.price, cur) }
