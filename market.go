package marketsim

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Listing describes an instrument to create when opening a market.
type Listing struct {
	Symbol string
	Price  float64
	Tag    string
}

// Market holds the instruments, the player's portfolio and the day counter
// of a single session.
//
// A Market is not safe for concurrent use. Callers that advance and trade
// from different goroutines must guard the whole Market with one lock.
type Market struct {
	instruments []*Instrument
	index       map[string]*Instrument // by canonical symbol
	portfolio   *Portfolio
	src         Source
	day         int
	trades      []Trade
}

// canonical returns the lookup key of a symbol.
func canonical(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// NewMarket opens a market on day 0 with the given instruments and initial cash.
//
// Prices are advanced with draws from src.
func NewMarket(listings []Listing, cash Money, src Source) (*Market, error) {
	if len(listings) == 0 {
		return nil, errors.New("a market needs at least one instrument")
	}
	if src == nil {
		return nil, errors.New("a market needs a random source")
	}
	portfolio, err := NewPortfolio(cash)
	if err != nil {
		return nil, err
	}
	m := &Market{
		instruments: make([]*Instrument, 0, len(listings)),
		index:       make(map[string]*Instrument, len(listings)),
		portfolio:   portfolio,
		src:         src,
	}
	var errs error
	for _, l := range listings {
		inst, err := NewInstrument(l.Symbol, l.Price, l.Tag)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		key := canonical(inst.Symbol())
		if _, exists := m.index[key]; exists {
			errs = errors.Join(errs, fmt.Errorf("%w: %s is listed twice", ErrDuplicateInstrument, inst.Symbol()))
			continue
		}
		m.instruments = append(m.instruments, inst)
		m.index[key] = inst
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

// Day returns the number of steps elapsed since the market opened.
func (m *Market) Day() int { return m.day }

func (m *Market) Portfolio() *Portfolio { return m.portfolio }

// Currency returns the currency of the portfolio cash and of all quotes.
func (m *Market) Currency() string { return m.portfolio.Cash().Currency() }

// Instruments iterates over the instruments in listing order.
func (m *Market) Instruments() iter.Seq[*Instrument] { return slices.Values(m.instruments) }

// Lookup finds an instrument by symbol, ignoring case and surrounding space.
func (m *Market) Lookup(symbol string) (*Instrument, bool) {
	inst, ok := m.index[canonical(symbol)]
	return inst, ok
}

// resolve is Lookup with an ErrUnknownInstrument error.
func (m *Market) resolve(symbol string) (*Instrument, error) {
	inst, ok := m.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, strings.TrimSpace(symbol))
	}
	return inst, nil
}

// AdvanceAll advances every instrument by one step, then increments the day.
func (m *Market) AdvanceAll() {
	for _, inst := range m.instruments {
		inst.Advance(m.src)
	}
	m.day++
}

// Quote returns the value of quantity units of symbol at its current price.
func (m *Market) Quote(symbol string, quantity Quantity) (Money, error) {
	inst, err := m.resolve(symbol)
	if err != nil {
		return Money{}, err
	}
	return m.portfolio.Quote(inst, quantity)
}

// Buy buys quantity units of symbol at its current price.
//
// A zero quantity is a successful no-op and is not recorded.
func (m *Market) Buy(symbol string, quantity Quantity) (Trade, error) {
	return m.trade(SideBuy, symbol, quantity)
}

// Sell sells quantity units of symbol at its current price.
//
// A zero quantity is a successful no-op and is not recorded.
func (m *Market) Sell(symbol string, quantity Quantity) (Trade, error) {
	return m.trade(SideSell, symbol, quantity)
}

func (m *Market) trade(side Side, symbol string, quantity Quantity) (Trade, error) {
	inst, err := m.resolve(symbol)
	if err != nil {
		return Trade{}, err
	}
	switch side {
	case SideBuy:
		err = m.portfolio.Buy(inst, quantity)
	case SideSell:
		err = m.portfolio.Sell(inst, quantity)
	default:
		err = fmt.Errorf("unsupported trade side %q", side)
	}
	if err != nil {
		return Trade{}, fmt.Errorf("on day %d: %w", m.day, err)
	}
	t := newTrade(m.day, side, inst, quantity, m.Currency())
	if !quantity.IsZero() {
		m.trades = append(m.trades, t)
	}
	return t, nil
}

// Trades iterates over the applied trades, oldest first.
func (m *Market) Trades() iter.Seq[Trade] { return slices.Values(m.trades) }

// Value returns the cash plus the market value of all holdings.
func (m *Market) Value() Money {
	total := m.portfolio.Cash()
	for symbol, q := range m.portfolio.holdings {
		inst, ok := m.Lookup(symbol)
		if !ok {
			continue
		}
		total = total.Add(inst.unitPrice(m.Currency()).Mul(q))
	}
	return total
}
