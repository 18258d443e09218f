package marketsim

import (
	"fmt"
	"maps"
)

// Portfolio holds the player's cash and holdings.
//
// Cash never goes negative and holdings never contain a zero quantity: an
// entry is removed as soon as it is fully sold.
type Portfolio struct {
	cash     Money
	holdings map[string]Quantity // indexed by instrument symbol
}

// NewPortfolio creates a portfolio with cash and no holdings.
func NewPortfolio(cash Money) (*Portfolio, error) {
	if cash.IsNegative() {
		return nil, fmt.Errorf("initial cash must not be negative, got %s", cash)
	}
	return &Portfolio{
		cash:     cash,
		holdings: make(map[string]Quantity),
	}, nil
}

func (p *Portfolio) Cash() Money { return p.cash }

// Holdings returns a copy of the held quantities, indexed by symbol.
func (p *Portfolio) Holdings() map[string]Quantity { return maps.Clone(p.holdings) }

// Position returns the quantity held for symbol, zero if none.
func (p *Portfolio) Position(symbol string) Quantity { return p.holdings[symbol] }

// Quote returns the value of quantity units of inst at its current price.
//
// Buying and selling are symmetric: there is no spread and no fee.
func (p *Portfolio) Quote(inst *Instrument, quantity Quantity) (Money, error) {
	if err := quantity.Validate(); err != nil {
		return Money{}, err
	}
	return inst.unitPrice(p.cash.Currency()).Mul(quantity), nil
}

// Buy debits the cost of quantity units of inst and credits the holding.
//
// It fails with ErrInsufficientFunds when the cost exceeds the cash, in which
// case the portfolio is left untouched.
func (p *Portfolio) Buy(inst *Instrument, quantity Quantity) error {
	cost, err := p.Quote(inst, quantity)
	if err != nil {
		return fmt.Errorf("cannot buy %s: %w", inst.Symbol(), err)
	}
	if p.cash.LessThan(cost) {
		return fmt.Errorf("%w: cannot buy %s %s for %s, cash balance is %s", ErrInsufficientFunds, quantity, inst.Symbol(), cost, p.cash)
	}
	if quantity.IsZero() {
		return nil
	}
	p.cash = p.cash.Sub(cost)
	p.holdings[inst.Symbol()] = p.holdings[inst.Symbol()].Add(quantity)
	return nil
}

// Sell credits the proceeds of quantity units of inst and debits the holding.
//
// It fails with ErrInsufficientHoldings when less than quantity is held,
// in which case the portfolio is left untouched.
func (p *Portfolio) Sell(inst *Instrument, quantity Quantity) error {
	proceeds, err := p.Quote(inst, quantity)
	if err != nil {
		return fmt.Errorf("cannot sell %s: %w", inst.Symbol(), err)
	}
	held := p.holdings[inst.Symbol()]
	if held.LessThan(quantity) {
		return fmt.Errorf("%w: cannot sell %s %s, position is %s", ErrInsufficientHoldings, quantity, inst.Symbol(), held)
	}
	if quantity.IsZero() {
		return nil
	}
	p.cash = p.cash.Add(proceeds)
	if left := held.Sub(quantity); left.IsZero() {
		delete(p.holdings, inst.Symbol())
	} else {
		p.holdings[inst.Symbol()] = left
	}
	return nil
}
