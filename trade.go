package marketsim

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Side tells whether a trade bought or sold.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Trade records a buy or sell that was applied to the portfolio.
//
// Rejected trades are never recorded.
type Trade struct {
	ID       uuid.UUID
	Day      int
	Side     Side
	Symbol   string
	Quantity Quantity
	Price    Money // unit price at execution
	Amount   Money // Price * Quantity, debited on buy, credited on sell
}

func newTrade(day int, side Side, inst *Instrument, quantity Quantity, cur string) Trade {
	price := inst.unitPrice(cur)
	return Trade{
		ID:       uuid.New(),
		Day:      day,
		Side:     side,
		Symbol:   inst.Symbol(),
		Quantity: quantity,
		Price:    price,
		Amount:   price.Mul(quantity),
	}
}

// CashFlow returns the signed effect of the trade on cash.
func (t Trade) CashFlow() Money {
	if t.Side == SideBuy {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Trade) String() string {
	return fmt.Sprintf("day %d: %s %s %s at %s for %s", t.Day, t.Side, t.Quantity, t.Symbol, t.Price, t.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("day", t.Day)
	w.Append("side", t.Side)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// EncodeTrades writes trades to w, one JSON object per line.
func EncodeTrades(w io.Writer, trades []Trade) error {
	enc := json.NewEncoder(w)
	for _, t := range trades {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("could not encode trade %s: %w", t.ID, err)
		}
	}
	return nil
}
