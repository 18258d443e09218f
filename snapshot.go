package marketsim

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Snapshot is a read-only view of a market at a given day.
//
// It is what presentation layers render; it shares no state with the Market.
type Snapshot struct {
	Day         int
	Currency    string
	Cash        Money
	Instruments []InstrumentView
	Holdings    []HoldingView
	TotalValue  Money
}

// InstrumentView describes an instrument in a Snapshot.
type InstrumentView struct {
	Symbol  string
	Tag     string
	Price   float64
	Change  Percent // since the market opened
	Low     float64
	High    float64
	History []float64
}

// HoldingView describes a held position in a Snapshot.
type HoldingView struct {
	Symbol   string
	Quantity Quantity
	Price    Money
	Value    Money
}

// Snapshot captures the current state of the market.
func (m *Market) Snapshot() *Snapshot {
	s := &Snapshot{
		Day:        m.day,
		Currency:   m.Currency(),
		Cash:       m.portfolio.Cash(),
		TotalValue: m.Value(),
	}
	for _, inst := range m.instruments {
		s.Instruments = append(s.Instruments, InstrumentView{
			Symbol:  inst.Symbol(),
			Tag:     inst.Tag(),
			Price:   inst.Price(),
			Change:  inst.Change(),
			Low:     inst.Low(),
			High:    inst.High(),
			History: inst.History(),
		})
	}
	for symbol, q := range m.portfolio.holdings {
		inst, ok := m.Lookup(symbol)
		if !ok {
			// bought through Portfolio with an instrument not listed here.
			continue
		}
		price := inst.unitPrice(s.Currency)
		s.Holdings = append(s.Holdings, HoldingView{
			Symbol:   symbol,
			Quantity: q,
			Price:    price,
			Value:    price.Mul(q),
		})
	}
	sort.Slice(s.Holdings, func(i, j int) bool { return s.Holdings[i].Symbol < s.Holdings[j].Symbol })
	return s
}

// Instrument returns the view of symbol, ignoring case.
func (s *Snapshot) Instrument(symbol string) (InstrumentView, bool) {
	i := slices.IndexFunc(s.Instruments, func(v InstrumentView) bool { return strings.EqualFold(v.Symbol, strings.TrimSpace(symbol)) })
	if i < 0 {
		return InstrumentView{}, false
	}
	return s.Instruments[i], true
}

// MarshalJSON implements the json.Marshaler interface for Snapshot.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	instruments := make([]map[string]any, 0, len(s.Instruments))
	for _, v := range s.Instruments {
		instruments = append(instruments, map[string]any{
			"symbol":  v.Symbol,
			"tag":     v.Tag,
			"price":   v.Price,
			"change":  float64(v.Change),
			"low":     v.Low,
			"high":    v.High,
			"history": v.History,
		})
	}
	holdings := make([]map[string]any, 0, len(s.Holdings))
	for _, h := range s.Holdings {
		holdings = append(holdings, map[string]any{
			"symbol":   h.Symbol,
			"quantity": h.Quantity.Int(),
			"price":    h.Price.AsFloat(),
			"value":    h.Value.AsFloat(),
		})
	}
	var w jsonObjectWriter
	w.Append("day", s.Day)
	w.Append("currency", s.Currency)
	w.Append("cash", s.Cash.AsFloat())
	w.Append("instruments", instruments)
	w.Append("holdings", holdings)
	w.Append("totalValue", s.TotalValue.AsFloat())
	return w.MarshalJSON()
}

// Preview returns the live quote line shown while the player types a trade.
//
// Empty inputs give an empty preview. Symbol and quantity are free text, as
// typed by the player.
func Preview(m *Market, symbolText, quantityText string) string {
	if strings.TrimSpace(symbolText) == "" || strings.TrimSpace(quantityText) == "" {
		return ""
	}
	quantity, err := ParseQuantity(quantityText)
	if err != nil {
		return "Invalid quantity"
	}
	value, err := m.Quote(symbolText, quantity)
	switch {
	case errors.Is(err, ErrUnknownInstrument):
		return "Invalid stock name"
	case err != nil:
		return err.Error()
	}
	return fmt.Sprintf("Buy: %s | Sell: %s", value, value)
}
