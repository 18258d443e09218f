package marketsim

import "testing"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// newTestMarket opens a USD market with the given listings,
// driven by a fixed sequence of draws.
func newTestMarket(t *testing.T, cash float64, listings []Listing, draws ...float64) *Market {
	t.Helper()
	m, err := NewMarket(listings, USD(cash), Sequence(draws...))
	if err != nil {
		t.Fatalf("NewMarket() returned error: %v", err)
	}
	return m
}

func mustInstrument(t *testing.T, symbol string, price float64) *Instrument {
	t.Helper()
	inst, err := NewInstrument(symbol, price, "")
	if err != nil {
		t.Fatalf("NewInstrument(%q, %v) returned error: %v", symbol, price, err)
	}
	return inst
}

func mustPortfolio(t *testing.T, cash float64) *Portfolio {
	t.Helper()
	p, err := NewPortfolio(USD(cash))
	if err != nil {
		t.Fatalf("NewPortfolio(%v) returned error: %v", cash, err)
	}
	return p
}
