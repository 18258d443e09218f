package renderer

import (
	"slices"
	"strings"
	"testing"

	"github.com/etnz/marketsim"
)

func newSnapshot(t *testing.T) (*marketsim.Market, *marketsim.Snapshot) {
	t.Helper()
	m, err := marketsim.NewMarket([]marketsim.Listing{
		{Symbol: "AAPL", Price: 100, Tag: "r"},
		{Symbol: "MSFT", Price: 50, Tag: "b"},
	}, marketsim.M(1000, "USD"), marketsim.Sequence(0.1, -0.1))
	if err != nil {
		t.Fatalf("NewMarket returned error: %v", err)
	}
	if _, err := m.Buy("AAPL", marketsim.Q(3)); err != nil {
		t.Fatalf("Buy returned error: %v", err)
	}
	m.AdvanceAll()
	return m, m.Snapshot()
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestMarketMarkdown(t *testing.T) {
	_, s := newSnapshot(t)
	got := MarketMarkdown(s)
	assertContains(t, got,
		"# Day 1",
		"Stock", "Trend",
		"AAPL", "$110.00", "+10.00%",
		"MSFT", "$45.00", "-10.00%",
	)
}

func TestPortfolioMarkdown(t *testing.T) {
	_, s := newSnapshot(t)
	got := PortfolioMarkdown(s)
	// 1000 - 300 cash, 3 AAPL at 110
	assertContains(t, got,
		"## Portfolio",
		"Cash: $700.00",
		"AAPL", "$330.00",
		"Total value: $1,030.00",
	)
}

func TestPortfolioMarkdown_Empty(t *testing.T) {
	m, err := marketsim.NewMarket([]marketsim.Listing{{Symbol: "AAPL", Price: 100}}, marketsim.M(1000, "USD"), marketsim.Sequence(0))
	if err != nil {
		t.Fatalf("NewMarket returned error: %v", err)
	}
	assertContains(t, PortfolioMarkdown(m.Snapshot()), "No holdings.", "Total value: $1,000.00")
}

func TestTradesMarkdown(t *testing.T) {
	m, _ := newSnapshot(t)
	if _, err := m.Sell("aapl", marketsim.Q(1)); err != nil {
		t.Fatalf("Sell returned error: %v", err)
	}
	got := TradesMarkdown(slices.Collect(m.Trades()))
	assertContains(t, got, "## Trades", "buy", "sell", "-$300.00", "+$110.00")

	if got := TradesMarkdown(nil); !strings.Contains(got, "No trades.") {
		t.Errorf("TradesMarkdown(nil) = %q, want it to say there are no trades", got)
	}
}

func TestTrade(t *testing.T) {
	m, _ := newSnapshot(t)
	trades := slices.Collect(m.Trades())
	if got, want := Trade(trades[0]), "Bought 3 AAPL at $100.00 for $300.00"; got != want {
		t.Errorf("Trade() = %q, want %q", got, want)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	_, s := newSnapshot(t)
	v, ok := s.Instrument("msft")
	if !ok {
		t.Fatal("snapshot has no MSFT")
	}
	assertContains(t, HistoryMarkdown(v, s.Currency), "## MSFT history", "$50.00", "$45.00", "-10.00%")
}

func TestSparkline(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"flat", []float64{3, 3, 3}, "▅▅▅"},
		{"rising", []float64{1, 2, 3, 4, 5, 6, 7, 8}, "▁▂▃▄▅▆▇█"},
		{"falling", []float64{8, 1}, "█▁"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sparkline(tc.values); got != tc.want {
				t.Errorf("Sparkline(%v) = %q, want %q", tc.values, got, tc.want)
			}
		})
	}
}
