package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/marketsim"
	md "github.com/nao1215/markdown"
)

// trendWidth is the number of days shown in the trend column.
const trendWidth = 20

// SnapshotMarkdown renders the market and the portfolio of a snapshot.
func SnapshotMarkdown(s *marketsim.Snapshot) string {
	return MarketMarkdown(s) + "\n" + PortfolioMarkdown(s)
}

// MarketMarkdown renders the instruments table of a snapshot.
func MarketMarkdown(s *marketsim.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Day %d", s.Day))

	rows := make([][]string, 0, len(s.Instruments))
	for _, v := range s.Instruments {
		rows = append(rows, []string{
			v.Symbol,
			price(v.Price, s.Currency),
			v.Change.SignedString(),
			price(v.Low, s.Currency),
			price(v.High, s.Currency),
			Sparkline(tail(v.History, trendWidth)),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Stock", "Price", "Change", "Low", "High", "Trend"},
		Rows:   rows,
	})
	return doc.String()
}

// PortfolioMarkdown renders the cash and holdings of a snapshot.
func PortfolioMarkdown(s *marketsim.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Portfolio")
	doc.PlainText(fmt.Sprintf("Cash: %s", s.Cash))
	doc.PlainText("")

	if len(s.Holdings) == 0 {
		doc.PlainText("No holdings.")
	} else {
		rows := make([][]string, 0, len(s.Holdings))
		for _, h := range s.Holdings {
			rows = append(rows, []string{h.Symbol, h.Quantity.String(), h.Price.String(), h.Value.String()})
		}
		doc.Table(md.TableSet{
			Header: []string{"Stock", "Quantity", "Price", "Value"},
			Rows:   rows,
		})
	}
	doc.PlainText("")
	doc.PlainText(fmt.Sprintf("Total value: %s", s.TotalValue))
	return doc.String()
}

// HistoryMarkdown renders the full price history of one instrument.
func HistoryMarkdown(v marketsim.InstrumentView, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("%s history", v.Symbol))
	doc.PlainText(Sparkline(v.History))
	doc.PlainText("")

	rows := make([][]string, 0, len(v.History))
	for day, p := range v.History {
		move := "-"
		if day > 0 {
			prev := v.History[day-1]
			move = marketsim.Percent((p - prev) / prev * 100).SignedString()
		}
		rows = append(rows, []string{strconv.Itoa(day), price(p, currency), move})
	}
	doc.Table(md.TableSet{
		Header: []string{"Day", "Price", "Move"},
		Rows:   rows,
	})
	return doc.String()
}

func price(v float64, currency string) string { return marketsim.M(v, currency).String() }

func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
