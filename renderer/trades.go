package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/marketsim"
	md "github.com/nao1215/markdown"
)

// Trade renders a trade to a one line sentence.
func Trade(t marketsim.Trade) string {
	switch t.Side {
	case marketsim.SideBuy:
		return fmt.Sprintf("Bought %s %s at %s for %s", t.Quantity, t.Symbol, t.Price, t.Amount)
	case marketsim.SideSell:
		return fmt.Sprintf("Sold %s %s at %s for %s", t.Quantity, t.Symbol, t.Price, t.Amount)
	default:
		return t.String()
	}
}

// TradesMarkdown renders the trade journal.
func TradesMarkdown(trades []marketsim.Trade) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Trades")
	if len(trades) == 0 {
		doc.PlainText("No trades.")
		return doc.String()
	}
	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, []string{
			strconv.Itoa(t.Day),
			string(t.Side),
			t.Symbol,
			t.Quantity.String(),
			t.Price.String(),
			t.CashFlow().SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Day", "Side", "Stock", "Quantity", "Price", "Cash"},
		Rows:   rows,
	})
	return doc.String()
}
