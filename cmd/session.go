package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/etnz/marketsim"
	"github.com/etnz/marketsim/renderer"
	"go.uber.org/zap"
)

// Session drives one game: it turns player commands and clock ticks into
// market operations.
//
// The market is guarded by a single lock, because days may advance from a
// ticker goroutine while the player trades.
type Session struct {
	mu     sync.Mutex
	market *marketsim.Market
	log    *zap.SugaredLogger
	out    io.Writer
	render func(md string) string
}

// NewSession creates a session on market, writing to out.
//
// render turns markdown into what is written to out, nil writes raw markdown.
func NewSession(market *marketsim.Market, log *zap.Logger, out io.Writer, render func(string) string) *Session {
	if render == nil {
		render = func(md string) string { return md }
	}
	return &Session{market: market, log: log.Sugar(), out: out, render: render}
}

// Advance moves the market days forward.
func (s *Session) Advance(days int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance(days)
}

func (s *Session) advance(days int) {
	for range days {
		s.market.AdvanceAll()
	}
	s.log.Debugw("market advanced", "day", s.market.Day())
}

// Tick advances the market by one day and prints a one line ticker tape.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance(1)
	fmt.Fprintln(s.out, s.tape())
}

// tape summarizes current prices on one line.
func (s *Session) tape() string {
	parts := []string{fmt.Sprintf("Day %d", s.market.Day())}
	for inst := range s.market.Instruments() {
		parts = append(parts, fmt.Sprintf("%s %s (%s)", inst.Symbol(), marketsim.M(inst.Price(), s.market.Currency()), inst.Change().SignedString()))
	}
	return strings.Join(parts, " | ")
}

// Trade validates free-text input and applies the trade.
//
// Symbols are matched ignoring case; quantities must be whole numbers.
func (s *Session) Trade(side marketsim.Side, symbolText, quantityText string) (marketsim.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trade(side, symbolText, quantityText)
}

func (s *Session) trade(side marketsim.Side, symbolText, quantityText string) (marketsim.Trade, error) {
	symbol := strings.ToUpper(strings.TrimSpace(symbolText))
	if _, ok := s.market.Lookup(symbol); !ok {
		return marketsim.Trade{}, fmt.Errorf("%w: %q", marketsim.ErrUnknownInstrument, symbol)
	}
	quantity, err := marketsim.ParseQuantity(quantityText)
	if err != nil {
		return marketsim.Trade{}, err
	}
	var t marketsim.Trade
	switch side {
	case marketsim.SideBuy:
		t, err = s.market.Buy(symbol, quantity)
	case marketsim.SideSell:
		t, err = s.market.Sell(symbol, quantity)
	default:
		err = fmt.Errorf("unsupported trade side %q", side)
	}
	if err != nil {
		s.log.Infow("trade rejected", "side", side, "symbol", symbol, "quantity", quantity.String(), "error", err)
		return t, err
	}
	s.log.Infow("trade applied", "id", t.ID.String(), "day", t.Day, "side", side, "symbol", symbol, "quantity", quantity.String(), "amount", t.Amount.String())
	return t, nil
}

// Preview returns the live quote of a trade being typed.
func (s *Session) Preview(symbolText, quantityText string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return marketsim.Preview(s.market, symbolText, quantityText)
}

// Snapshot captures the market state.
func (s *Session) Snapshot() *marketsim.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.market.Snapshot()
}

// Trades returns the applied trades, oldest first.
func (s *Session) Trades() []marketsim.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Collect(s.market.Trades())
}

const sessionHelp = `Commands:
  buy SYMBOL QTY     buy shares at the current price
  sell SYMBOL QTY    sell shares at the current price
  quote SYMBOL QTY   preview the value of a trade
  next [N]           move N days forward (default 1)
  status             show prices and your portfolio
  history SYMBOL     show every price of a stock
  trades             show the trades you made
  help               show this help
  quit               end the game
`

// Exec runs one command line and reports whether the session should end.
func (s *Session) Exec(line string) (quit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "buy", "sell":
		if len(args) != 2 {
			fmt.Fprintf(s.out, "usage: %s SYMBOL QTY\n", name)
			return false
		}
		side := marketsim.SideBuy
		if name == "sell" {
			side = marketsim.SideSell
		}
		t, err := s.trade(side, args[0], args[1])
		fmt.Fprintln(s.out, tradeMessage(side, t, err))
		fmt.Fprintf(s.out, "Cash: %s\n", s.market.Portfolio().Cash())

	case "quote":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "usage: quote SYMBOL QTY")
			return false
		}
		fmt.Fprintln(s.out, marketsim.Preview(s.market, args[0], args[1]))

	case "next":
		days := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				fmt.Fprintf(s.out, "Invalid number of days %q\n", args[0])
				return false
			}
			days = n
		}
		s.advance(days)
		fmt.Fprint(s.out, s.render(renderer.MarketMarkdown(s.market.Snapshot())))

	case "status":
		fmt.Fprint(s.out, s.render(renderer.SnapshotMarkdown(s.market.Snapshot())))

	case "history":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: history SYMBOL")
			return false
		}
		snap := s.market.Snapshot()
		v, ok := snap.Instrument(args[0])
		if !ok {
			fmt.Fprintln(s.out, "Invalid stock name")
			return false
		}
		fmt.Fprint(s.out, s.render(renderer.HistoryMarkdown(v, snap.Currency)))

	case "trades":
		fmt.Fprint(s.out, s.render(renderer.TradesMarkdown(slices.Collect(s.market.Trades()))))

	case "help", "?":
		fmt.Fprint(s.out, sessionHelp)

	case "quit", "exit":
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command %q, type help for the list of commands\n", name)
	}
	return false
}

// tradeMessage tells the player the outcome of a trade.
func tradeMessage(side marketsim.Side, t marketsim.Trade, err error) string {
	switch {
	case err == nil && side == marketsim.SideBuy:
		return "Purchase successful: " + renderer.Trade(t)
	case err == nil:
		return "Sale successful: " + renderer.Trade(t)
	case errors.Is(err, marketsim.ErrUnknownInstrument):
		return "Invalid stock name"
	case errors.Is(err, marketsim.ErrInvalidQuantity):
		return "Invalid quantity"
	case errors.Is(err, marketsim.ErrInsufficientFunds):
		return "Not enough cash"
	case errors.Is(err, marketsim.ErrInsufficientHoldings):
		return "Not enough stocks"
	default:
		return "Error: " + err.Error()
	}
}

// Run reads commands from in until quit, end of input or ctx cancellation.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // stops the reader when the session ends first

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			if s.Exec(line) {
				return nil
			}
		}
	}
}
