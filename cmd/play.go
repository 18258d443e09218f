package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/marketsim"
	"github.com/etnz/marketsim/renderer"
	"github.com/google/subcommands"
)

// playCmd holds the flags for the 'play' subcommand.
type playCmd struct {
	tick    time.Duration
	journal string
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "play the market game interactively" }
func (*playCmd) Usage() string {
	return `msim play [-tick <interval>] [-journal <file>]

  Opens a market and reads trading commands from the standard input.
  Type 'help' in the game for the list of commands.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.tick, "tick", -1, "Interval between automatic days, e.g. 2s. 0 disables them. Defaults to the config tick.")
	f.StringVar(&c.journal, "journal", "", "Write the trades of the game to this file (JSONL format) when it ends.")
}

func (c *playCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := loggerFrom(args)

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.tick >= 0 {
		cfg.Tick = c.tick
	}

	market, seed, err := cfg.NewMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Sugar().Infow("game started", "seed", seed, "cash", cfg.Cash, "currency", cfg.Currency)

	session := NewSession(market, log, os.Stdout, renderMarkdown)
	fmt.Printf("Seed %d (replay with MARKETSIM_SEED=%d). Type 'help' for commands.\n", seed, seed)
	fmt.Print(renderMarkdown(renderer.SnapshotMarkdown(session.Snapshot())))

	if cfg.Tick > 0 {
		stop := startTicker(session, cfg.Tick)
		defer stop()
	}

	// an interrupt ends the game like quit does.
	if err := session.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error reading commands: %v\n", err)
		return subcommands.ExitFailure
	}

	s := session.Snapshot()
	fmt.Printf("Game over on day %d with %s.\n", s.Day, s.TotalValue)

	if c.journal != "" {
		if err := writeJournal(c.journal, session.Trades()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing journal %q: %v\n", c.journal, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Trades written to %s\n", c.journal)
	}
	return subcommands.ExitSuccess
}

// writeJournal writes trades to filename, replacing its content.
func writeJournal(filename string, trades []marketsim.Trade) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := marketsim.EncodeTrades(f, trades); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
