// Command msim is a stock market simulation game played in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/marketsim/cmd"
	"github.com/etnz/marketsim/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"go.uber.org/zap"
)

var verbose = flag.Bool("v", false, "log debug messages to stderr")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// shell completion, active only when invoked by the shell (COMP_LINE set).
	completion().Complete("msim")

	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx, logger)
	stop()
	logger.Sync()
	os.Exit(int(status))
}

// newLogger logs warnings and errors only, unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

func completion() *complete.Command {
	topics, _ := docs.All()
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"play": {Flags: map[string]complete.Predictor{
				"tick":    predict.Set{"0", "1s", "2s", "5s"},
				"journal": predict.Files("*.jsonl"),
			}},
			"simulate": {Flags: map[string]complete.Predictor{
				"days":   predict.Something,
				"json":   predict.Nothing,
				"select": predict.Set{"$.instruments[*].price", "$.holdings", "$.totalValue"},
			}},
			"config":   {},
			"topic":    {Args: predict.Set(topics)},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"plain":  predict.Nothing,
			"v":      predict.Nothing,
		},
	}
}
