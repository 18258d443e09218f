// Package cmd implements the CLI application to play the market simulation.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/marketsim/config"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&playCmd{}, "game")
	c.Register(&simulateCmd{}, "game")

	c.Register(&configCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "marketsim.yaml", "Path to the game configuration file (YAML format)")
var plain = flag.Bool("plain", false, "print raw markdown instead of rendering it for the terminal")

// LoadConfig loads the app configuration file.
func LoadConfig() (*config.Config, error) {
	return config.Load(*configFile)
}

// loggerFrom returns the logger passed to commander.Execute, or a no-op logger.
func loggerFrom(args []interface{}) *zap.Logger {
	for _, a := range args {
		if l, ok := a.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// renderMarkdown renders md for the terminal, unless -plain is set.
func renderMarkdown(md string) string {
	if *plain {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }
