package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marketsim/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `msim topic [<topic>...]

Show documentation for the given topics. Without topics, show the overview
and the list of available topics. Use '*' for all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := topicDoc(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)

	return subcommands.ExitSuccess
}

// topicDoc returns the markdown of the requested topics, or the overview,
// which lists every topic, when none is requested.
func topicDoc(topics []string) (string, error) {
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	return docs.Topics(topics...)
}
