package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	rewards "github.com/etnz/celrewards"
	"github.com/etnz/celrewards/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	top   int
	title string
	raw   bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the headline figures of a report" }
func (*summaryCmd) Usage() string {
	return `rewards summary [-top <n>] [-raw] <report.json>

  Displays the stats, loyalty tiers, most held coins and interest rankings
  of a report produced by 'rewards process'.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 10, "Number of coins listed")
	f.StringVar(&c.title, "title", "", "Title of the summary")
	f.BoolVar(&c.raw, "raw", false, "Print plain markdown instead of rendering it")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one report")
		return subcommands.ExitUsageError
	}

	m, err := decodeReport(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding report %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	title := c.title
	if title == "" {
		title = "Rewards Summary " + rewards.ExtractName(f.Arg(0))
	}
	doc := renderer.SummaryMarkdown(m, renderer.SummaryOptions{Title: title, Top: c.top})
	if c.raw {
		fmt.Print(doc)
		return subcommands.ExitSuccess
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// decodeReport reads a report file, "-" for stdin.
func decodeReport(filename string) (*rewards.Metrics, error) {
	if filename == "-" {
		return rewards.DecodeMetrics(os.Stdin)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rewards.DecodeMetrics(f)
}
