// Package cmd implements the CLI application to aggregate rewards extracts.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/celrewards/config"
	"github.com/etnz/celrewards/logging"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Commands lists the subcommands, in help order.
// A main package will Register() them, and Execute() the user-selected one.
var Commands = []subcommands.Command{
	&processCmd{},
	&summaryCmd{},
	&queryCmd{},
	&topicCmd{},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "rewards")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file (or set "+config.EnvConfigFile+")")
var logLevel = flag.String("log-level", "", "Override the log level: debug, info, warn or error")

// loadConfig loads and validates the configuration, then builds the logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, nil, err
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text if rendering fails.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
