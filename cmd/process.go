package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	rewards "github.com/etnz/celrewards"
	"github.com/etnz/celrewards/config"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	output       string
	outputDir    string
	workers      int
	debugRows    int
	debugOutput  string
	debugMetrics string
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "aggregate weekly rewards extracts into reports" }
func (*processCmd) Usage() string {
	return `rewards process [-o <report>] [-dir <dir>] [-debug-rows <n>] <extract>...

  Aggregates each extract (a CSV file, "-" for stdin, a .gz file or a
  gs://bucket/object URI) into its own JSON report. Weeks are independent:
  every extract yields one report, named after the extract in the output
  directory unless -o is given.

  With -debug-rows, only the first rows are processed, the decoded rows are
  written to -debug-output and the report to -debug-metrics.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Report file for a single extract, '-' for stdout")
	f.StringVar(&c.outputDir, "dir", "", "Directory receiving <extract>.json reports (defaults to the configured output dir)")
	f.IntVar(&c.workers, "workers", 0, "Number of coins ranked concurrently (defaults to the configured workers)")
	f.IntVar(&c.debugRows, "debug-rows", 0, "Process only that many rows and write debug files")
	f.StringVar(&c.debugOutput, "debug-output", "", "Debug file receiving the decoded rows")
	f.StringVar(&c.debugMetrics, "debug-metrics", "", "Debug file receiving the partial report")
}

func (c *processCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one extract is required")
		return subcommands.ExitUsageError
	}
	if c.output != "" && f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: -o cannot be used with several extracts, use -dir")
		return subcommands.ExitUsageError
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer logger.Sync()
	c.override(cfg)

	if cfg.Debug.Rows > 0 && f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: debug runs process a single extract")
		return subcommands.ExitUsageError
	}

	for _, name := range f.Args() {
		if err := c.processExtract(ctx, cfg, logger.With(zap.String("extract", name)), name); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// override applies the command line flags on top of the configuration.
func (c *processCmd) override(cfg *config.Config) {
	if c.outputDir != "" {
		cfg.Output.Dir = c.outputDir
	}
	if c.workers > 0 {
		cfg.Engine.Workers = c.workers
	}
	if c.debugRows > 0 {
		cfg.Debug.Rows = c.debugRows
	}
	if c.debugOutput != "" {
		cfg.Debug.RowsFile = c.debugOutput
	}
	if c.debugMetrics != "" {
		cfg.Debug.MetricsFile = c.debugMetrics
	}
}

func (c *processCmd) processExtract(ctx context.Context, cfg *config.Config, logger *zap.Logger, name string) error {
	rc, err := rewards.OpenExtract(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	engine := rewards.NewEngine(rewards.WithLogger(logger), rewards.WithWorkers(cfg.Engine.Workers))
	opts := rewards.ProcessOptions{
		MaxRows:       cfg.Debug.Rows,
		ProgressEvery: cfg.Engine.ProgressEvery,
	}
	debug := cfg.Debug.Rows > 0
	var rows []rewards.Row
	if debug {
		opts.OnRow = func(row rewards.Row) { rows = append(rows, row) }
	}

	logger.Info("processing extract, please wait a moment")
	metrics, err := rewards.Process(ctx, rc, engine, opts)
	if err != nil {
		return err
	}
	if n := len(engine.Warnings()); n > 0 {
		logger.Warn("rows with an unexpected loyalty tier were not counted in the tier summary", zap.Int("rows", n))
	}

	if debug {
		if err := writeTo(cfg.Debug.RowsFile, func(w io.Writer) error { return rewards.EncodeRows(w, rows) }); err != nil {
			return err
		}
		logger.Info("wrote debug rows", zap.String("file", cfg.Debug.RowsFile), zap.Int("rows", len(rows)))
		return c.writeMetrics(logger, cfg.Debug.MetricsFile, metrics)
	}

	output := c.output
	if output == "" {
		output = filepath.Join(cfg.Output.Dir, rewards.ExtractName(name)+".json")
	}
	return c.writeMetrics(logger, output, metrics)
}

func (c *processCmd) writeMetrics(logger *zap.Logger, filename string, m *rewards.Metrics) error {
	if err := writeTo(filename, func(w io.Writer) error { return rewards.EncodeMetrics(w, m) }); err != nil {
		return err
	}
	logger.Info("done, wrote report", zap.String("file", filename))
	return nil
}

// writeTo creates filename (and its directory) and writes it with write.
// "-" writes to stdout.
func writeTo(filename string, write func(io.Writer) error) error {
	if filename == "-" {
		return write(os.Stdout)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", filename, err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
