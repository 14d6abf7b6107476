// Package main provides the liftgen binary, which compiles lift simulation
// scenarios (YAML or HCL) into the simulator's record format.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/liftgen/internal/batch"
	"github.com/cory-johannsen/liftgen/internal/compiler"
	"github.com/cory-johannsen/liftgen/internal/config"
	"github.com/cory-johannsen/liftgen/internal/observability"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run parses args, builds the compiler from configuration, and compiles every
// input. Flags that are set explicitly override configuration values.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	start := time.Now()

	fs := flag.NewFlagSet("liftgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to configuration file (optional)")
	in := fs.String("in", "", "space-separated input file paths")
	out := fs.String("out", "", "output directory path; default writes beside each input")
	strategy := fs.String("strategy", "", "call interface strategy: per_elevator or floor_flag")
	lineEnding := fs.String("line-ending", "", "record terminator: platform, lf, or crlf")
	workers := fs.Int("workers", 0, "number of scenarios compiled concurrently")
	failFast := fs.Bool("fail-fast", false, "stop at the first failed input")
	logLevel := fs.String("log-level", "", "minimum log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: liftgen [flags] [-in \"a.yml b.yml\"] [file ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output.Dir = *out
		case "strategy":
			cfg.Compiler.Strategy = *strategy
		case "line-ending":
			cfg.Compiler.LineEnding = *lineEnding
		case "workers":
			cfg.Batch.Workers = *workers
		case "fail-fast":
			cfg.Batch.FailFast = *failFast
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	classifier, err := cfg.Compiler.Classifier()
	if err != nil {
		return err
	}
	newline, err := cfg.Compiler.Newline()
	if err != nil {
		return err
	}

	inputs := append(strings.Fields(*in), fs.Args()...)
	if len(inputs) == 0 {
		logger.Warn("no input files given")
		return nil
	}

	logger.Debug("starting compilation",
		zap.Int("inputs", len(inputs)),
		zap.String("strategy", cfg.Compiler.Strategy),
		zap.String("output_dir", cfg.Output.Dir),
		zap.Int("workers", cfg.Batch.Workers),
	)

	c := compiler.New(classifier, newline, logger.Named("compiler"))
	runner := batch.New(c, cfg.Output, cfg.Batch, logger.Named("batch"))
	if _, err := runner.Run(ctx, inputs); err != nil {
		return err
	}

	logger.Info("compilation complete",
		zap.Int("inputs", len(inputs)),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return nil
}
