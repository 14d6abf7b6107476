// Package batch compiles a set of scenario files into record files, one
// output per input.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/liftgen/internal/compiler"
	"github.com/cory-johannsen/liftgen/internal/config"
	"github.com/cory-johannsen/liftgen/internal/observability"
	"github.com/cory-johannsen/liftgen/internal/scenario"
)

// ErrSkipped marks inputs that were not attempted because the batch stopped early.
var ErrSkipped = errors.New("skipped after an earlier failure")

// ErrOutputCollision marks an input whose output path is already claimed by
// an earlier input in the same batch.
var ErrOutputCollision = errors.New("output path already produced by another input")

// Result records the outcome for one input.
type Result struct {
	Input  string
	Output string
	// Bytes is the size of the written output; zero on failure.
	Bytes int
	Err   error
}

// Runner compiles scenario files and writes their outputs.
type Runner struct {
	compiler *compiler.Compiler
	output   config.OutputConfig
	batch    config.BatchConfig
	logger   *zap.Logger
}

// New constructs a Runner.
//
// Precondition: c and logger must be non-nil; output and batch must have
// passed config validation.
// Postcondition: returns a non-nil Runner.
func New(c *compiler.Compiler, output config.OutputConfig, batch config.BatchConfig, logger *zap.Logger) *Runner {
	return &Runner{compiler: c, output: output, batch: batch, logger: logger}
}

// OutputPath derives the output file for input: the input's base name with
// its scenario extension replaced by ext, placed in outputDir or, when
// outputDir is empty, beside the input.
//
// Postcondition: Returns an absolute path when outputDir is empty. The
// input's directory has its symlinks resolved when it exists, so inputs
// reached through different links map to the same output path.
func OutputPath(input, outputDir, ext string) (string, error) {
	base := filepath.Base(input)
	_, inExt := scenario.FormatForPath(base)
	name := strings.TrimSuffix(base, inExt) + ext

	if outputDir != "" {
		return filepath.Join(outputDir, name), nil
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", input, err)
	}
	dir := filepath.Dir(abs)
	// A missing directory fails later, when the input is read.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	return filepath.Join(dir, name), nil
}

// Run compiles every input, at most batch.workers at a time. Each input is
// independent: a failure never leaves a partial output file. Unless
// batch.fail_fast is set, every input is attempted. An
// *compiler.InternalConsistencyError always stops the batch.
//
// Postcondition: Returns one Result per input in input order, and a non-nil
// error joining every failure when any input failed.
func (r *Runner) Run(ctx context.Context, inputs []string) ([]Result, error) {
	overall := time.Now()
	logger, _ := observability.RunLogger(r.logger)

	if r.output.Dir != "" {
		if err := os.MkdirAll(r.output.Dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", r.output.Dir, err)
		}
	}

	results := make([]Result, len(inputs))
	claimed := make(map[string]string, len(inputs))
	for i, in := range inputs {
		results[i].Input = in
		out, err := OutputPath(in, r.output.Dir, r.output.Extension)
		if err != nil {
			results[i].Err = err
			continue
		}
		if prev, ok := claimed[out]; ok {
			results[i].Err = fmt.Errorf("%w: %s (from %s)", ErrOutputCollision, out, prev)
			continue
		}
		claimed[out] = in
		results[i].Output = out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.batch.Workers)
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			logger.Error("input rejected", zap.String("input", res.Input), zap.Error(res.Err))
			if r.batch.FailFast {
				g.Go(func() error { return res.Err })
			}
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				res.Err = ErrSkipped
				return nil
			}
			r.compileOne(logger, res)
			if res.Err == nil {
				return nil
			}
			logger.Error("compilation failed", zap.String("input", res.Input), zap.Error(res.Err))
			var ice *compiler.InternalConsistencyError
			if r.batch.FailFast || errors.As(res.Err, &ice) {
				return res.Err
			}
			return nil
		})
	}
	stopErr := g.Wait()

	var errs []error
	skipped := 0
	for _, res := range results {
		switch {
		case errors.Is(res.Err, ErrSkipped):
			skipped++
		case res.Err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", res.Input, res.Err))
		}
	}
	logger.Info("batch complete",
		zap.Int("inputs", len(inputs)),
		zap.Int("failed", len(errs)),
		zap.Int("skipped", skipped),
		zap.Duration("elapsed", time.Since(overall).Round(time.Millisecond)),
	)

	if len(errs) == 0 && skipped > 0 {
		cause := stopErr
		if cause == nil {
			cause = ctx.Err()
		}
		errs = append(errs, fmt.Errorf("%d input(s) %w: %v", skipped, ErrSkipped, cause))
	}
	return results, errors.Join(errs...)
}

// compileOne reads, compiles, and writes a single input, recording the
// outcome in res.
func (r *Runner) compileOne(logger *zap.Logger, res *Result) {
	start := time.Now()

	s, err := scenario.LoadFile(res.Input)
	if err != nil {
		res.Err = err
		return
	}
	data, err := r.compiler.Compile(s)
	if err != nil {
		res.Err = err
		return
	}
	if err := writeAtomic(res.Output, data); err != nil {
		res.Err = err
		return
	}
	res.Bytes = len(data)

	logger.Info("wrote",
		zap.String("input", res.Input),
		zap.String("output", res.Output),
		zap.Int("bytes", res.Bytes),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
}

// writeAtomic writes data to a temporary file beside path and renames it into
// place, so path either holds the complete output or is left untouched.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary output for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("moving output into place at %s: %w", path, err)
	}
	return nil
}
