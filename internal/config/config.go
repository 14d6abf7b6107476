// Package config provides Viper-based configuration loading for the scenario compiler.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/liftgen/internal/compiler"
)

// CompilerConfig holds compilation settings.
type CompilerConfig struct {
	// Strategy selects the call interface classification: "per_elevator" or "floor_flag".
	Strategy string `mapstructure:"strategy"`
	// LineEnding is the record terminator: "platform", "lf", or "crlf".
	LineEnding string `mapstructure:"line_ending"`
}

// Classifier returns the classification strategy named by Strategy.
//
// Postcondition: Returns a non-nil Classifier or a non-nil error.
func (c CompilerConfig) Classifier() (compiler.Classifier, error) {
	return compiler.ClassifierFor(c.Strategy)
}

// Newline returns the line terminator named by LineEnding.
func (c CompilerConfig) Newline() (string, error) {
	return compiler.LineEnding(c.LineEnding)
}

// OutputConfig holds output file placement settings.
type OutputConfig struct {
	// Dir is the output directory. Empty writes each output beside its input.
	Dir string `mapstructure:"dir"`
	// Extension replaces the input's format extension, including the dot.
	Extension string `mapstructure:"extension"`
}

// BatchConfig holds settings for compiling several inputs in one run.
type BatchConfig struct {
	// Workers bounds the number of scenarios compiled concurrently.
	Workers int `mapstructure:"workers"`
	// FailFast stops the batch at the first failed input.
	FailFast bool `mapstructure:"fail_fast"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Compiler CompilerConfig `mapstructure:"compiler"`
	Output   OutputConfig   `mapstructure:"output"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateCompiler(c.Compiler); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOutput(c.Output); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBatch(c.Batch); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCompiler(c CompilerConfig) error {
	var errs []string
	validStrategies := map[string]bool{compiler.StrategyPerElevator: true, compiler.StrategyFloorFlag: true}
	if !validStrategies[c.Strategy] {
		errs = append(errs, fmt.Sprintf("compiler.strategy must be one of [%s, %s], got %q",
			compiler.StrategyPerElevator, compiler.StrategyFloorFlag, c.Strategy))
	}
	validEndings := map[string]bool{
		compiler.LineEndingPlatform: true,
		compiler.LineEndingLF:       true,
		compiler.LineEndingCRLF:     true,
	}
	if !validEndings[c.LineEnding] {
		errs = append(errs, fmt.Sprintf("compiler.line_ending must be one of [platform, lf, crlf], got %q", c.LineEnding))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	if !strings.HasPrefix(o.Extension, ".") || len(o.Extension) < 2 {
		return fmt.Errorf("output.extension must start with '.' and name an extension, got %q", o.Extension)
	}
	if strings.ContainsAny(o.Extension, `/\`) {
		return errors.New("output.extension must not contain path separators")
	}
	return nil
}

func validateBatch(b BatchConfig) error {
	if b.Workers < 1 {
		return fmt.Errorf("batch.workers must be >= 1, got %d", b.Workers)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Precondition: path must be empty or name a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with LIFTGEN_ prefix
	v.SetEnvPrefix("LIFTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment
// override is present. Load registers these values as Viper defaults.
//
// Postcondition: Returns a Config that passes Validate.
func Default() Config {
	return Config{
		Compiler: CompilerConfig{
			Strategy:   compiler.StrategyPerElevator,
			LineEnding: compiler.LineEndingPlatform,
		},
		Output: OutputConfig{
			Dir:       "",
			Extension: ".txt",
		},
		Batch: BatchConfig{
			Workers:  4,
			FailFast: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("compiler.strategy", d.Compiler.Strategy)
	v.SetDefault("compiler.line_ending", d.Compiler.LineEnding)

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.extension", d.Output.Extension)

	v.SetDefault("batch.workers", d.Batch.Workers)
	v.SetDefault("batch.fail_fast", d.Batch.FailFast)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}
