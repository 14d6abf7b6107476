package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/liftgen/internal/testutil"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_InFlagAndPositionalArgs(t *testing.T) {
	src := t.TempDir()
	a := writeScenario(t, src, "a.yml", testutil.SingleShaftYAML)
	b := writeScenario(t, src, "b.yml", testutil.SingleShaftYAML)
	c := writeScenario(t, src, "c.hcl", testutil.SingleShaftHCL)
	out := t.TempDir()

	var stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-in", a + " " + b,
		"-out", out,
		"-line-ending", "lf",
		"-log-level", "error",
		c,
	}, &stderr)
	require.NoError(t, err)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Equal(t, testutil.SingleShaftOutput, string(data), name)
	}
}

func TestRun_StrategyFlagOverridesConfig(t *testing.T) {
	src := t.TempDir()
	in := writeScenario(t, src, "tower.yml", testutil.SingleShaftYAML)
	cfgPath := writeScenario(t, src, "liftgen.yaml", "compiler:\n  strategy: per_elevator\n  line_ending: lf\n")

	var stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-config", cfgPath,
		"-strategy", "floor_flag",
		"-log-level", "error",
		in,
	}, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(src, "tower.txt"))
	require.NoError(t, err)
	// With one elevator serving every floor both strategies agree.
	assert.Equal(t, testutil.SingleShaftOutput, string(data))
}

func TestRun_InvalidInputFails(t *testing.T) {
	src := t.TempDir()
	in := writeScenario(t, src, "bad.yml", "floors: []\nelevators:\n  - startFloor: 1\npersons: []\n")

	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-log-level", "error", in}, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startFloor")

	_, statErr := os.Stat(filepath.Join(src, "bad.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_InvalidFlagValue(t *testing.T) {
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-strategy", "random"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiler.strategy")
}

func TestRun_NoInputs(t *testing.T) {
	var stderr bytes.Buffer
	assert.NoError(t, run(context.Background(), []string{"-log-level", "error"}, &stderr))
}

func TestRun_Help(t *testing.T) {
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-h"}, &stderr)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, stderr.String(), "usage: liftgen")
}
