package main

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runApp(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(zap.NewNop(), &out, config)
	err := app.Run(context.Background(), append([]string{"memobench"}, args...))
	return out.String(), err
}

func TestRangeCommand(t *testing.T) {
	out, err := runApp(t, "",
		"range",
		"--cells", "5000",
		"--queries", "2000",
		"--capacity", "64",
		"--update-ratio", "0.05",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "cells: 5,000")
	assert.Contains(t, out, "capacity: 64")
	assert.Contains(t, out, "time with LRU cache")
}

func TestRangeCommand_InvalidFlags(t *testing.T) {
	_, err := runApp(t, "", "range", "--capacity", "0")
	assert.Error(t, err)
	_, err = runApp(t, "", "range", "--hot-ratio", "1.5")
	assert.Error(t, err)
}

func TestRangeCommand_Config(t *testing.T) {
	config := filepath.Join(t.TempDir(), "memobench.yaml")
	require.NoError(t, os.WriteFile(config, []byte(
		"range:\n  cells: 777\n  queries: 100\n"), 0o600))

	out, err := runApp(t, config, "range")
	require.NoError(t, err)
	assert.Contains(t, out, "cells: 777")

	out, err = runApp(t, config, "range", "--cells", "999")
	require.NoError(t, err)
	assert.Contains(t, out, "cells: 999", "flags override the config file")
}

func TestRangeCommand_Environment(t *testing.T) {
	config := filepath.Join(t.TempDir(), "memobench.yaml")
	require.NoError(t, os.WriteFile(config, []byte(
		"range:\n  queries: 100\n  capacity: 50\n"), 0o600))
	t.Setenv("MEMOBENCH_QUERIES", "123")
	t.Setenv("MEMOBENCH_CAPACITY", "7")

	out, err := runApp(t, config, "range", "--cells", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "queries: 123", "environment overrides the config file")
	assert.Contains(t, out, "capacity: 7")

	out, err = runApp(t, config, "range", "--cells", "1000", "--capacity", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "capacity: 9", "flags override the environment")
}

func TestFibCommand_Environment(t *testing.T) {
	t.Setenv("MEMOBENCH_FIB_MAX", "100")
	t.Setenv("MEMOBENCH_FIB_STEP", "25")
	t.Setenv("MEMOBENCH_LRU_SIZE", "8")

	out, err := runApp(t, "", "fib")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 5) // Header and n = 0, 25, 50, 75.
}

func TestFibCommand(t *testing.T) {
	out, err := runApp(t, "", "fib", "--max", "200", "--step", "50")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5) // Header and n = 0, 50, 100, 150.
	assert.Contains(t, lines[0], "Splay Tree Time (s)")
	assert.Contains(t, lines[0], "LRU Cache Time (s)")
	assert.Contains(t, lines[0], "ARC Cache Time (s)")
	for i, n := range []string{"0", "50", "100", "150"} {
		fields := strings.Fields(lines[i+1])
		require.Len(t, fields, 5, lines[i+1])
		assert.Equal(t, n, fields[0])
	}
}

func TestRunRange_Checksums(t *testing.T) {
	for _, params := range []rangeParams{
		{cells: 2, queries: 50, capacity: 1, hotRatio: 0.5, updateRatio: 0.5, seed: 3},
		{cells: 3000, queries: 3000, capacity: 16, hotRatio: 0.8, updateRatio: 0.1, seed: 7},
		{cells: 100_000, queries: 500, capacity: 1000, hotRatio: 0.8, seed: 1},
	} {
		report, err := runRange(params, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, report.uncached.checksum, report.cached.checksum)
		assert.Equal(t, params.queries, report.generatedQueries+report.generatedUpdates)
		assert.Equal(t, report.generatedQueries, report.stats.Hits+report.stats.Misses)
	}
}

func TestGenerateOperations_Bounds(t *testing.T) {
	params := rangeParams{cells: 1500, queries: 5000, hotRatio: 0.5, updateRatio: 0.2}
	ops := generateOperations(rand.New(rand.NewSource(1)), params)
	require.Len(t, ops, params.queries)
	for _, op := range ops {
		if op.isUpdate {
			assert.GreaterOrEqual(t, op.low, 0)
			assert.Less(t, op.low, params.cells)
			continue
		}
		assert.GreaterOrEqual(t, op.low, 0)
		assert.LessOrEqual(t, op.low, op.high)
		assert.Less(t, op.high, params.cells)
	}
}

func TestPopularRanges_DefaultScale(t *testing.T) {
	assert.Equal(t,
		[][2]int{{10, 500}, {1000, 2000}, {50_000, 70_000}},
		popularRanges(100_000))
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.WarnLevel))
	assert.True(t, logger.Core().Enabled(zap.ErrorLevel))

	logger, err = newLogger("DEBUG")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = newLogger("chatty")
	assert.Error(t, err)
}
