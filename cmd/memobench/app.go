package main

import (
	"context"
	"fmt"
	"io"
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	configEnv     = "MEMOBENCH_CONFIG"
	defaultConfig = "memobench.yaml"
)

// configPath resolves the YAML file flags may be read from.
// Missing files are ignored by the flag sources.
func configPath() string {
	if path, ok := os.LookupEnv(configEnv); ok && path != "" {
		return path
	}
	return defaultConfig
}

// newApp constructs the root command. Flag values resolve from the
// command line, then the environment, then the YAML file at config.
func newApp(logger *zap.Logger, out io.Writer, config string) *cli.Command {
	return &cli.Command{
		Name:  "memobench",
		Usage: "measure the memo caches against their uncached workloads",
		Commands: []*cli.Command{
			rangeCommand(logger, out, config),
			fibCommand(logger, out, config),
		},
	}
}

func rangeCommand(logger *zap.Logger, out io.Writer, config string) *cli.Command {
	return &cli.Command{
		Name:  "range",
		Usage: "range-sum queries over a random array, with and without an LRU",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cells",
				Usage: "length of the array",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMOBENCH_CELLS"),
					yaml.YAML("range.cells", altsrc.StringSourcer(config)),
				),
				Value:     100_000,
				Validator: atLeast(2),
			},
			&cli.IntFlag{
				Name:  "queries",
				Usage: "number of operations to run",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMOBENCH_QUERIES"),
					yaml.YAML("range.queries", altsrc.StringSourcer(config)),
				),
				Value:     50_000,
				Validator: atLeast(1),
			},
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "maximum number of cached sums",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMOBENCH_CAPACITY"),
					yaml.YAML("range.capacity", altsrc.StringSourcer(config)),
				),
				Value:     1000,
				Validator: atLeast(1),
			},
			&cli.Float64Flag{
				Name:  "hot-ratio",
				Usage: "fraction of queries drawn from the popular ranges",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMOBENCH_HOT_RATIO"),
					yaml.YAML("range.hot_ratio", altsrc.StringSourcer(config)),
				),
				Value:     0.8,
				Validator: fraction,
			},
			&cli.Float64Flag{
				Name:  "update-ratio",
				Usage: "fraction of operations that update a cell",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMOBENCH_UPDATE_RATIO"),
					yaml.YAML("range.update_ratio", altsrc.StringSourcer(config)),
				),
				Value:     0,
				Validator: fraction,
			},
			seedFlag(config),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			params := rangeParams{
				cells:       cmd.Int("cells"),
				queries:     cmd.Int("queries"),
				capacity:    cmd.Int("capacity"),
				hotRatio:    cmd.Float64("hot-ratio"),
				updateRatio: cmd.Float64("update-ratio"),
				seed:        cmd.Int64("seed"),
			}
			report, err := runRange(params, logger)
			if err != nil {
				return err
			}
			return report.write(out)
		},
	}
}

func fibCommand(logger *zap.Logger, out io.Writer, config string) *cli.Command {
	return &cli.Command{
		Name:  "fib",
		Usage: "memoized Fibonacci with splay, LRU, and ARC caches",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max",
				Usage: "exclusive upper bound of n",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMOBENCH_FIB_MAX"),
					yaml.YAML("fib.max", altsrc.StringSourcer(config)),
				),
				Value:     1000,
				Validator: atLeast(1),
			},
			&cli.IntFlag{
				Name:  "step",
				Usage: "distance between measured values of n",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMOBENCH_FIB_STEP"),
					yaml.YAML("fib.step", altsrc.StringSourcer(config)),
				),
				Value:     50,
				Validator: atLeast(1),
			},
			&cli.IntFlag{
				Name:  "lru-size",
				Usage: "capacity of the bounded caches (0 holds every result)",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMOBENCH_LRU_SIZE"),
					yaml.YAML("fib.lru_size", altsrc.StringSourcer(config)),
				),
				Value:     0,
				Validator: atLeast(0),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			params := fibParams{
				max:     cmd.Int("max"),
				step:    cmd.Int("step"),
				lruSize: cmd.Int("lru-size"),
			}
			rows, err := runFib(params, logger)
			if err != nil {
				return err
			}
			return writeFib(out, rows)
		},
	}
}

func seedFlag(config string) cli.Flag {
	return &cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed for the generated array and workload",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MEMOBENCH_SEED"),
			yaml.YAML("seed", altsrc.StringSourcer(config)),
		),
		Value: 1,
	}
}

func atLeast(minimum int) func(int) error {
	return func(value int) error {
		if value < minimum {
			return fmt.Errorf("must be >=%d but got %d", minimum, value)
		}
		return nil
	}
}

func fraction(value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("must be within [0,1] but got %g", value)
	}
	return nil
}
