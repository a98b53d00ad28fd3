package main

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"go.uber.org/zap"

	"github.com/djdv/go-memo"
	"github.com/djdv/go-memo/fib"
)

type (
	fibParams struct {
		max, step, lruSize int
	}
	fibBackend struct {
		name string
		new  func(n int) (fib.Cache, error)
	}
	fibRow struct {
		n        int
		elapsed  []time.Duration
		digits   int
		backends []string
	}
)

func fibBackends(lruSize int) []fibBackend {
	// Zero sizes the bounded caches to hold every result,
	// matching the unbounded splay tree.
	size := func(n int) int {
		if lruSize > 0 {
			return lruSize
		}
		return n + 1
	}
	return []fibBackend{
		{"Splay Tree", func(int) (fib.Cache, error) {
			return memo.NewSplay[int, *big.Int](), nil
		}},
		{"LRU Cache", func(n int) (fib.Cache, error) {
			return fib.NewLRUCache(size(n))
		}},
		{"ARC Cache", func(n int) (fib.Cache, error) {
			return fib.NewARCCache(size(n))
		}},
	}
}

func runFib(params fibParams, logger *zap.Logger) ([]fibRow, error) {
	var (
		backends = fibBackends(params.lruSize)
		names    = make([]string, len(backends))
		rows     []fibRow
	)
	for i, backend := range backends {
		names[i] = backend.name
	}
	for n := 0; n < params.max; n += params.step {
		row := fibRow{
			n:        n,
			elapsed:  make([]time.Duration, len(backends)),
			backends: names,
		}
		var first *big.Int
		for i, backend := range backends {
			cache, err := backend.new(n)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", backend.name, err)
			}
			recursion := fib.New(
				fib.WithCache(cache),
				fib.WithLogger(logger.Named("fib")),
			)
			start := time.Now()
			value, err := recursion.Compute(n)
			row.elapsed[i] = time.Since(start)
			if err != nil {
				return nil, err
			}
			if first == nil {
				first = value
				row.digits = len(value.String())
			} else if first.Cmp(value) != 0 {
				return nil, fmt.Errorf("%s disagrees at n=%d", backend.name, n)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeFib(out io.Writer, rows []fibRow) error {
	if len(rows) == 0 {
		return nil
	}
	headers := []string{"n", "digits"}
	for _, name := range rows[0].backends {
		headers = append(headers, name+" Time (s)")
	}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := []string{strconv.Itoa(row.n), strconv.Itoa(row.digits)}
		for _, elapsed := range row.elapsed {
			cell = append(cell, strconv.FormatFloat(elapsed.Seconds(), 'f', 8, 64))
		}
		cells = append(cells, cell)
	}
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		BorderHeader(false).
		Rows(cells...)
	_, err := fmt.Fprintln(out, t.Render())
	return err
}
