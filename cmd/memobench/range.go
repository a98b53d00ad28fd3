package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/djdv/go-memo/rangesum"
)

type (
	rangeParams struct {
		cells, queries, capacity int
		hotRatio, updateRatio    float64
		seed                     int64
	}
	// operation is a range query, or an update
	// when isUpdate is set (low is the index).
	operation struct {
		low, high int
		value     int
		isUpdate  bool
	}
	rangeRun struct {
		elapsed  time.Duration
		checksum int
	}
	rangeReport struct {
		params           rangeParams
		uncached, cached rangeRun
		stats            rangesum.Stats
		hotRanges        [][2]int
		generatedQueries int
		generatedUpdates int
	}
)

// maxRandomWidth bounds the span of queries outside the popular set.
const maxRandomWidth = 1000

// popularRanges scales the popular ranges of the default
// workload (10-500, 1000-2000, 50000-70000 over 100,000 cells)
// to the array length.
func popularRanges(cells int) [][2]int {
	scale := func(at int) int {
		return min(at*cells/100_000, cells-1)
	}
	return [][2]int{
		{scale(10), scale(500)},
		{scale(1000), scale(2000)},
		{scale(50_000), scale(70_000)},
	}
}

func generateCells(rng *rand.Rand, count int) []int {
	cells := make([]int, count)
	for i := range cells {
		cells[i] = 1 + rng.Intn(1000)
	}
	return cells
}

func generateOperations(rng *rand.Rand, params rangeParams) []operation {
	var (
		hot   = popularRanges(params.cells)
		width = min(maxRandomWidth, params.cells-1)
		ops   = make([]operation, params.queries)
	)
	for i := range ops {
		switch {
		case rng.Float64() < params.updateRatio:
			ops[i] = operation{
				low:      rng.Intn(params.cells),
				value:    1 + rng.Intn(1000),
				isUpdate: true,
			}
		case rng.Float64() < params.hotRatio:
			span := hot[rng.Intn(len(hot))]
			ops[i] = operation{low: span[0], high: span[1]}
		default:
			low := rng.Intn(params.cells - width)
			ops[i] = operation{low: low, high: low + rng.Intn(width+1)}
		}
	}
	return ops
}

func runUncached(cells []int, ops []operation) rangeRun {
	var (
		checksum int
		start    = time.Now()
	)
	for _, op := range ops {
		if op.isUpdate {
			cells[op.low] = op.value
			continue
		}
		for _, cell := range cells[op.low : op.high+1] {
			checksum += cell
		}
	}
	return rangeRun{elapsed: time.Since(start), checksum: checksum}
}

func runCached(processor *rangesum.Processor[int], ops []operation) (rangeRun, error) {
	var (
		checksum int
		start    = time.Now()
	)
	for _, op := range ops {
		if op.isUpdate {
			if err := processor.Update(op.low, op.value); err != nil {
				return rangeRun{}, err
			}
			continue
		}
		sum, err := processor.Sum(op.low, op.high)
		if err != nil {
			return rangeRun{}, err
		}
		checksum += sum
	}
	return rangeRun{elapsed: time.Since(start), checksum: checksum}, nil
}

func runRange(params rangeParams, logger *zap.Logger) (*rangeReport, error) {
	var (
		rng   = rand.New(rand.NewSource(params.seed))
		cells = generateCells(rng, params.cells)
		ops   = generateOperations(rng, params)
	)
	logger.Info("generated range workload",
		zap.Int("cells", params.cells),
		zap.Int("operations", len(ops)),
		zap.Int64("seed", params.seed),
	)
	uncached := runUncached(append([]int(nil), cells...), ops)
	processor, err := rangesum.New(cells, params.capacity,
		rangesum.WithLogger(logger.Named("rangesum")))
	if err != nil {
		return nil, err
	}
	cached, err := runCached(processor, ops)
	if err != nil {
		return nil, err
	}
	if uncached.checksum != cached.checksum {
		return nil, fmt.Errorf("cached sums diverged: %d != %d",
			cached.checksum, uncached.checksum)
	}
	report := &rangeReport{
		params:    params,
		uncached:  uncached,
		cached:    cached,
		stats:     processor.Stats(),
		hotRanges: popularRanges(params.cells),
	}
	for _, op := range ops {
		if op.isUpdate {
			report.generatedUpdates++
		} else {
			report.generatedQueries++
		}
	}
	return report, nil
}

func (r *rangeReport) write(out io.Writer) error {
	var (
		lookups = r.stats.Hits + r.stats.Misses
		hitRate float64
	)
	if lookups != 0 {
		hitRate = float64(r.stats.Hits) / float64(lookups) * 100
	}
	_, err := fmt.Fprintf(out,
		"cells: %s, queries: %s, updates: %s, capacity: %s\n"+
			"popular ranges: %v\n"+
			"time without cache: %s\n"+
			"time with LRU cache: %s\n"+
			"hits: %s, misses: %s (%s%% hit rate)\n"+
			"evictions: %s, invalidated: %s\n",
		humanize.Comma(int64(r.params.cells)),
		humanize.Comma(int64(r.generatedQueries)),
		humanize.Comma(int64(r.generatedUpdates)),
		humanize.Comma(int64(r.params.capacity)),
		r.hotRanges,
		r.uncached.elapsed,
		r.cached.elapsed,
		humanize.Comma(int64(r.stats.Hits)),
		humanize.Comma(int64(r.stats.Misses)),
		humanize.FtoaWithDigits(hitRate, 2),
		humanize.Comma(int64(r.stats.Evictions)),
		humanize.Comma(int64(r.stats.Invalidated)),
	)
	return err
}
