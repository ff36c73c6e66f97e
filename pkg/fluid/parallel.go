package fluid

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minBandRows keeps small grids on the calling goroutine.
const minBandRows = 16

// parallelRows calls fn for every row in [lo, hi), splitting the rows into
// bands that run concurrently. It returns once every band has finished, so a
// call acts as the barrier between two passes.
func parallelRows(lo, hi int, fn func(y int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers <= 1 || n < 2*minBandRows {
		for y := lo; y < hi; y++ {
			fn(y)
		}
		return
	}
	band := (n + workers - 1) / workers
	if band < minBandRows {
		band = minBandRows
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for start := lo; start < hi; start += band {
		end := start + band
		if end > hi {
			end = hi
		}
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}
