package canny

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerBand keeps small images on a single goroutine.
const minRowsPerBand = 32

// bandCount picks how many horizontal bands a stage over `rows` rows is split
// into. workers == 0 means GOMAXPROCS.
func bandCount(rows, workers int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bands := rows / minRowsPerBand
	if bands > workers {
		bands = workers
	}
	if bands < 1 {
		bands = 1
	}
	return bands
}

// forEachBand splits [0, rows) into `bands` contiguous ranges and runs fn on
// each, concurrently when there is more than one. fn must only write to
// cells owned by its own band.
func forEachBand(rows, bands int, fn func(band, y0, y1 int)) {
	if bands <= 1 {
		fn(0, 0, rows)
		return
	}
	chunk := (rows + bands - 1) / bands
	var g errgroup.Group
	for b := 0; b < bands; b++ {
		y0 := b * chunk
		y1 := min(y0+chunk, rows)
		if y0 >= rows {
			break
		}
		g.Go(func() error {
			fn(b, y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}
