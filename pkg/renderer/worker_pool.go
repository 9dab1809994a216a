package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RowBand is a half-open range of image rows [Start, End) owned by one task
type RowBand struct {
	Start int
	End   int
}

// Rows returns the number of rows in the band
func (b RowBand) Rows() int {
	return b.End - b.Start
}

// SplitRows divides height rows into at most count contiguous bands whose
// sizes differ by at most one. Every row belongs to exactly one band.
func SplitRows(height, count int) []RowBand {
	if height <= 0 {
		return nil
	}
	count = max(1, min(count, height))

	bands := make([]RowBand, 0, count)
	base, extra := height/count, height%count
	start := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		bands = append(bands, RowBand{Start: start, End: start + size})
		start += size
	}
	return bands
}

// WorkerPool runs band tasks with a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a pool; numWorkers <= 0 means one worker per CPU
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls task once per band and waits for all of them. Tasks that have
// not started when ctx is done are skipped and the context error is returned.
func (wp *WorkerPool) Run(ctx context.Context, bands []RowBand, task func(index int, band RowBand) error) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, band := range bands {
		if groupCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return task(i, band)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
