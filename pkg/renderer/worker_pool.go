package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // Index into the result slice
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// TileFunc renders one tile. Tiles never overlap, so implementations may
// write to shared pixel storage without locking.
type TileFunc func(ctx context.Context, task TileTask) (RenderStats, error)

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses the CPU count
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

// Run renders every task and returns results ordered by TaskID.
// The first tile error, or cancellation of ctx, stops the remaining workers.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask, render TileFunc) ([]TileResult, error) {
	taskQueue := make(chan TileTask, len(tasks))
	for _, task := range tasks {
		taskQueue <- task
	}
	close(taskQueue)

	results := make([]TileResult, len(tasks))
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < min(wp.numWorkers, len(tasks)); i++ {
		g.Go(func() error {
			// Each worker claims the next unclaimed tile
			for task := range taskQueue {
				if err := ctx.Err(); err != nil {
					return err
				}
				stats, err := render(ctx, task)
				results[task.TaskID] = TileResult{TaskID: task.TaskID, Stats: stats, Error: err}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
