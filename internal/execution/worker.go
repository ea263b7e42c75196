package execution

import (
	"context"
	"sort"
	"sync"
	"time"

	"classenum/internal/domain"
	"classenum/internal/logging"
)

// WorkerPool manages a pool of workers for parallel package enumeration
type WorkerPool struct {
	workers  int
	runner   *Runner
	progress Progress
}

// NewWorkerPool creates a new WorkerPool with the given number of workers
func NewWorkerPool(workers int, runner *Runner) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		workers: workers,
		runner:  runner,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute enumerates packages in parallel using worker pool (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, packages []string) ([]domain.PackageResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, packages, false)
}

// ExecuteWithOptions enumerates packages with optional fail-fast (stop on first failure).
// Results are sorted by package name. With fail-fast, packages not yet started
// when the first failure is seen are left out of the results.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, packages []string, failFast bool) ([]domain.PackageResult, time.Duration, error) {
	if len(packages) == 0 {
		return []domain.PackageResult{}, 0, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan string)
	results := make(chan domain.PackageResult, len(packages))

	go func() {
		defer close(queue)
		for _, pkg := range packages {
			select {
			case <-runCtx.Done():
				return
			case queue <- pkg:
			}
		}
	}()

	var mu sync.Mutex
	var successCount, failCount int
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for pkg := range queue {
				// Drain without running once cancelled
				if runCtx.Err() != nil {
					continue
				}
				result := wp.runner.Run(pkg)
				results <- result

				mu.Lock()
				if result.Success() {
					successCount++
				} else {
					failCount++
					logging.Debug("package failed", "worker", workerID, "package", pkg, "err", result.Err)
					if failFast {
						cancel()
					}
				}
				if wp.progress != nil {
					wp.progress.Update(successCount, failCount)
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	allResults := make([]domain.PackageResult, 0, len(packages))
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}

	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Package < allResults[j].Package
	})

	if err := ctx.Err(); err != nil {
		return allResults, time.Since(startTime), err
	}
	return allResults, time.Since(startTime), nil
}

var _ Executor = (*WorkerPool)(nil)
