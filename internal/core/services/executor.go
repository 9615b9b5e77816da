package services

import (
	"context"
	"runtime"
	"sync"

	"github.com/forcearc/forcearc/internal/core/domain"
)

// runTasks drives fn over tasks on a bounded pool of workers goroutines.
// Every dispatched task runs to completion before runTasks returns, so
// callers get accurate statistics and a safe ledger flush point. fn is
// responsible for recording its own outcome; it must not panic.
//
// Cancelling ctx stops dispatching new tasks; in-flight tasks finish.
// workers <= 0 selects the runtime's own sizing.
func runTasks(ctx context.Context, workers int, tasks []domain.DownloadTask, fn func(domain.DownloadTask)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}
	if workers == 0 {
		return
	}

	ch := make(chan domain.DownloadTask)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range ch {
				fn(task)
			}
		}()
	}

	for _, task := range tasks {
		select {
		case <-ctx.Done():
			close(ch)
			wg.Wait()
			return
		case ch <- task:
		}
	}
	close(ch)
	wg.Wait()
}
