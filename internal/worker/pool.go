// Package worker runs independent jobs on a bounded number of goroutines.
package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// JobFunc adapts a function to the Job interface.
type JobFunc func(ctx context.Context) Result

// Execute calls f(ctx).
func (f JobFunc) Execute(ctx context.Context) Result {
	return f(ctx)
}

// Pool manages a fixed number of workers that execute jobs concurrently
type Pool struct {
	workers int
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the number of concurrent workers.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes every job and returns the results in job order. Jobs not yet
// started when ctx is cancelled still run, with the cancelled context, so
// each can report the cancellation in its own result.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	queue := make(chan int)
	var wg sync.WaitGroup

	workers := min(p.workers, len(jobs))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				results[idx] = jobs[idx].Execute(ctx)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()

	return results
}
