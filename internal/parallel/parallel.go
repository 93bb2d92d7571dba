// Package parallel runs independent jobs on a bounded set of workers.
//
// The CLI uses it to replay many schedule files at once. Every job owns its
// own fusion, so jobs never share mutable state.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
}

// DefaultConfig returns one worker per CPU.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// WithWorkers returns cfg with n workers. Values below 1 keep the default.
func (cfg Config) WithWorkers(n int) Config {
	if n < 1 {
		return cfg
	}
	cfg.NumWorkers = n
	cfg.Enabled = n > 1
	return cfg
}

// For executes f(i) for i in [0, n).
// Falls back to sequential execution if parallelism is disabled or there
// is at most one job.
func For(n int, f func(i int), cfg Config) {
	workers := min(cfg.NumWorkers, n)
	if !cfg.Enabled || workers <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// Result is the outcome of one Map job.
type Result[T any] struct {
	Value T
	Err   error
}

// Map runs f for every index and returns the results in index order,
// whatever order the jobs finished in. A failing job does not stop the
// others.
func Map[T any](n int, f func(i int) (T, error), cfg Config) []Result[T] {
	out := make([]Result[T], n)
	For(n, func(i int) {
		v, err := f(i)
		out[i] = Result[T]{Value: v, Err: err}
	}, cfg)
	return out
}
