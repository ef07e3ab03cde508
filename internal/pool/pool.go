// Package pool fans sandbox builds out across a bounded worker pool.
//
// The concurrency ceiling exists for shared-state safety, not throughput:
// builders temporarily mutate process-wide package manager configuration
// (registry URL, peer-dependency strictness), which must never be held in
// two different temporary states at once. The default ceiling is therefore
// one; raising it is only safe once those settings are scoped per child
// process instead of mutated globally.
package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/logging"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/sandbox"
)

// ErrSkipped marks a task that never started because an earlier task
// failed while fail-fast mode was active.
var ErrSkipped = errors.New("skipped after earlier failure")

// BuildFunc runs one task to completion.
type BuildFunc func(ctx context.Context, task sandbox.Task) error

// Options configures a run.
type Options struct {
	// Concurrency is the ceiling on simultaneously in-flight tasks.
	// Values below 1 are treated as 1.
	Concurrency int

	// FailFast stops dispatching new tasks after the first failure.
	// Tasks already in flight still run to completion.
	FailFast bool
}

// Result records the settled outcome of one task.
type Result struct {
	Key     string
	Err     error
	Elapsed time.Duration
}

// RunAll runs every task to settlement and returns one Result per task, in
// input order. A task's failure never cancels its siblings; callers inspect
// the results for per-task outcomes.
func RunAll(ctx context.Context, tasks []sandbox.Task, build BuildFunc, opts Options) []Result {
	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	logging.Info("starting generation run", "tasks", len(tasks), "concurrency", workers)

	type job struct {
		index int
		task  sandbox.Task
	}

	results := make([]Result, len(tasks))
	jobs := make(chan job, len(tasks))
	for i, task := range tasks {
		jobs <- job{index: i, task: task}
	}
	close(jobs)

	var failed atomic.Bool
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				key := j.task.Template.Key

				if opts.FailFast && failed.Load() {
					logging.Warn("task skipped", "template", key)
					results[j.index] = Result{Key: key, Err: ErrSkipped}
					continue
				}

				logging.Info("task started", "template", key)
				start := time.Now()
				err := build(ctx, j.task)
				elapsed := time.Since(start)

				if err != nil {
					failed.Store(true)
					logging.Error("task failed", "template", key, "elapsed", elapsed.Round(time.Millisecond).String(), "error", err)
				} else {
					logging.Info("task succeeded", "template", key, "elapsed", elapsed.Round(time.Millisecond).String())
				}

				results[j.index] = Result{Key: key, Err: err, Elapsed: elapsed}
			}
		}()
	}

	wg.Wait()
	return results
}

// Summary aggregates the settled results of a run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

// Summarize counts outcomes across results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Err == nil:
			s.Succeeded++
		case errors.Is(r.Err, ErrSkipped):
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}
