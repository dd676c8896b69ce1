// Package executor runs one unit of work per segment, either inline on the
// calling goroutine or fanned out under a fixed pool of worker permits.
//
// An Executor is constructed once (typically at engine startup) and reused
// across queries; it holds no per-query state. There is no global executor:
// whoever needs one constructs and owns it.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"

	"golang.org/x/sync/semaphore"
)

// TaskPanicError carries a panic recovered from a dispatched task. The
// whole Map call fails with it; sibling results are discarded.
type TaskPanicError struct {
	// Value is the value the task panicked with.
	Value any
	// Stack is the panicking goroutine's stack trace.
	Stack []byte
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("executor: task panicked: %v", e.Value)
}

// Executor dispatches independent tasks. The zero value is not usable;
// construct via SingleThread or MultiThread.
type Executor struct {
	// permits bounds concurrent task execution; nil means inline mode.
	permits *semaphore.Weighted
	logger  *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used to report recovered task panics. Without
// it the executor is silent.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// SingleThread creates an executor that runs every task sequentially on
// the calling goroutine.
func SingleThread(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MultiThread creates an executor that runs at most workers tasks
// concurrently. workers <= 0 defaults to GOMAXPROCS. The permit pool is
// created once here and reused by every Map call.
func MultiThread(workers int, opts ...Option) *Executor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	e := &Executor{permits: semaphore.NewWeighted(int64(workers))}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Map applies f to every item and returns the collected results.
//
// On a single-thread executor, items run sequentially and results preserve
// input order exactly. On a multi-thread executor, Map blocks until every
// task has finished (fork-join) and results arrive in completion order:
// callers must treat them as an unordered multiset unless the results
// themselves carry ordering information.
//
// If any task returns an error or panics, Map fails as a whole: it never
// returns a partially successful result set. In the pooled mode every
// dispatched task still runs to completion (or fault) before Map returns
// the first observed failure. Panics are surfaced as *TaskPanicError.
func Map[A, R any](e *Executor, f func(A) (R, error), items []A) ([]R, error) {
	if e.permits == nil {
		return mapInline(e, f, items)
	}
	return mapPooled(e, f, items)
}

func mapInline[A, R any](e *Executor, f func(A) (R, error), items []A) ([]R, error) {
	results := make([]R, 0, len(items))
	for _, item := range items {
		r, err := runTask(e, f, item)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func mapPooled[A, R any](e *Executor, f func(A) (R, error), items []A) ([]R, error) {
	type outcome struct {
		value R
		err   error
	}

	// Buffered so workers never block on delivery and the pool drains
	// even if the batch fails.
	out := make(chan outcome, len(items))

	for _, item := range items {
		item := item
		go func() {
			// Background context: a dispatched batch always runs to
			// completion or fault, there is no cancellation.
			if err := e.permits.Acquire(context.Background(), 1); err != nil {
				out <- outcome{err: err}
				return
			}
			defer e.permits.Release(1)

			v, err := runTask(e, f, item)
			out <- outcome{value: v, err: err}
		}()
	}

	results := make([]R, 0, len(items))
	var firstErr error
	for range items {
		o := <-out
		switch {
		case o.err != nil && firstErr == nil:
			firstErr = o.err
		case o.err == nil:
			results = append(results, o.value)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// runTask invokes f, converting a panic into a *TaskPanicError so the
// fault reaches the caller of Map instead of tearing down the process.
func runTask[A, R any](e *Executor, f func(A) (R, error), item A) (result R, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			perr := &TaskPanicError{Value: rec, Stack: debug.Stack()}
			if e.logger != nil {
				e.logger.Error("task panicked",
					"panic", rec,
					"stack", string(perr.Stack),
				)
			}
			err = perr
		}
	}()
	return f(item)
}
