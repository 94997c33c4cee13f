// Package loop runs UI work on one goroutine with run-to-completion semantics.
//
// Documents, registries and reactive bindings are not goroutine-safe. A host
// that receives work from other goroutines (HTTP handlers, timers) posts it to
// a Loop; tasks execute one at a time, and after every task the loop runs its
// checkpoint, which is where pending mutation records are delivered.
//
//	l := loop.New(doc.Flush, loop.WithLogger(logger))
//	go l.Run(ctx)
//	err := l.Do(ctx, func() error {
//	    btn, _ := buttons.GetBySelector("#buy")
//	    btn.Loading()
//	    return nil
//	})
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// DefaultQueueSize is the number of tasks that can wait before Post blocks.
const DefaultQueueSize = 256

// ErrClosed is returned when posting to a loop that has been closed.
var ErrClosed = errors.New("loop: closed")

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for task panics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithQueueSize sets the task queue capacity.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		l.queueSize = n
	}
}

// job is a queued task. finished, if set, runs after the checkpoint.
type job struct {
	fn       func()
	finished func()
}

// Loop is a single-goroutine task queue.
type Loop struct {
	checkpoint func() int
	logger     *slog.Logger
	queueSize  int

	tasks     chan job
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	running   atomic.Bool
}

// New creates a loop that calls checkpoint after each task. checkpoint may be nil.
func New(checkpoint func() int, opts ...Option) *Loop {
	l := &Loop{
		checkpoint: checkpoint,
		logger:     slog.Default(),
		queueSize:  DefaultQueueSize,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.tasks = make(chan job, l.queueSize)
	return l
}

// Run executes tasks until ctx is cancelled or Close is called.
// Run must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("loop: already running")
	}
	for {
		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.done:
			return nil
		case j := <-l.tasks:
			l.execute(j)
		}
	}
}

// Post queues fn without waiting for it to run.
func (l *Loop) Post(fn func()) error {
	return l.enqueue(job{fn: fn})
}

func (l *Loop) enqueue(j job) error {
	if l.closed.Load() {
		return ErrClosed
	}
	select {
	case l.tasks <- j:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// Do queues fn and waits for it, and the checkpoint after it, to finish.
// A panic inside fn is returned as an error.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	var taskErr error
	j := job{
		fn: func() {
			defer func() {
				if r := recover(); r != nil {
					taskErr = fmt.Errorf("loop: task panic: %v", r)
					panic(r)
				}
			}()
			taskErr = fn()
		},
		finished: func() {
			result <- taskErr
		},
	}

	if err := l.enqueue(j); err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		select {
		case err := <-result:
			return err
		default:
			return ErrClosed
		}
	}
}

// Close stops the loop. Queued tasks that have not started are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}

func (l *Loop) execute(j job) {
	l.safeExecute(j.fn)
	if l.checkpoint != nil {
		l.safeExecute(func() { l.checkpoint() })
	}
	if j.finished != nil {
		j.finished()
	}
}

// safeExecute runs fn with panic recovery so one task cannot stop the loop.
func (l *Loop) safeExecute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("ui task panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}
