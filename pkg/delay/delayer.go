// Package delay implements a process-wide, fire-once task scheduler with
// cooperative cancellation and bounded shutdown. It generalizes the
// goroutine/WaitGroup/stopper-channel pattern pod-graceful-drain's deleter
// uses into a reusable, independently testable type.
package delay

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
)

// Delayer schedules DelayedTasks and coordinates their shutdown.
type Delayer struct {
	logger logr.Logger

	wg sync.WaitGroup

	interrupt     chan struct{}
	interruptOnce sync.Once

	cleanup     chan struct{}
	cleanupOnce sync.Once

	root   context.Context
	cancel context.CancelFunc

	counter atomic.Uint64

	stopOnce sync.Once
}

// New constructs a Delayer ready to accept tasks.
func New(logger logr.Logger) *Delayer {
	root, cancel := context.WithCancel(context.Background())
	return &Delayer{
		logger:    logger,
		interrupt: make(chan struct{}),
		cleanup:   make(chan struct{}),
		root:      root,
		cancel:    cancel,
	}
}

// DelayedTask is a fire-once deferred action. It transitions from Waiting to
// Firing when its duration elapses, its own context is cancelled, or its
// owning Delayer is interrupted -- whichever happens first.
type DelayedTask struct {
	id       uint64
	delayer  *Delayer
	duration time.Duration
	action   func(ctx context.Context, interrupted bool) error
}

// NewTask constructs a new DelayedTask with a unique id. action may be nil,
// in which case the task is a pure sleep.
func (d *Delayer) NewTask(duration time.Duration, action func(ctx context.Context, interrupted bool) error) *DelayedTask {
	return &DelayedTask{
		id:       d.counter.Add(1),
		delayer:  d,
		duration: duration,
		action:   action,
	}
}

// RunWait blocks until the task fires and its action (if any) completes. It
// derives its cancellation scope from ctx: if ctx is cancelled before the
// duration elapses, the task fires early with interrupted=true.
func (t *DelayedTask) RunWait(ctx context.Context) error {
	t.delayer.wg.Add(1)
	defer t.delayer.wg.Done()

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go t.delayer.cancelOnCleanup(cancel)

	interrupted := t.wait(taskCtx)
	return t.fire(taskCtx, interrupted)
}

// RunAsync detaches the task: it returns immediately and the action runs on
// a background goroutine tied to the Delayer's own root context, not the
// caller's.
func (t *DelayedTask) RunAsync() {
	t.delayer.wg.Add(1)
	taskCtx, cancel := context.WithCancel(t.delayer.root)

	go func() {
		defer t.delayer.wg.Done()
		defer cancel()

		interrupted := t.wait(taskCtx)
		if err := t.fire(taskCtx, interrupted); err != nil {
			t.delayer.logger.Error(err, "delayed task action failed", "taskID", t.id)
		}
	}()
}

func (t *DelayedTask) wait(ctx context.Context) bool {
	select {
	case <-time.After(t.duration):
		return false
	case <-ctx.Done():
		return true
	case <-t.delayer.interrupt:
		return true
	}
}

func (t *DelayedTask) fire(ctx context.Context, interrupted bool) error {
	t.delayer.logger.V(1).Info("task firing", "taskID", t.id, "interrupted", interrupted)
	if t.action == nil {
		return nil
	}
	if err := t.action(ctx, interrupted); err != nil {
		t.delayer.logger.V(1).Info("task action returned error", "taskID", t.id, "error", err.Error())
		return err
	}
	return nil
}

func (d *Delayer) cancelOnCleanup(cancel context.CancelFunc) {
	select {
	case <-d.cleanup:
		cancel()
	case <-d.root.Done():
	}
}

// Stop initiates orderly shutdown: it waits up to drain for in-flight tasks
// to terminate naturally, then interrupts them and waits up to cleanup, then
// cancels every context derived from the Delayer's root. Idempotent.
func (d *Delayer) Stop(drain, cleanup time.Duration) {
	d.stopOnce.Do(func() {
		d.doStop(drain, cleanup)
	})
}

func (d *Delayer) doStop(drain, cleanup time.Duration) {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.finish()
		return
	case <-time.After(drain):
	}

	d.interruptOnce.Do(func() { close(d.interrupt) })

	select {
	case <-done:
	case <-time.After(cleanup):
	}
	d.finish()
}

func (d *Delayer) finish() {
	d.cleanupOnce.Do(func() { close(d.cleanup) })
	d.cancel()
}
