package notes

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

type command struct {
	fn   func(*Store)
	done chan error
}

// Loop serializes access to a Store. One goroutine runs Run and executes
// submitted commands in order; Do may be called from any goroutine.
type Loop struct {
	store    *Store
	cmds     chan command
	stopped  chan struct{}
	alive    atomic.Bool
	executed atomic.Uint64
	log      *slog.Logger
}

// NewLoop creates a loop with a command queue of queueSize.
func NewLoop(store *Store, queueSize int, log *slog.Logger) *Loop {
	if queueSize < 1 {
		queueSize = 1
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		store:   store,
		cmds:    make(chan command, queueSize),
		stopped: make(chan struct{}),
		log:     log,
	}
}

// Run executes commands until ctx is done. It returns nil on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	l.alive.Store(true)
	defer func() {
		l.alive.Store(false)
		close(l.stopped)
	}()

	l.log.Info("store loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Info("store loop stopped")
			return nil
		case cmd := <-l.cmds:
			err := l.exec(cmd.fn)
			l.executed.Add(1)
			cmd.done <- err
		}
	}
}

func (l *Loop) exec(fn func(*Store)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("store command panicked", "panic", r)
			err = fmt.Errorf("store command panicked: %v", r)
		}
	}()
	fn(l.store)
	return nil
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(*Store)) error {
	cmd := command{fn: fn, done: make(chan error, 1)}
	select {
	case l.cmds <- cmd:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.done:
		return err
	case <-l.stopped:
		// The command may have been picked up just before shutdown.
		select {
		case err := <-cmd.done:
			return err
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Alive reports whether Run is executing.
func (l *Loop) Alive() bool {
	return l.alive.Load()
}

// Executed returns the number of commands run so far.
func (l *Loop) Executed() uint64 {
	return l.executed.Load()
}
