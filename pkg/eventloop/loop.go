package eventloop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrStopped is returned when work is handed to a loop that has stopped.
var ErrStopped = errors.New("eventloop: loop stopped")

// Option configures a Loop.
type Option func(*Loop)

// WithLogger attaches a logger used to report callback panics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithNow overrides the wall clock reported by Now.
func WithNow(now func() time.Time) Option {
	return func(l *Loop) {
		if now != nil {
			l.now = now
		}
	}
}

// Loop runs posted callbacks one at a time on the goroutine that calls Run.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	stopped bool

	wake   chan struct{}
	now    func() time.Time
	logger *zap.Logger
}

var _ Clock = (*Loop)(nil)
var _ Poster = (*Loop)(nil)

// New constructs an idle loop. Callbacks posted before Run are kept and
// executed once Run starts.
func New(options ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Now reports the current wall clock time.
func (l *Loop) Now() time.Time {
	return l.now()
}

// AfterFunc schedules fn to run on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		l.Post(fn)
	})
}

// Post enqueues fn. It reports false when the loop has already stopped and fn
// was dropped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Do posts fn and blocks until it has executed on the loop or ctx is done.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes callbacks until ctx is cancelled. Pending callbacks are dropped
// when the loop stops.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.mu.Lock()
			l.stopped = true
			l.pending = nil
			l.mu.Unlock()
			return ctx.Err()
		case <-l.wake:
			l.drain()
		}
	}
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		batch := l.pending
		l.pending = nil
		l.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			l.invoke(fn)
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("eventloop: callback panicked", zap.String("panic", fmt.Sprint(r)))
		}
	}()
	fn()
}
