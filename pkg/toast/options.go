package toast

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/eventloop"
)

// Option configures a Notifier.
type Option func(*Notifier)

// WithContainer attaches the notifier to an existing container.
func WithContainer(container *Container) Option {
	return func(n *Notifier) {
		if container != nil {
			n.container = container
		}
	}
}

// WithClock supplies the time source and timer scheduler.
func WithClock(clock eventloop.Clock) Option {
	return func(n *Notifier) {
		if clock != nil {
			n.clock = clock
		}
	}
}

// WithDisplay overrides how long a toast stays before leaving.
func WithDisplay(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.display = d
		}
	}
}

// WithExit overrides the exit animation length.
func WithExit(d time.Duration) Option {
	return func(n *Notifier) {
		if d >= 0 {
			n.exit = d
		}
	}
}

// WithIDGenerator replaces the uuid-based toast identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(n *Notifier) {
		if fn != nil {
			n.newID = fn
		}
	}
}

// WithLogger attaches a logger for toast lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}
