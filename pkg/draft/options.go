package draft

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/eventloop"
)

// StatusSink receives the status line text.
type StatusSink interface {
	SetStatus(text string)
}

// StatusFunc adapts a function into a StatusSink.
type StatusFunc func(text string)

// SetStatus calls f(text).
func (f StatusFunc) SetStatus(text string) {
	f(text)
}

type discardStatus struct{}

func (discardStatus) SetStatus(string) {}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock supplies the time source and timer scheduler.
func WithClock(clock eventloop.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRetention overrides the maximum draft age.
func WithRetention(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithSavedDelay overrides the delay between the "saving" and "saved" status
// messages.
func WithSavedDelay(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.savedDelay = d
		}
	}
}

// WithStatusSink routes status messages to sink.
func WithStatusSink(sink StatusSink) Option {
	return func(s *Store) {
		if sink != nil {
			s.status = sink
		}
	}
}

// WithLogger attaches a logger for discarded drafts and storage failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
