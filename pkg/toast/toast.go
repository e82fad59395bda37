package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/eventloop"
	"github.com/goliatone/go-contactform/pkg/model"
)

const (
	// DefaultDisplay is how long a toast stays before it starts leaving.
	DefaultDisplay = 4000 * time.Millisecond
	// DefaultExit is the exit animation length.
	DefaultExit = 300 * time.Millisecond
)

// Toast is one notification in the container.
type Toast struct {
	ID        string
	Message   string
	Severity  model.Severity
	CreatedAt time.Time
	Leaving   bool
}

// EventKind identifies a lifecycle transition.
type EventKind string

const (
	EventShown   EventKind = "shown"
	EventLeaving EventKind = "leaving"
	EventRemoved EventKind = "removed"
)

// Event is delivered to subscribers on every transition.
type Event struct {
	Kind  EventKind
	Toast Toast
}

// Container holds the visible toasts in creation order.
type Container struct {
	mu     sync.RWMutex
	toasts []Toast
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Toasts returns a snapshot of the visible toasts.
func (c *Container) Toasts() []Toast {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Len reports the number of toasts still attached.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.toasts)
}

func (c *Container) add(t Toast) {
	c.mu.Lock()
	c.toasts = append(c.toasts, t)
	c.mu.Unlock()
}

func (c *Container) markLeaving(id string) (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts[i].Leaving = true
			return c.toasts[i], true
		}
	}
	return Toast{}, false
}

func (c *Container) remove(id string) (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			t := c.toasts[i]
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return t, true
		}
	}
	return Toast{}, false
}

// Notifier creates toasts and drives their timers.
type Notifier struct {
	container   *Container
	clock       eventloop.Clock
	display     time.Duration
	exit        time.Duration
	newID       func() string
	logger      *zap.Logger
	subscribers []func(Event)
}

// New constructs a Notifier. Without options it uses a fresh container and
// the wall clock.
func New(options ...Option) *Notifier {
	n := &Notifier{
		container: NewContainer(),
		clock:     eventloop.Wall,
		display:   DefaultDisplay,
		exit:      DefaultExit,
		newID:     uuid.NewString,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	return n
}

// Container exposes the toast container.
func (n *Notifier) Container() *Container {
	return n.container
}

// Subscribe registers fn for lifecycle events. Subscribers run on the
// goroutine that fires the transition.
func (n *Notifier) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	n.subscribers = append(n.subscribers, fn)
}

// Show appends a toast and schedules its exit and removal.
func (n *Notifier) Show(message string, severity model.Severity) Toast {
	t := Toast{
		ID:        n.newID(),
		Message:   message,
		Severity:  severity,
		CreatedAt: n.clock.Now(),
	}
	n.container.add(t)
	n.logger.Debug("toast shown",
		zap.String("id", t.ID),
		zap.String("severity", string(severity)),
	)
	n.emit(Event{Kind: EventShown, Toast: t})

	n.clock.AfterFunc(n.display, func() {
		leaving, ok := n.container.markLeaving(t.ID)
		if !ok {
			return
		}
		n.emit(Event{Kind: EventLeaving, Toast: leaving})

		n.clock.AfterFunc(n.exit, func() {
			removed, ok := n.container.remove(t.ID)
			if !ok {
				return
			}
			n.logger.Debug("toast removed", zap.String("id", t.ID))
			n.emit(Event{Kind: EventRemoved, Toast: removed})
		})
	})
	return t
}

// Success shows a success toast.
func (n *Notifier) Success(message string) Toast {
	return n.Show(message, model.SeveritySuccess)
}

// Error shows an error toast.
func (n *Notifier) Error(message string) Toast {
	return n.Show(message, model.SeverityError)
}

func (n *Notifier) emit(evt Event) {
	for _, fn := range n.subscribers {
		fn(evt)
	}
}
