package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/eventloop"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/storage"
)

const (
	// DefaultKey names the slot the draft lives in.
	DefaultKey = "portfolio_contact_draft"
	// DefaultRetention is the age past which a draft is discarded.
	DefaultRetention = 7 * 24 * time.Hour
	// DefaultSavedDelay separates the "saving" and "saved" status messages.
	DefaultSavedDelay = 800 * time.Millisecond
)

// Status line messages.
const (
	StatusSaving    = "Salvando rascunho..."
	StatusSaved     = "Rascunho salvo automaticamente"
	StatusRecovered = "Rascunho anterior recuperado"
)

var (
	// ErrMalformedDraft marks a slot whose value is not a Draft.
	ErrMalformedDraft = errors.New("draft: malformed")
	// ErrExpiredDraft marks a slot older than the retention window.
	ErrExpiredDraft = errors.New("draft: expired")
)

// Store reads and writes the single draft slot.
type Store struct {
	slots      storage.Store
	key        string
	clock      eventloop.Clock
	retention  time.Duration
	savedDelay time.Duration
	status     StatusSink
	logger     *zap.Logger
}

// New constructs a Store over slots. Without WithClock the store schedules
// its status timers on a wall clock outside any loop, which is only suitable
// for tools that never read the status line.
func New(slots storage.Store, options ...Option) (*Store, error) {
	if slots == nil {
		return nil, errors.New("draft: storage is required")
	}
	s := &Store{
		slots:      slots,
		key:        DefaultKey,
		clock:      eventloop.Wall,
		retention:  DefaultRetention,
		savedDelay: DefaultSavedDelay,
		status:     discardStatus{},
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Key reports the slot key.
func (s *Store) Key() string {
	return s.key
}

// Save overwrites the slot with fields stamped with the current time and
// starts the status sequence. The status sequence runs even when the write
// fails.
func (s *Store) Save(fields model.Fields) error {
	draft := model.NewDraft(fields, s.clock.Now())
	payload, err := json.Marshal(draft)
	if err == nil {
		err = s.slots.Set(s.key, payload)
	}

	s.status.SetStatus(StatusSaving)
	s.clock.AfterFunc(s.savedDelay, func() {
		s.status.SetStatus(StatusSaved)
	})

	if err != nil {
		return fmt.Errorf("draft: save: %w", err)
	}
	return nil
}

// Load restores the draft when one exists, parses and is within the retention
// window. Otherwise it reports false, clearing the slot when a value was
// present but unusable.
func (s *Store) Load() (model.Draft, bool) {
	draft, err := s.read()
	switch {
	case err == nil:
		s.status.SetStatus(StatusRecovered)
		return draft, true
	case errors.Is(err, storage.ErrNotFound):
		return model.Draft{}, false
	case errors.Is(err, ErrExpiredDraft):
		s.logger.Debug("draft expired, discarding", zap.String("key", s.key), zap.Error(err))
		s.discard()
		return model.Draft{}, false
	case errors.Is(err, ErrMalformedDraft):
		s.logger.Warn("draft unreadable, discarding", zap.String("key", s.key), zap.Error(err))
		s.discard()
		return model.Draft{}, false
	default:
		s.logger.Warn("draft storage read failed", zap.String("key", s.key), zap.Error(err))
		s.discard()
		return model.Draft{}, false
	}
}

// Peek reads the slot without clearing anything or touching the status line.
func (s *Store) Peek() (model.Draft, error) {
	return s.read()
}

// Clear removes the slot unconditionally.
func (s *Store) Clear() error {
	if err := s.slots.Remove(s.key); err != nil {
		return fmt.Errorf("draft: clear: %w", err)
	}
	return nil
}

// Sweep clears the slot when it holds an expired or malformed draft. It
// reports whether anything was removed.
func (s *Store) Sweep() bool {
	_, err := s.read()
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		return false
	}
	s.logger.Info("sweeping stale draft", zap.String("key", s.key), zap.Error(err))
	s.discard()
	return true
}

func (s *Store) discard() {
	if err := s.Clear(); err != nil {
		s.logger.Warn("draft discard failed", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *Store) read() (model.Draft, error) {
	raw, err := s.slots.Get(s.key)
	if err != nil {
		return model.Draft{}, err
	}
	draft, err := decode(raw)
	if err != nil {
		return model.Draft{}, err
	}
	age := s.clock.Now().Sub(draft.SavedAt())
	if age >= s.retention {
		return model.Draft{}, fmt.Errorf("%w: saved %s ago", ErrExpiredDraft, age.Truncate(time.Second))
	}
	return draft, nil
}

// record mirrors model.Draft with optional members so missing fields can be
// told apart from empty ones.
type record struct {
	Name      *string  `json:"name"`
	Email     *string  `json:"email"`
	Interest  *string  `json:"interest"`
	Message   *string  `json:"message"`
	Timestamp *float64 `json:"timestamp"`
}

func decode(raw []byte) (model.Draft, error) {
	var rec *record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Draft{}, fmt.Errorf("%w: %v", ErrMalformedDraft, err)
	}
	if rec == nil || rec.Timestamp == nil {
		return model.Draft{}, fmt.Errorf("%w: missing timestamp", ErrMalformedDraft)
	}

	draft := model.Draft{
		Name:      deref(rec.Name),
		Email:     deref(rec.Email),
		Interest:  deref(rec.Interest),
		Message:   deref(rec.Message),
		Timestamp: int64(*rec.Timestamp),
	}
	if draft.Interest == "" {
		draft.Interest = string(model.DefaultInterest)
	}
	return draft, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
