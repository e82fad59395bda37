package draft

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/eventloop"
)

// DefaultSweepSchedule checks for a stale draft once an hour.
const DefaultSweepSchedule = "@every 1h"

// Sweeper periodically clears a stale draft in long-lived sessions. Cron
// fires on its own goroutine, so each sweep is posted onto the host loop to
// keep slot access single-threaded.
type Sweeper struct {
	cron     *cron.Cron
	store    *Store
	poster   eventloop.Poster
	schedule string
	logger   *zap.Logger
	entry    cron.EntryID
}

// NewSweeper prepares a sweeper for store. An empty schedule selects
// DefaultSweepSchedule.
func NewSweeper(store *Store, poster eventloop.Poster, schedule string, logger *zap.Logger) (*Sweeper, error) {
	if store == nil {
		return nil, errors.New("draft sweeper: store is required")
	}
	if poster == nil {
		return nil, errors.New("draft sweeper: poster is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	s := &Sweeper{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		store:    store,
		poster:   poster,
		schedule: schedule,
		logger:   logger,
	}
	id, err := s.cron.AddFunc(schedule, s.trigger)
	if err != nil {
		return nil, fmt.Errorf("draft sweeper: schedule %q: %w", schedule, err)
	}
	s.entry = id
	return s, nil
}

// Start begins running the schedule in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
	s.logger.Debug("draft sweeper started", zap.String("schedule", s.schedule))
}

// Stop halts the schedule and waits for a running trigger to return.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Debug("draft sweeper stopped")
}

// Next reports when the next sweep is due.
func (s *Sweeper) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

func (s *Sweeper) trigger() {
	if !s.poster.Post(func() { s.store.Sweep() }) {
		s.logger.Debug("draft sweep skipped, loop stopped")
	}
}
