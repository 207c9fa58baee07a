package alarm

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hydroapp/hydro/internal/model"
)

// ErrNotificationsDisabled is returned when a reminder is scheduled
// while no notification channel is configured. Callers are expected to
// check the capability flag first; hitting this is a contract violation.
var ErrNotificationsDisabled = errors.New("cannot schedule reminders while notifications are disabled")

// Capability reports whether notifications can actually be delivered.
type Capability interface {
	Enabled() bool
}

// Scheduler fires a callback at the times of day derived from the active
// reminder. It owns the exact fire-time set it scheduled and cancels
// exactly that set; it never recomputes cancellation times from persisted
// settings, so a crash between persisting and scheduling cannot leave
// stale fire times behind.
type Scheduler struct {
	mu         sync.RWMutex
	capability Capability
	loc        *time.Location
	interval   time.Duration
	onFire     func()
	scheduled  []model.TimeOfDay
	lastFired  map[model.TimeOfDay]model.Date
	cancel     context.CancelFunc
	done       chan struct{}
	logger     *slog.Logger
}

func NewScheduler(capability Capability, loc *time.Location, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		capability: capability,
		loc:        loc,
		interval:   20 * time.Second,
		lastFired:  make(map[model.TimeOfDay]model.Date),
		logger:     logger,
	}
}

// OnFire sets the callback invoked when a fire time is crossed. Must be
// called before Start.
func (s *Scheduler) OnFire(fn func()) {
	s.mu.Lock()
	s.onFire = fn
	s.mu.Unlock()
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tickAt(time.Now())
			}
		}
	}()
}

// Stop gracefully stops the scheduler loop. Scheduled fire times survive
// until Clear.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Schedule derives the reminder's fire times and arms them. Times already
// passed today first fire again tomorrow. Replaces any previous schedule.
func (s *Scheduler) Schedule(r model.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !s.capability.Enabled() {
		return ErrNotificationsDisabled
	}

	now := time.Now().In(s.loc)
	today := model.DateOf(now)
	tod := model.TimeOfDayOf(now)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduled = r.FireTimes()
	s.lastFired = make(map[model.TimeOfDay]model.Date, len(s.scheduled))
	for _, t := range s.scheduled {
		if t <= tod {
			s.lastFired[t] = today
		}
	}
	s.logger.Info("reminder scheduled", "fire_times", len(s.scheduled))
	return nil
}

// Clear cancels exactly the fire times that were scheduled.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduled == nil {
		return
	}
	s.scheduled = nil
	s.lastFired = make(map[model.TimeOfDay]model.Date)
	s.logger.Info("reminder schedule cleared")
}

// Scheduled returns a copy of the armed fire times, nil when none.
func (s *Scheduler) Scheduled() []model.TimeOfDay {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.scheduled == nil {
		return nil
	}
	out := make([]model.TimeOfDay, len(s.scheduled))
	copy(out, s.scheduled)
	return out
}

func (s *Scheduler) tickAt(now time.Time) {
	local := now.In(s.loc)
	today := model.DateOf(local)
	tod := model.TimeOfDayOf(local)

	s.mu.Lock()
	fired := false
	for _, t := range s.scheduled {
		if t > tod {
			continue
		}
		if s.lastFired[t] == today {
			continue
		}
		s.lastFired[t] = today
		fired = true
	}
	onFire := s.onFire
	s.mu.Unlock()

	// One callback per tick even when several fire times were crossed at
	// once (e.g. after a long suspend): the notification replaces itself
	// by tag anyway.
	if fired && onFire != nil {
		onFire()
	}
}
