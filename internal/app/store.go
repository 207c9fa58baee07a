package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hydroapp/hydro/internal/model"
	"github.com/hydroapp/hydro/internal/store"
)

// Notifier posts and cancels the two logical notifications.
type Notifier interface {
	Enabled() bool
	SendReminder(ctx context.Context, total model.Milliliters, progress model.Percent, cups []model.Cup, unit model.LiquidUnit) error
	SendGoalReached(ctx context.Context) error
	CancelReminder(ctx context.Context) error
	Clear(ctx context.Context) error
}

// ReminderScheduler arms and cancels reminder fire times.
type ReminderScheduler interface {
	Schedule(model.Reminder) error
	Clear()
}

// Store is the single source of truth for State. All mutating intents go
// through Dispatch, which serializes them; reads are push-based through
// Subscribe. State is re-projected from the persistence stores after
// every write, so the snapshot always reflects persisted values.
type Store struct {
	days      *store.DayStore
	settings  *store.SettingsStore
	notifier  Notifier
	scheduler ReminderScheduler
	loc       *time.Location
	logger    *slog.Logger

	dispatchMu sync.Mutex

	mu          sync.RWMutex
	state       State
	subscribers []func(State)
}

// New seeds the initial snapshot synchronously from the stores and wires
// their change streams. Reads are bounded local SQLite queries, so the
// synchronous bootstrap is deliberate.
func New(days *store.DayStore, settings *store.SettingsStore, notifier Notifier, scheduler ReminderScheduler, loc *time.Location, logger *slog.Logger) (*Store, error) {
	s := &Store{
		days:      days,
		settings:  settings,
		notifier:  notifier,
		scheduler: scheduler,
		loc:       loc,
		logger:    logger,
	}

	state, err := s.project(false)
	if err != nil {
		return nil, fmt.Errorf("seed state: %w", err)
	}
	s.state = state

	days.Subscribe(s.refresh)
	settings.Subscribe(s.refresh)
	return s, nil
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener invoked with every new snapshot.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// OnDateChanged re-projects the snapshot for a new calendar date; wired
// to the date watcher so "today's" total resets at local midnight.
func (s *Store) OnDateChanged(model.Date) {
	s.refresh()
}

func (s *Store) today() model.Date {
	return model.Today(s.loc)
}

// project builds a fresh State from the stores, keeping the in-memory
// foreground flag when asked.
func (s *Store) project(keepForeground bool) (State, error) {
	var st State

	goal, err := s.settings.DailyGoal()
	if err != nil {
		return st, err
	}
	if goal != nil {
		st.DailyGoal = *goal
	} else {
		st.DailyGoal = model.DailyGoalDefault
	}

	day, err := s.days.Day(s.today())
	if err != nil {
		return st, err
	}
	if day != nil {
		st.TodayHydration = day.Total()
	}

	if st.Reminder, err = s.settings.Reminder(); err != nil {
		return st, err
	}
	if st.Theme, err = s.settings.Theme(); err != nil {
		return st, err
	}
	if st.LiquidUnit, err = s.settings.LiquidUnit(); err != nil {
		return st, err
	}

	selected, err := s.settings.SelectedCups()
	if err != nil {
		return st, err
	}
	if len(selected) == 0 {
		selected = model.DefaultSelectedCups(st.LiquidUnit)
	}
	model.SortCups(selected)
	st.SelectedCups = selected
	st.DefaultCups = model.DefaultCups(st.LiquidUnit)

	if st.OnboardingShown, err = s.settings.OnboardingShown(); err != nil {
		return st, err
	}

	st.NotificationsEnabled = s.notifier.Enabled()
	if keepForeground {
		s.mu.RLock()
		st.AppInForeground = s.state.AppInForeground
		s.mu.RUnlock()
	}

	st.derive()
	return st, nil
}

// refresh re-projects and publishes the snapshot. Invoked by the store
// change streams after every persisted write.
func (s *Store) refresh() {
	state, err := s.project(true)
	if err != nil {
		s.logger.Error("re-project state", "error", err)
		return
	}
	s.publish(state)
}

func (s *Store) publish(state State) {
	s.mu.Lock()
	s.state = state
	subscribers := make([]func(State), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}

// Dispatch applies one intent. Intents are serialized; each one is a
// short bounded unit of work against the local stores.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	switch a := action.(type) {
	case SetDailyGoal:
		return s.setDailyGoal(a.Value)
	case AddHydration:
		return s.addHydration(ctx, a.Value)
	case SetReminder:
		return s.setReminder(ctx, a.Value)
	case RestartReminder:
		return s.restartReminder()
	case ShowReminderNotification:
		return s.showReminderNotification(ctx, a.Forced)
	case SetTheme:
		return s.settings.SetTheme(a.Value)
	case SetSelectedCups:
		model.SortCups(a.Value)
		return s.settings.SetSelectedCups(a.Value)
	case SetLiquidUnit:
		return s.settings.SetLiquidUnit(a.Value)
	case SetOnboardingShown:
		if err := s.settings.SetOnboardingShown(true); err != nil {
			return err
		}
		return s.resetToday()
	case SetAppInForeground:
		s.setAppInForeground(a.Value)
		return nil
	case ResetToday:
		return s.resetToday()
	case SetHydrationForOnboarding:
		return s.seedOnboardingHydration()
	case DeleteAll:
		return s.deleteAll(ctx)
	default:
		return fmt.Errorf("unhandled action %T", action)
	}
}

func (s *Store) setDailyGoal(goal model.Milliliters) error {
	if err := s.settings.SetDailyGoal(goal); err != nil {
		return err
	}
	// Today always reflects the latest goal, even retroactively. Past
	// days keep the goal they were recorded under.
	day, err := s.days.Day(s.today())
	if err != nil {
		return err
	}
	if day == nil {
		return nil
	}
	day.Goal = goal
	return s.days.SetDay(*day)
}

func (s *Store) addHydration(ctx context.Context, value model.Milliliters) error {
	if err := s.notifier.CancelReminder(ctx); err != nil {
		s.logger.Error("cancel reminder notification", "error", err)
	}

	now := time.Now().In(s.loc)
	today := model.DateOf(now)
	goal := s.State().DailyGoal

	day, err := s.days.Day(today)
	if err != nil {
		return err
	}
	if day == nil {
		created := model.NewDay(today, goal)
		day = &created
	}
	day.Goal = goal
	day.Hydration = append(day.Hydration, model.NewHydration(value, model.TimeOfDayOf(now)))

	if day.ReachedGoal() {
		celebrated, err := s.settings.HasCelebratedGoalOn(today, s.loc)
		if err != nil {
			return err
		}
		if !celebrated {
			// Celebrate at most once per calendar date. The push is
			// suppressed while a client is foregrounded, but the stamp is
			// recorded either way.
			if !s.State().AppInForeground {
				if err := s.notifier.SendGoalReached(ctx); err != nil {
					s.logger.Error("send goal celebration", "error", err)
				}
			}
			if err := s.settings.SetLastGoalCelebration(now.UTC()); err != nil {
				return err
			}
		}
	}

	return s.days.SetDay(*day)
}

func (s *Store) setReminder(ctx context.Context, r *model.Reminder) error {
	if r != nil {
		if err := s.scheduler.Schedule(*r); err != nil {
			return err
		}
	} else {
		s.scheduler.Clear()
		if err := s.notifier.CancelReminder(ctx); err != nil {
			s.logger.Error("cancel reminder notification", "error", err)
		}
	}
	return s.settings.SetReminder(r)
}

func (s *Store) restartReminder() error {
	r, err := s.settings.Reminder()
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	return s.scheduler.Schedule(*r)
}

func (s *Store) showReminderNotification(ctx context.Context, forced bool) error {
	today := s.today()
	if !forced {
		celebrated, err := s.settings.HasCelebratedGoalOn(today, s.loc)
		if err != nil {
			return err
		}
		if celebrated {
			return nil
		}
	}

	state := s.State()
	return s.notifier.SendReminder(ctx, state.TodayHydration, state.HydrationProgress, state.SelectedCups, state.LiquidUnit)
}

func (s *Store) setAppInForeground(v bool) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	state.AppInForeground = v
	s.publish(state)
}

func (s *Store) resetToday() error {
	day, err := s.days.Day(s.today())
	if err != nil {
		return err
	}
	if day != nil {
		day.Hydration = nil
		if err := s.days.SetDay(*day); err != nil {
			return err
		}
	}
	return s.settings.ClearLastGoalCelebration()
}

func (s *Store) seedOnboardingHydration() error {
	now := time.Now().In(s.loc)
	goal := s.State().DailyGoal

	day := model.NewDay(model.DateOf(now), goal)
	day.Hydration = []model.Hydration{
		model.NewHydration(goal.Scale(0.55), model.TimeOfDayOf(now)),
	}
	return s.days.SetDay(day)
}

func (s *Store) deleteAll(ctx context.Context) error {
	if err := s.settings.Clear(); err != nil {
		return err
	}
	if err := s.days.Clear(); err != nil {
		return err
	}
	s.scheduler.Clear()
	if err := s.notifier.Clear(ctx); err != nil {
		s.logger.Error("clear notifications", "error", err)
	}
	return nil
}
