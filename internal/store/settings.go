package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hydroapp/hydro/internal/model"
)

const (
	keyDailyGoal           = "daily_goal_ml"
	keyReminder            = "reminder"
	keyTheme               = "theme"
	keySelectedCups        = "selected_cups"
	keyLiquidUnit          = "liquid_unit"
	keyOnboardingShown     = "onboarding_shown"
	keyLastGoalCelebration = "last_goal_celebration"
)

// SettingsStore is a flat key-value map with typed accessors for every
// user preference. Reads of absent keys fall back to defaults; they are
// never errors.
type SettingsStore struct {
	db       *sql.DB
	onChange func()
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Subscribe registers a callback invoked after every successful write.
func (s *SettingsStore) Subscribe(fn func()) {
	s.onChange = fn
}

func (s *SettingsStore) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *SettingsStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SettingsStore) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	s.notify()
	return nil
}

func (s *SettingsStore) delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	s.notify()
	return nil
}

// DailyGoal returns the persisted goal, or nil when the user never set one.
func (s *SettingsStore) DailyGoal() (*model.Milliliters, error) {
	value, ok, err := s.get(keyDailyGoal)
	if err != nil || !ok {
		return nil, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("stored daily goal %q: %w", value, err)
	}
	goal := model.Milliliters(n)
	return &goal, nil
}

func (s *SettingsStore) SetDailyGoal(goal model.Milliliters) error {
	return s.set(keyDailyGoal, strconv.Itoa(int(goal)))
}

// Reminder returns the persisted reminder, or nil when none is set.
func (s *SettingsStore) Reminder() (*model.Reminder, error) {
	value, ok, err := s.get(keyReminder)
	if err != nil || !ok {
		return nil, err
	}
	var r model.Reminder
	if err := json.Unmarshal([]byte(value), &r); err != nil {
		return nil, fmt.Errorf("stored reminder: %w", err)
	}
	return &r, nil
}

// SetReminder persists the reminder; nil removes it.
func (s *SettingsStore) SetReminder(r *model.Reminder) error {
	if r == nil {
		return s.delete(keyReminder)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}
	return s.set(keyReminder, string(data))
}

func (s *SettingsStore) Theme() (model.Theme, error) {
	value, _, err := s.get(keyTheme)
	if err != nil {
		return model.ThemeSystem, err
	}
	return model.ParseTheme(value), nil
}

func (s *SettingsStore) SetTheme(theme model.Theme) error {
	return s.set(keyTheme, string(theme))
}

// SelectedCups returns the persisted cup selection; empty when unset.
func (s *SettingsStore) SelectedCups() ([]model.Cup, error) {
	value, ok, err := s.get(keySelectedCups)
	if err != nil || !ok {
		return nil, err
	}
	var cups []model.Cup
	if err := json.Unmarshal([]byte(value), &cups); err != nil {
		return nil, fmt.Errorf("stored cups: %w", err)
	}
	return cups, nil
}

func (s *SettingsStore) SetSelectedCups(cups []model.Cup) error {
	if cups == nil {
		cups = []model.Cup{}
	}
	data, err := json.Marshal(cups)
	if err != nil {
		return fmt.Errorf("marshal cups: %w", err)
	}
	return s.set(keySelectedCups, string(data))
}

func (s *SettingsStore) LiquidUnit() (model.LiquidUnit, error) {
	value, _, err := s.get(keyLiquidUnit)
	if err != nil {
		return model.Milliliter, err
	}
	return model.ParseLiquidUnit(value), nil
}

func (s *SettingsStore) SetLiquidUnit(unit model.LiquidUnit) error {
	return s.set(keyLiquidUnit, string(unit))
}

func (s *SettingsStore) OnboardingShown() (bool, error) {
	value, _, err := s.get(keyOnboardingShown)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (s *SettingsStore) SetOnboardingShown(shown bool) error {
	return s.set(keyOnboardingShown, strconv.FormatBool(shown))
}

// LastGoalCelebration returns when the goal-reached notification last
// fired; the zero time means never.
func (s *SettingsStore) LastGoalCelebration() (time.Time, error) {
	value, ok, err := s.get(keyLastGoalCelebration)
	if err != nil || !ok {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored celebration %q: %w", value, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func (s *SettingsStore) SetLastGoalCelebration(t time.Time) error {
	return s.set(keyLastGoalCelebration, strconv.FormatInt(t.UnixMilli(), 10))
}

// ClearLastGoalCelebration resets the celebration stamp so the goal
// notification can retrigger (used by ResetToday).
func (s *SettingsStore) ClearLastGoalCelebration() error {
	return s.delete(keyLastGoalCelebration)
}

// HasCelebratedGoalOn reports whether the celebration already fired on
// the given local calendar date.
func (s *SettingsStore) HasCelebratedGoalOn(date model.Date, loc *time.Location) (bool, error) {
	last, err := s.LastGoalCelebration()
	if err != nil {
		return false, err
	}
	if last.IsZero() {
		return false, nil
	}
	return model.DateOf(last.In(loc)) == date, nil
}

// Clear removes every setting.
func (s *SettingsStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM settings`); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	s.notify()
	return nil
}
