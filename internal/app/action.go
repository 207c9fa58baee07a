package app

import "github.com/hydroapp/hydro/internal/model"

// Action is the closed set of mutating intents the store accepts.
// Dispatch handles every variant in one exhaustive type switch; the
// unexported marker keeps the set closed to this package.
type Action interface {
	isAction()
}

// SetDailyGoal persists a new goal and retroactively rewrites the goal
// snapshot of today's record (never of past days).
type SetDailyGoal struct {
	Value model.Milliliters
}

// AddHydration appends exactly one event at the current time. Dispatching
// it twice with the same value yields two distinct events.
type AddHydration struct {
	Value model.Milliliters
}

// SetReminder schedules fire times and persists the reminder; a nil
// value cancels the scheduled set and removes the persisted reminder.
type SetReminder struct {
	Value *model.Reminder
}

// RestartReminder re-arms the persisted reminder, if any. Used after a
// restart, since scheduled fire times do not survive the process.
type RestartReminder struct{}

// ShowReminderNotification posts the hydration reminder unless the goal
// was already celebrated today. Forced bypasses that check.
type ShowReminderNotification struct {
	Forced bool
}

type SetTheme struct {
	Value model.Theme
}

type SetSelectedCups struct {
	Value []model.Cup
}

type SetLiquidUnit struct {
	Value model.LiquidUnit
}

// SetOnboardingShown marks onboarding as completed and resets today's
// demonstration data.
type SetOnboardingShown struct{}

// SetAppInForeground flips the in-memory foreground flag; it is never
// persisted. A foregrounded client suppresses the celebration push.
type SetAppInForeground struct {
	Value bool
}

// ResetToday clears today's hydration list (the day record survives) and
// resets the celebration stamp so it can retrigger.
type ResetToday struct{}

// SetHydrationForOnboarding seeds today with a single synthetic event at
// 55% of the current goal, for the onboarding demonstration.
type SetHydrationForOnboarding struct{}

// DeleteAll irreversibly clears settings, history, scheduled fire times,
// and posted notifications. Confirmation is a client concern.
type DeleteAll struct{}

func (SetDailyGoal) isAction()              {}
func (AddHydration) isAction()              {}
func (SetReminder) isAction()               {}
func (RestartReminder) isAction()           {}
func (ShowReminderNotification) isAction()  {}
func (SetTheme) isAction()                  {}
func (SetSelectedCups) isAction()           {}
func (SetLiquidUnit) isAction()             {}
func (SetOnboardingShown) isAction()        {}
func (SetAppInForeground) isAction()        {}
func (ResetToday) isAction()                {}
func (SetHydrationForOnboarding) isAction() {}
func (DeleteAll) isAction()                 {}
