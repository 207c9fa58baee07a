package store

import (
	"testing"
	"time"

	"github.com/hydroapp/hydro/internal/model"
)

func TestSettingsDefaults(t *testing.T) {
	ss := NewSettingsStore(setupTestDB(t))

	goal, err := ss.DailyGoal()
	if err != nil {
		t.Fatalf("daily goal: %v", err)
	}
	if goal != nil {
		t.Errorf("unset goal = %v, want nil", goal)
	}

	reminder, err := ss.Reminder()
	if err != nil {
		t.Fatalf("reminder: %v", err)
	}
	if reminder != nil {
		t.Errorf("unset reminder = %v, want nil", reminder)
	}

	theme, err := ss.Theme()
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if theme != model.ThemeSystem {
		t.Errorf("theme = %s, want system", theme)
	}

	unit, err := ss.LiquidUnit()
	if err != nil {
		t.Fatalf("unit: %v", err)
	}
	if unit != model.Milliliter {
		t.Errorf("unit = %s, want ml", unit)
	}

	shown, err := ss.OnboardingShown()
	if err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if shown {
		t.Error("onboarding flag should default to false")
	}

	last, err := ss.LastGoalCelebration()
	if err != nil {
		t.Fatalf("celebration: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("celebration = %v, want zero", last)
	}
}

func TestSettingsDailyGoalRoundTrip(t *testing.T) {
	ss := NewSettingsStore(setupTestDB(t))

	if err := ss.SetDailyGoal(2500); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	goal, err := ss.DailyGoal()
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if goal == nil || *goal != 2500 {
		t.Errorf("goal = %v, want 2500", goal)
	}
}

func TestSettingsReminderSetAndRemove(t *testing.T) {
	ss := NewSettingsStore(setupTestDB(t))

	r := model.DefaultReminder()
	if err := ss.SetReminder(&r); err != nil {
		t.Fatalf("set reminder: %v", err)
	}
	got, err := ss.Reminder()
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got == nil || *got != r {
		t.Errorf("reminder = %+v, want %+v", got, r)
	}

	if err := ss.SetReminder(nil); err != nil {
		t.Fatalf("remove reminder: %v", err)
	}
	got, err = ss.Reminder()
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got != nil {
		t.Errorf("reminder after removal = %+v, want nil", got)
	}
}

func TestSettingsSelectedCups(t *testing.T) {
	ss := NewSettingsStore(setupTestDB(t))

	cups := []model.Cup{{Milliliters: 250}, {Milliliters: 500}}
	if err := ss.SetSelectedCups(cups); err != nil {
		t.Fatalf("set cups: %v", err)
	}
	got, err := ss.SelectedCups()
	if err != nil {
		t.Fatalf("get cups: %v", err)
	}
	if len(got) != 2 || got[0].Milliliters != 250 || got[1].Milliliters != 500 {
		t.Errorf("cups = %+v", got)
	}
}

func TestSettingsHasCelebratedGoalOn(t *testing.T) {
	ss := NewSettingsStore(setupTestDB(t))
	loc := time.UTC

	stamp := time.Date(2024, time.June, 10, 15, 30, 0, 0, loc)
	if err := ss.SetLastGoalCelebration(stamp); err != nil {
		t.Fatalf("set celebration: %v", err)
	}

	same, err := ss.HasCelebratedGoalOn(model.Date{Year: 2024, Month: time.June, Day: 10}, loc)
	if err != nil {
		t.Fatalf("has celebrated: %v", err)
	}
	if !same {
		t.Error("expected celebration recorded for the stamp's date")
	}

	next, err := ss.HasCelebratedGoalOn(model.Date{Year: 2024, Month: time.June, Day: 11}, loc)
	if err != nil {
		t.Fatalf("has celebrated: %v", err)
	}
	if next {
		t.Error("celebration must not carry over to the next date")
	}

	if err := ss.ClearLastGoalCelebration(); err != nil {
		t.Fatalf("clear celebration: %v", err)
	}
	cleared, err := ss.HasCelebratedGoalOn(model.Date{Year: 2024, Month: time.June, Day: 10}, loc)
	if err != nil {
		t.Fatalf("has celebrated: %v", err)
	}
	if cleared {
		t.Error("celebration survived reset")
	}
}

func TestSettingsClear(t *testing.T) {
	ss := NewSettingsStore(setupTestDB(t))

	if err := ss.SetDailyGoal(2000); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	r := model.DefaultReminder()
	if err := ss.SetReminder(&r); err != nil {
		t.Fatalf("set reminder: %v", err)
	}

	if err := ss.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	goal, _ := ss.DailyGoal()
	if goal != nil {
		t.Error("goal survived clear")
	}
	reminder, _ := ss.Reminder()
	if reminder != nil {
		t.Error("reminder survived clear")
	}
}

func TestSettingsNotifiesSubscriber(t *testing.T) {
	ss := NewSettingsStore(setupTestDB(t))

	var calls int
	ss.Subscribe(func() { calls++ })

	if err := ss.SetTheme(model.ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if err := ss.SetLiquidUnit(model.USFluidOunce); err != nil {
		t.Fatalf("set unit: %v", err)
	}
	if calls != 2 {
		t.Errorf("subscriber calls = %d, want 2", calls)
	}
}
