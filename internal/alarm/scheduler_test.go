package alarm

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hydroapp/hydro/internal/model"
)

type capability bool

func (c capability) Enabled() bool { return bool(c) }

func testScheduler(t *testing.T, enabled bool) *Scheduler {
	t.Helper()
	return NewScheduler(capability(enabled), time.UTC, slog.New(slog.DiscardHandler))
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.June, 10, hour, minute, 0, 0, time.UTC)
}

func TestScheduleRequiresCapability(t *testing.T) {
	s := testScheduler(t, false)

	err := s.Schedule(model.DefaultReminder())
	if !errors.Is(err, ErrNotificationsDisabled) {
		t.Fatalf("err = %v, want ErrNotificationsDisabled", err)
	}
	if s.Scheduled() != nil {
		t.Error("nothing should be armed after a refused schedule")
	}
}

func TestScheduleRejectsInvalidReminder(t *testing.T) {
	s := testScheduler(t, true)

	bad := model.Reminder{Start: model.NewTimeOfDay(18, 0, 0), End: model.NewTimeOfDay(9, 0, 0), Interval: time.Hour}
	if err := s.Schedule(bad); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSchedulerFiresOncePerFireTime(t *testing.T) {
	s := testScheduler(t, true)

	var fires int
	s.OnFire(func() { fires++ })

	r := model.Reminder{
		Start:    model.NewTimeOfDay(9, 0, 0),
		End:      model.NewTimeOfDay(10, 0, 0),
		Interval: 30 * time.Minute,
	}
	if err := s.Schedule(r); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got := len(s.Scheduled()); got != 3 {
		t.Fatalf("armed fire times = %d, want 3", got)
	}

	s.tickAt(at(8, 59))
	if fires != 0 {
		t.Fatalf("fired before the window, fires = %d", fires)
	}

	s.tickAt(at(9, 0))
	if fires != 1 {
		t.Fatalf("fires after 09:00 = %d, want 1", fires)
	}

	// Same fire time crossed again on the same date: no re-fire.
	s.tickAt(at(9, 10))
	if fires != 1 {
		t.Fatalf("fires after re-tick = %d, want 1", fires)
	}

	s.tickAt(at(9, 30))
	s.tickAt(at(10, 0))
	if fires != 3 {
		t.Fatalf("fires after window = %d, want 3", fires)
	}

	// Next day the same times fire again.
	s.tickAt(at(9, 0).AddDate(0, 0, 1))
	if fires != 4 {
		t.Fatalf("fires next day = %d, want 4", fires)
	}
}

func TestSchedulerCollapsesMissedFireTimes(t *testing.T) {
	s := testScheduler(t, true)

	var fires int
	s.OnFire(func() { fires++ })

	r := model.Reminder{
		Start:    model.NewTimeOfDay(9, 0, 0),
		End:      model.NewTimeOfDay(12, 0, 0),
		Interval: time.Hour,
	}
	if err := s.Schedule(r); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	// A single tick long after several fire times have passed posts one
	// notification, not one per missed time.
	s.tickAt(at(11, 30))
	if fires != 1 {
		t.Fatalf("fires = %d, want 1", fires)
	}
}

func TestScheduleMidWindowSkipsPassedTimes(t *testing.T) {
	s := testScheduler(t, true)

	var fires int
	s.OnFire(func() { fires++ })

	// Freeze "now" semantics by scheduling a window that is already fully
	// in the past for today: nothing may fire until tomorrow.
	r := model.Reminder{
		Start:    model.NewTimeOfDay(0, 0, 1),
		End:      model.NewTimeOfDay(0, 0, 2),
		Interval: time.Second,
	}
	if err := s.Schedule(r); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	now := time.Now().UTC()
	s.tickAt(now)
	if fires != 0 {
		t.Fatalf("fires = %d, want 0 for already-passed times", fires)
	}

	s.tickAt(now.AddDate(0, 0, 1))
	if fires != 1 {
		t.Fatalf("fires tomorrow = %d, want 1", fires)
	}
}

func TestClearCancelsExactlyScheduledSet(t *testing.T) {
	s := testScheduler(t, true)

	var fires int
	s.OnFire(func() { fires++ })

	if err := s.Schedule(model.DefaultReminder()); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	s.Clear()

	if s.Scheduled() != nil {
		t.Error("fire times survived clear")
	}
	s.tickAt(at(9, 0))
	s.tickAt(at(18, 0))
	if fires != 0 {
		t.Errorf("fires after clear = %d, want 0", fires)
	}
}
