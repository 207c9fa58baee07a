package clock

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/hydroapp/hydro/internal/model"
)

func TestDateWatcherEmitsOnStart(t *testing.T) {
	var emitted []model.Date
	w := NewDateWatcher(time.UTC, func(d model.Date) { emitted = append(emitted, d) }, slog.New(slog.DiscardHandler))

	w.Start(context.Background())
	defer w.Stop()

	if len(emitted) != 1 {
		t.Fatalf("emissions on start = %d, want 1", len(emitted))
	}
	if emitted[0] != model.Today(time.UTC) {
		t.Errorf("emitted %s, want today", emitted[0])
	}
}

func TestDateWatcherDetectsRollover(t *testing.T) {
	var emitted []model.Date
	w := NewDateWatcher(time.UTC, func(d model.Date) { emitted = append(emitted, d) }, slog.New(slog.DiscardHandler))

	w.mu.Lock()
	w.current = model.Today(time.UTC)
	w.mu.Unlock()

	// Same date: no emission.
	w.check(time.Now())
	if len(emitted) != 0 {
		t.Fatalf("emissions for same date = %d, want 0", len(emitted))
	}

	// Next day: one emission with the new date.
	tomorrow := time.Now().AddDate(0, 0, 1)
	w.check(tomorrow)
	if len(emitted) != 1 {
		t.Fatalf("emissions after rollover = %d, want 1", len(emitted))
	}
	if emitted[0] != model.DateOf(tomorrow.UTC()) {
		t.Errorf("emitted %s, want %s", emitted[0], model.DateOf(tomorrow.UTC()))
	}

	// Re-checking the same new date stays quiet.
	w.check(tomorrow)
	if len(emitted) != 1 {
		t.Fatalf("emissions after repeat = %d, want 1", len(emitted))
	}
}
