package clock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hydroapp/hydro/internal/model"
)

// DateWatcher detects local calendar-date rollovers without relying on a
// midnight signal: it polls at sub-minute granularity and emits whenever
// "today" differs from the last observed date. Daylight-saving shifts in
// the configured location surface on the next poll for free, because
// today is always recomputed from the wall clock.
type DateWatcher struct {
	mu       sync.RWMutex
	loc      *time.Location
	interval time.Duration
	onChange func(model.Date)
	current  model.Date
	cancel   context.CancelFunc
	done     chan struct{}
	logger   *slog.Logger
}

func NewDateWatcher(loc *time.Location, onChange func(model.Date), logger *slog.Logger) *DateWatcher {
	return &DateWatcher{
		loc:      loc,
		interval: 15 * time.Second,
		onChange: onChange,
		logger:   logger,
	}
}

// Start emits the current date immediately, then begins polling.
func (w *DateWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.current = model.Today(w.loc)
	w.mu.Unlock()

	w.onChange(w.current)

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.check(time.Now())
			}
		}
	}()
}

// Stop gracefully stops the watcher.
func (w *DateWatcher) Stop() {
	w.mu.RLock()
	cancel := w.cancel
	done := w.done
	w.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (w *DateWatcher) check(now time.Time) {
	today := model.DateOf(now.In(w.loc))

	w.mu.Lock()
	changed := today != w.current
	if changed {
		w.current = today
	}
	w.mu.Unlock()

	if changed {
		w.logger.Info("calendar date rolled over", "date", today.String())
		w.onChange(today)
	}
}
