package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Reminder is a daily recurring notification window. Start must be
// strictly before End; both are times of the same day.
type Reminder struct {
	Start    TimeOfDay
	End      TimeOfDay
	Interval time.Duration
}

func DefaultReminder() Reminder {
	return Reminder{
		Start:    NewTimeOfDay(9, 0, 0),
		End:      NewTimeOfDay(18, 0, 0),
		Interval: 30 * time.Minute,
	}
}

func (r Reminder) Validate() error {
	if r.Start >= r.End {
		return fmt.Errorf("reminder start %s must be before end %s", r.Start, r.End)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %s", r.Interval)
	}
	return nil
}

// FireTimes derives the times of day the reminder fires: Start, stepping
// by Interval while within the window, with End always included as the
// final anchor even when the stepping does not land on it exactly.
func (r Reminder) FireTimes() []TimeOfDay {
	var times []TimeOfDay
	for current := r.Start; current <= r.End; current = current.Add(r.Interval) {
		times = append(times, current)
	}
	if len(times) == 0 || times[len(times)-1] != r.End {
		times = append(times, r.End)
	}
	return times
}

type reminderJSON struct {
	Start           TimeOfDay `json:"start"`
	End             TimeOfDay `json:"end"`
	IntervalMinutes int       `json:"interval_minutes"`
}

func (r Reminder) MarshalJSON() ([]byte, error) {
	return json.Marshal(reminderJSON{
		Start:           r.Start,
		End:             r.End,
		IntervalMinutes: int(r.Interval / time.Minute),
	})
}

func (r *Reminder) UnmarshalJSON(data []byte) error {
	var rj reminderJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	r.Start = rj.Start
	r.End = rj.End
	r.Interval = time.Duration(rj.IntervalMinutes) * time.Minute
	return nil
}
