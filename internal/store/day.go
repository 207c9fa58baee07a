package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hydroapp/hydro/internal/model"
)

// DayStore persists one record per calendar date, each carrying its
// hydration events as an embedded JSON list plus the goal in effect.
type DayStore struct {
	db       *sql.DB
	onChange func()
}

func NewDayStore(db *sql.DB) *DayStore {
	return &DayStore{db: db}
}

// Subscribe registers a callback invoked after every successful write.
// The app store uses it to re-project state from persisted values.
func (s *DayStore) Subscribe(fn func()) {
	s.onChange = fn
}

func (s *DayStore) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

const dayCols = `id, date, goal_ml, hydration`

func scanDay(scanner interface{ Scan(...any) error }) (*model.Day, error) {
	var d model.Day
	var date string
	var hydration string

	if err := scanner.Scan(&d.ID, &date, &d.Goal, &hydration); err != nil {
		return nil, err
	}

	parsed, err := model.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("stored date: %w", err)
	}
	d.Date = parsed

	if err := json.Unmarshal([]byte(hydration), &d.Hydration); err != nil {
		return nil, fmt.Errorf("stored hydration: %w", err)
	}
	return &d, nil
}

// SetDay upserts a day keyed by its date. The identifier of an existing
// record survives the upsert.
func (s *DayStore) SetDay(day model.Day) error {
	if day.ID == "" {
		day.ID = uuid.NewString()
	}
	hydration := day.Hydration
	if hydration == nil {
		hydration = []model.Hydration{}
	}
	data, err := json.Marshal(hydration)
	if err != nil {
		return fmt.Errorf("marshal hydration: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO days (id, date, goal_ml, hydration, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET goal_ml = excluded.goal_ml, hydration = excluded.hydration, updated_at = excluded.updated_at`,
		day.ID, day.Date.String(), day.Goal, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set day %s: %w", day.Date, err)
	}
	s.notify()
	return nil
}

// Day returns the record for a date, or nil when none exists.
func (s *DayStore) Day(date model.Date) (*model.Day, error) {
	row := s.db.QueryRow(`SELECT `+dayCols+` FROM days WHERE date = ?`, date.String())
	d, err := scanDay(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day %s: %w", date, err)
	}
	return d, nil
}

// Days returns up to pageSize records strictly before the given date,
// newest first, for history browsing.
func (s *DayStore) Days(beforeExclusive model.Date, pageSize int) ([]model.Day, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	rows, err := s.db.Query(
		`SELECT `+dayCols+` FROM days WHERE date < ? ORDER BY date DESC LIMIT ?`,
		beforeExclusive.String(), pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer rows.Close()

	var days []model.Day
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, *d)
	}
	return days, rows.Err()
}

func (s *DayStore) Delete(date model.Date) error {
	_, err := s.db.Exec(`DELETE FROM days WHERE date = ?`, date.String())
	if err != nil {
		return fmt.Errorf("delete day %s: %w", date, err)
	}
	s.notify()
	return nil
}

func (s *DayStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM days`)
	if err != nil {
		return fmt.Errorf("clear days: %w", err)
	}
	s.notify()
	return nil
}
