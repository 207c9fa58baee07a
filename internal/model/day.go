package model

import (
	"sort"

	"github.com/google/uuid"
)

// Hydration is a single logged volume with its time of day. Every event
// has its own identity; logging the same volume twice yields two events.
type Hydration struct {
	ID          string      `json:"id"`
	Milliliters Milliliters `json:"milliliters"`
	Time        TimeOfDay   `json:"time"`
}

func NewHydration(ml Milliliters, t TimeOfDay) Hydration {
	return Hydration{
		ID:          uuid.NewString(),
		Milliliters: ml,
		Time:        t,
	}
}

func SumMilliliters(hydration []Hydration) Milliliters {
	var total Milliliters
	for _, h := range hydration {
		total = total.Add(h.Milliliters)
	}
	return total
}

// Day aggregates the hydration events of one calendar date together with
// the goal in effect when the entries were made. At most one Day exists
// per date.
type Day struct {
	ID        string      `json:"id"`
	Date      Date        `json:"date"`
	Hydration []Hydration `json:"hydration"`
	Goal      Milliliters `json:"goal"`
}

func NewDay(date Date, goal Milliliters) Day {
	return Day{
		ID:   uuid.NewString(),
		Date: date,
		Goal: goal,
	}
}

func (d Day) Total() Milliliters {
	return SumMilliliters(d.Hydration)
}

func (d Day) ReachedGoal() bool {
	return d.Total() >= d.Goal
}

// SortHydration orders events chronologically, in place.
func SortHydration(hydration []Hydration) {
	sort.Slice(hydration, func(i, j int) bool {
		return hydration[i].Time < hydration[j].Time
	})
}
