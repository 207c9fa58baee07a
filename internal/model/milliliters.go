package model

import (
	"fmt"
	"math"
)

// Milliliters is the base unit for all stored liquid volumes. Values are
// never negative; subtraction clamps at zero.
type Milliliters int

const (
	DailyGoalDefault Milliliters = 2000
	DailyGoalMin     Milliliters = 500
	DailyGoalMax     Milliliters = 5000
	DailyGoalStep    Milliliters = 100
)

func (m Milliliters) Add(other Milliliters) Milliliters {
	return m + other
}

func (m Milliliters) Sub(other Milliliters) Milliliters {
	if other >= m {
		return 0
	}
	return m - other
}

// Scale multiplies the volume by a factor, rounding to the nearest
// milliliter and clamping at zero.
func (m Milliliters) Scale(factor float64) Milliliters {
	v := math.Round(float64(m) * factor)
	if v < 0 {
		return 0
	}
	return Milliliters(v)
}

// Format renders the volume converted into the given display unit.
// Stored values are always milliliters; conversion is display-only.
func (m Milliliters) Format(unit LiquidUnit) string {
	v := int(math.Round(unit.Convert(m)))
	if unit == Milliliter {
		return fmt.Sprintf("%d ml", v)
	}
	return fmt.Sprintf("%d oz.", v)
}

// Percent is a non-negative fraction where 1.0 means the daily goal is
// reached. Values above 1.0 are valid (goal exceeded).
type Percent float32

func (p Percent) Format() string {
	return fmt.Sprintf("%d%%", int(math.Round(float64(p)*100)))
}
