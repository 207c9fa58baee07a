package model

import "sort"

// Cup is a named pour volume offered as a one-tap add. Ordered by volume.
type Cup struct {
	Milliliters Milliliters `json:"milliliters"`
}

// DefaultSelectedCups is the cup preselected for logging when the user
// has not picked any. Keyed by the persisted liquid unit, not locale.
func DefaultSelectedCups(unit LiquidUnit) []Cup {
	switch unit {
	case USFluidOunce, UKFluidOunce:
		return []Cup{{Milliliters: 236}} // 8 oz
	default:
		return []Cup{{Milliliters: 250}}
	}
}

// DefaultCups is the full set of suggested cups for a unit, sorted by
// volume.
func DefaultCups(unit LiquidUnit) []Cup {
	cups := DefaultSelectedCups(unit)
	switch unit {
	case USFluidOunce, UKFluidOunce:
		cups = append(cups,
			Cup{Milliliters: 355},  // 12 oz
			Cup{Milliliters: 591},  // 20 oz
			Cup{Milliliters: 946},  // 32 oz
			Cup{Milliliters: 1183}, // 40 oz
		)
	default:
		cups = append(cups,
			Cup{Milliliters: 330},
			Cup{Milliliters: 500},
			Cup{Milliliters: 1000},
			Cup{Milliliters: 2000},
		)
	}
	SortCups(cups)
	return cups
}

func SortCups(cups []Cup) {
	sort.Slice(cups, func(i, j int) bool {
		return cups[i].Milliliters < cups[j].Milliliters
	})
}

// MergeCups combines the default and selected sets, deduplicated and
// sorted, for display.
func MergeCups(defaults, selected []Cup) []Cup {
	seen := make(map[Milliliters]struct{}, len(defaults)+len(selected))
	var all []Cup
	for _, c := range append(append([]Cup{}, defaults...), selected...) {
		if _, ok := seen[c.Milliliters]; ok {
			continue
		}
		seen[c.Milliliters] = struct{}{}
		all = append(all, c)
	}
	SortCups(all)
	return all
}
