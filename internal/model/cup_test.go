package model

import "testing"

func TestDefaultCupsKeyedByUnit(t *testing.T) {
	metric := DefaultCups(Milliliter)
	wantMetric := []Milliliters{250, 330, 500, 1000, 2000}
	if len(metric) != len(wantMetric) {
		t.Fatalf("metric cups = %d, want %d", len(metric), len(wantMetric))
	}
	for i, c := range metric {
		if c.Milliliters != wantMetric[i] {
			t.Errorf("metric cup %d = %d, want %d", i, c.Milliliters, wantMetric[i])
		}
	}

	ounces := DefaultCups(USFluidOunce)
	wantOunces := []Milliliters{236, 355, 591, 946, 1183}
	for i, c := range ounces {
		if c.Milliliters != wantOunces[i] {
			t.Errorf("ounce cup %d = %d, want %d", i, c.Milliliters, wantOunces[i])
		}
	}
}

func TestDefaultSelectedCups(t *testing.T) {
	if got := DefaultSelectedCups(Milliliter); len(got) != 1 || got[0].Milliliters != 250 {
		t.Errorf("metric selected = %v", got)
	}
	if got := DefaultSelectedCups(UKFluidOunce); len(got) != 1 || got[0].Milliliters != 236 {
		t.Errorf("ounce selected = %v", got)
	}
}

func TestMergeCupsDeduplicatesAndSorts(t *testing.T) {
	defaults := []Cup{{250}, {500}}
	selected := []Cup{{500}, {100}}

	all := MergeCups(defaults, selected)

	want := []Milliliters{100, 250, 500}
	if len(all) != len(want) {
		t.Fatalf("merged = %v, want volumes %v", all, want)
	}
	for i, c := range all {
		if c.Milliliters != want[i] {
			t.Errorf("merged cup %d = %d, want %d", i, c.Milliliters, want[i])
		}
	}
}
