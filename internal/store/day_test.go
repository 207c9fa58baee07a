package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/hydroapp/hydro/internal/database"
	"github.com/hydroapp/hydro/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testDate(day int) model.Date {
	return model.Date{Year: 2024, Month: time.June, Day: day}
}

func TestDayStoreSetAndGet(t *testing.T) {
	ds := NewDayStore(setupTestDB(t))

	day := model.NewDay(testDate(10), 2000)
	day.Hydration = append(day.Hydration, model.NewHydration(300, model.NewTimeOfDay(9, 15, 0)))

	if err := ds.SetDay(day); err != nil {
		t.Fatalf("set day: %v", err)
	}

	got, err := ds.Day(testDate(10))
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if got == nil {
		t.Fatal("expected day, got nil")
	}
	if got.ID != day.ID {
		t.Errorf("id = %q, want %q", got.ID, day.ID)
	}
	if got.Goal != 2000 {
		t.Errorf("goal = %d, want 2000", got.Goal)
	}
	if len(got.Hydration) != 1 || got.Hydration[0].Milliliters != 300 {
		t.Errorf("hydration = %+v", got.Hydration)
	}
}

func TestDayStoreGetMissing(t *testing.T) {
	ds := NewDayStore(setupTestDB(t))

	got, err := ds.Day(testDate(1))
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing date, got %+v", got)
	}
}

func TestDayStoreUpsertKeepsIdentity(t *testing.T) {
	ds := NewDayStore(setupTestDB(t))

	original := model.NewDay(testDate(10), 2000)
	if err := ds.SetDay(original); err != nil {
		t.Fatalf("set day: %v", err)
	}

	// Write the same date again with a fresh struct; the stored row keeps
	// the original identifier and there is still exactly one record.
	rewrite := model.NewDay(testDate(10), 2500)
	if err := ds.SetDay(rewrite); err != nil {
		t.Fatalf("upsert day: %v", err)
	}

	got, err := ds.Day(testDate(10))
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if got.ID != original.ID {
		t.Errorf("id = %q, want original %q", got.ID, original.ID)
	}
	if got.Goal != 2500 {
		t.Errorf("goal = %d, want 2500", got.Goal)
	}

	days, err := ds.Days(testDate(11), 10)
	if err != nil {
		t.Fatalf("list days: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected one record per date, got %d", len(days))
	}
}

func TestDayStorePagination(t *testing.T) {
	ds := NewDayStore(setupTestDB(t))

	for d := 1; d <= 9; d++ {
		if err := ds.SetDay(model.NewDay(testDate(d), 2000)); err != nil {
			t.Fatalf("set day %d: %v", d, err)
		}
	}

	page, err := ds.Days(testDate(8), 3)
	if err != nil {
		t.Fatalf("list days: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("page size = %d, want 3", len(page))
	}
	// Strictly before the cursor, descending.
	want := []int{7, 6, 5}
	for i, d := range page {
		if d.Date.Day != want[i] {
			t.Errorf("page[%d] = %s, want day %d", i, d.Date, want[i])
		}
	}
}

func TestDayStoreDeleteAndClear(t *testing.T) {
	ds := NewDayStore(setupTestDB(t))

	for d := 1; d <= 3; d++ {
		if err := ds.SetDay(model.NewDay(testDate(d), 2000)); err != nil {
			t.Fatalf("set day: %v", err)
		}
	}

	if err := ds.Delete(testDate(2)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := ds.Day(testDate(2)); got != nil {
		t.Fatal("deleted day still present")
	}

	if err := ds.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for d := 1; d <= 3; d++ {
		if got, _ := ds.Day(testDate(d)); got != nil {
			t.Fatalf("day %d survived clear", d)
		}
	}
}

func TestDayStoreNotifiesSubscriber(t *testing.T) {
	ds := NewDayStore(setupTestDB(t))

	var calls int
	ds.Subscribe(func() { calls++ })

	if err := ds.SetDay(model.NewDay(testDate(1), 2000)); err != nil {
		t.Fatalf("set day: %v", err)
	}
	if err := ds.Delete(testDate(1)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if calls != 2 {
		t.Errorf("subscriber calls = %d, want 2", calls)
	}
}
