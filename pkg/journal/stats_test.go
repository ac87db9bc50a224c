package journal

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestTotals(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()

	total, err := TotalEntries(ctx, testDB)
	if err != nil {
		t.Fatalf("TotalEntries failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected 0 entries in empty journal, got %d", total)
	}
	words, err := TotalWords(ctx, testDB)
	if err != nil {
		t.Fatalf("TotalWords failed: %v", err)
	}
	if words != 0 {
		t.Errorf("Expected 0 words in empty journal, got %d", words)
	}

	saveTestEntry(t, testDB, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "a", "one two three", "", "")
	saveTestEntry(t, testDB, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), "b", "four five", "", "")

	total, err = TotalEntries(ctx, testDB)
	if err != nil {
		t.Fatalf("TotalEntries failed: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 entries, got %d", total)
	}

	words, err = TotalWords(ctx, testDB)
	if err != nil {
		t.Fatalf("TotalWords failed: %v", err)
	}
	if words != 5 {
		t.Errorf("Expected 5 total words, got %d", words)
	}
}

func TestMoodCounts(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	saveTestEntry(t, testDB, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "", "x", "happy", "")
	saveTestEntry(t, testDB, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), "", "x", "Happy", "")
	saveTestEntry(t, testDB, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), "", "x", "Sad", "")
	saveTestEntry(t, testDB, time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC), "", "x", "", "")

	counts, err := MoodCounts(ctx, testDB)
	if err != nil {
		t.Fatalf("MoodCounts failed: %v", err)
	}

	// "happy" and "Happy" merge; blank moods are excluded; first-seen casing
	// is the display label. Count descending, label ascending on ties.
	want := []LabelCount{{Label: "happy", Count: 2}, {Label: "Sad", Count: 1}}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Expected %v, got %v", want, counts)
	}
}

func TestCategoryCounts(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	saveTestEntry(t, testDB, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "", "x", "", "Work")
	saveTestEntry(t, testDB, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), "", "x", "", "")
	saveTestEntry(t, testDB, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), "", "x", "", "work")

	counts, err := CategoryCounts(ctx, testDB)
	if err != nil {
		t.Fatalf("CategoryCounts failed: %v", err)
	}

	want := []LabelCount{{Label: "Work", Count: 2}, {Label: "General", Count: 1}}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Expected %v, got %v", want, counts)
	}
}

func TestTagCounts(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	one := saveTestEntry(t, testDB, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "", "x", "", "")
	two := saveTestEntry(t, testDB, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), "", "x", "", "")

	if err := SetEntryTags(ctx, testDB, one.ID, []string{"shared", "solo"}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}
	if err := SetEntryTags(ctx, testDB, two.ID, []string{"SHARED"}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}

	counts, err := TagCounts(ctx, testDB)
	if err != nil {
		t.Fatalf("TagCounts failed: %v", err)
	}

	want := []LabelCount{{Label: "shared", Count: 2}, {Label: "solo", Count: 1}}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Expected %v, got %v", want, counts)
	}
}

func TestEntriesPerMonth(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	saveTestEntry(t, testDB, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "", "x", "", "")
	saveTestEntry(t, testDB, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), "", "x", "", "")
	saveTestEntry(t, testDB, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "", "x", "", "")
	saveTestEntry(t, testDB, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "", "x", "", "")

	months, err := EntriesPerMonth(ctx, testDB)
	if err != nil {
		t.Fatalf("EntriesPerMonth failed: %v", err)
	}

	want := []LabelCount{
		{Label: "2025-03", Count: 1},
		{Label: "2025-01", Count: 2},
		{Label: "2024-12", Count: 1},
	}
	if !reflect.DeepEqual(months, want) {
		t.Errorf("Expected %v, got %v", want, months)
	}
}

func day(offset int, today time.Time) time.Time {
	return today.AddDate(0, 0, offset)
}

func TestComputeStreaks(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []int // days relative to today, will be sorted descending
		want    StreakReport
	}{
		{
			name:    "empty history",
			offsets: nil,
			want:    StreakReport{},
		},
		{
			name:    "three consecutive days ending today",
			offsets: []int{0, -1, -2},
			want:    StreakReport{Current: 3, Longest: 3, MissedDays: 0},
		},
		{
			name:    "gap breaks the current streak",
			offsets: []int{0, -2},
			want:    StreakReport{Current: 1, Longest: 1, MissedDays: 1},
		},
		{
			name:    "streak ending yesterday still counts",
			offsets: []int{-1, -2, -3},
			// today itself has no entry yet, so it counts as missed
			want: StreakReport{Current: 3, Longest: 3, MissedDays: 1},
		},
		{
			name:    "older run longer than current",
			offsets: []int{0, -5, -6, -7, -8},
			want:    StreakReport{Current: 1, Longest: 4, MissedDays: 4},
		},
		{
			name:    "single old entry",
			offsets: []int{-9},
			want:    StreakReport{Current: 0, Longest: 1, MissedDays: 9},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dates := make([]time.Time, 0, len(tc.offsets))
			for _, off := range tc.offsets {
				dates = append(dates, day(off, today))
			}
			// computeStreaks expects descending order.
			for i := 0; i < len(dates); i++ {
				for j := i + 1; j < len(dates); j++ {
					if dates[j].After(dates[i]) {
						dates[i], dates[j] = dates[j], dates[i]
					}
				}
			}

			got := computeStreaks(dates, today)
			if got != tc.want {
				t.Errorf("computeStreaks(%v) = %+v, want %+v", tc.offsets, got, tc.want)
			}
		})
	}
}

func TestStreaksFromDatabase(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	today := Today()
	saveTestEntry(t, testDB, today, "today", "x", "", "")
	saveTestEntry(t, testDB, today.AddDate(0, 0, -1), "yesterday", "x", "", "")
	saveTestEntry(t, testDB, today.AddDate(0, 0, -2), "before", "x", "", "")

	report, err := Streaks(ctx, testDB)
	if err != nil {
		t.Fatalf("Streaks failed: %v", err)
	}
	want := StreakReport{Current: 3, Longest: 3, MissedDays: 0}
	if report != want {
		t.Errorf("Expected %+v, got %+v", want, report)
	}
}

func TestStreaksEmptyJournal(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	report, err := Streaks(context.Background(), testDB)
	if err != nil {
		t.Fatalf("Streaks failed: %v", err)
	}
	if report != (StreakReport{}) {
		t.Errorf("Expected zero report for empty journal, got %+v", report)
	}
}
