package journal

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestFilterEntries(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	work := saveTestEntry(t, testDB, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), "standup", "meetings all day", "Stressed", "Work")
	hike := saveTestEntry(t, testDB, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), "hike", "up the hill", "Happy", "Outdoors")
	saveTestEntry(t, testDB, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC), "retro", "sprint retro", "Happy", "Work")

	if err := SetEntryTags(ctx, testDB, work.ID, []string{"office"}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}
	if err := SetEntryTags(ctx, testDB, hike.ID, []string{"nature", "exercise"}); err != nil {
		t.Fatalf("SetEntryTags failed: %v", err)
	}

	// No criteria returns everything, newest first.
	all, err := FilterEntries(ctx, testDB, "", "", "")
	if err != nil {
		t.Fatalf("FilterEntries with no criteria failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected all 3 entries, got %d", len(all))
	}
	if all[0].Title != "retro" || all[2].Title != "standup" {
		t.Errorf("Expected newest-first order, got %q first and %q last", all[0].Title, all[2].Title)
	}

	// Category matches exactly, ignoring case.
	workOnly, err := FilterEntries(ctx, testDB, "work", "", "")
	if err != nil {
		t.Fatalf("FilterEntries by category failed: %v", err)
	}
	if len(workOnly) != 2 {
		t.Errorf("Expected 2 Work entries, got %d", len(workOnly))
	}

	// Criteria compose as AND.
	happyWork, err := FilterEntries(ctx, testDB, "Work", "happy", "")
	if err != nil {
		t.Fatalf("FilterEntries by category and mood failed: %v", err)
	}
	if len(happyWork) != 1 || happyWork[0].Title != "retro" {
		t.Errorf("Expected only 'retro' for Work+Happy, got %+v", happyWork)
	}

	// Tag filter resolves by case-insensitive name.
	tagged, err := FilterEntries(ctx, testDB, "", "", "NATURE")
	if err != nil {
		t.Fatalf("FilterEntries by tag failed: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Title != "hike" {
		t.Errorf("Expected only 'hike' for tag nature, got %+v", tagged)
	}

	// An unknown tag short-circuits to an empty result.
	unknown, err := FilterEntries(ctx, testDB, "", "", "no-such-tag")
	if err != nil {
		t.Fatalf("FilterEntries with unknown tag failed: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("Expected empty result for unknown tag, got %d entries", len(unknown))
	}
}

func TestListCategoriesAndMoods(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	saveTestEntry(t, testDB, time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), "a", "x", "Happy", "Work")
	saveTestEntry(t, testDB, time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC), "b", "x", "happy", "WORK")
	saveTestEntry(t, testDB, time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC), "c", "x", "", "")

	categories, err := ListCategories(ctx, testDB)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if !reflect.DeepEqual(categories, []string{"General", "Work"}) {
		t.Errorf("Expected [General Work], got %v", categories)
	}

	moods, err := ListMoods(ctx, testDB)
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if !reflect.DeepEqual(moods, []string{"Happy"}) {
		t.Errorf("Expected blank moods excluded and case merged, got %v", moods)
	}
}
