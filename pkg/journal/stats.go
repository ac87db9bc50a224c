package journal

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"
)

const (
	countEntriesStatement = `
	SELECT COUNT(*)
	FROM entries
	`

	sumWordCountsStatement = `
	SELECT COALESCE(SUM(word_count), 0)
	FROM entries
	`

	listLinkedTagNamesStatement = `
	SELECT t.name
	FROM entry_tags et
	JOIN tags t ON t.id = et.tag_id
	`
)

// LabelCount is one row of an ordered aggregate: a display label and the
// number of entries (or associations) carrying it.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StreakReport summarizes journaling regularity.
type StreakReport struct {
	Current    int `json:"current_streak"`
	Longest    int `json:"longest_streak"`
	MissedDays int `json:"missed_days"`
}

// TotalEntries returns the number of journal entries.
func TotalEntries(ctx context.Context, conn *sql.DB) (int, error) {
	var count int
	err := conn.QueryRowContext(ctx, countEntriesStatement).Scan(&count)
	return count, err
}

// TotalWords returns the sum of the stored word counts.
func TotalWords(ctx context.Context, conn *sql.DB) (int, error) {
	var total int
	err := conn.QueryRowContext(ctx, sumWordCountsStatement).Scan(&total)
	return total, err
}

// MoodCounts returns how often each primary mood occurs, merged
// case-insensitively, blank moods excluded, ordered by count descending then
// label ascending.
func MoodCounts(ctx context.Context, conn *sql.DB) ([]LabelCount, error) {
	entries, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return nil, err
	}

	labels := []string{}
	for _, e := range entries {
		labels = append(labels, strings.TrimSpace(e.PrimaryMood))
	}
	return countLabels(labels, false), nil
}

// CategoryCounts returns how often each category occurs, merged
// case-insensitively, ordered by count descending then label ascending.
// Blank categories count as "General".
func CategoryCounts(ctx context.Context, conn *sql.DB) ([]LabelCount, error) {
	entries, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return nil, err
	}

	labels := []string{}
	for _, e := range entries {
		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = DefaultCategory
		}
		labels = append(labels, category)
	}
	return countLabels(labels, false), nil
}

// TagCounts returns how many entries each tag is attached to, merged
// case-insensitively, ordered by count descending then label ascending.
func TagCounts(ctx context.Context, conn *sql.DB) ([]LabelCount, error) {
	rows, err := conn.QueryContext(ctx, listLinkedTagNamesStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		labels = append(labels, strings.TrimSpace(name))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return countLabels(labels, false), nil
}

// EntriesPerMonth buckets entries by YYYY-MM, most recent month first.
func EntriesPerMonth(ctx context.Context, conn *sql.DB) ([]LabelCount, error) {
	entries, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return nil, err
	}

	labels := []string{}
	for _, e := range entries {
		labels = append(labels, e.EntryDate.Format("2006-01"))
	}
	return countLabels(labels, true), nil
}

// countLabels merges labels case-insensitively, keeping first-seen casing as
// the display label and skipping blanks. Results are ordered by count
// descending then label ascending, or by label descending when byLabelDesc
// is set (the month bucketing order).
func countLabels(labels []string, byLabelDesc bool) []LabelCount {
	counts := map[string]int{}
	display := map[string]string{}
	for _, label := range labels {
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if _, ok := display[key]; !ok {
			display[key] = label
		}
		counts[key]++
	}

	result := []LabelCount{}
	for key, count := range counts {
		result = append(result, LabelCount{Label: display[key], Count: count})
	}

	if byLabelDesc {
		sort.Slice(result, func(i, j int) bool {
			return result[i].Label > result[j].Label
		})
	} else {
		sort.Slice(result, func(i, j int) bool {
			if result[i].Count != result[j].Count {
				return result[i].Count > result[j].Count
			}
			return strings.ToLower(result[i].Label) < strings.ToLower(result[j].Label)
		})
	}
	return result
}

// Streaks reports the current streak, longest streak, and missed days over
// the whole entry history, relative to today.
func Streaks(ctx context.Context, conn *sql.DB) (StreakReport, error) {
	entries, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return StreakReport{}, err
	}

	dates := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.EntryDate)
	}
	return computeStreaks(dates, Today()), nil
}

// computeStreaks expects distinct normalized dates sorted descending.
//
// The current streak walks backward from today, requiring each successive
// date to be exactly the expected day; a single missing day stops the scan.
// The one-day grace applies only to the most recent entry, so an unbroken
// run that ended yesterday still counts as a live streak today.
func computeStreaks(dates []time.Time, today time.Time) StreakReport {
	if len(dates) == 0 {
		return StreakReport{}
	}

	current := 0
	expected := today
	for i, date := range dates {
		if date.Equal(expected) {
			current++
			expected = expected.AddDate(0, 0, -1)
		} else if i == 0 && date.Equal(expected.AddDate(0, 0, -1)) {
			current++
			expected = date.AddDate(0, 0, -1)
		} else if date.Before(expected) {
			break
		}
	}

	ascending := make([]time.Time, len(dates))
	copy(ascending, dates)
	sort.Slice(ascending, func(i, j int) bool { return ascending[i].Before(ascending[j]) })

	longest := 0
	run := 1
	for i := 0; i+1 < len(ascending); i++ {
		if daysBetween(ascending[i], ascending[i+1]) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	// The reported longest streak never undercuts the current one.
	if current > longest {
		longest = current
	}

	missed := daysBetween(ascending[0], today) + 1 - len(dates)
	if missed < 0 {
		missed = 0
	}

	return StreakReport{Current: current, Longest: longest, MissedDays: missed}
}

// daysBetween counts whole days from a to b; both must be normalized dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
