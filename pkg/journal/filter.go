package journal

import (
	"context"
	"database/sql"
	"sort"
	"strings"
)

const (
	listTagEntryIDsStatement = `
	SELECT entry_id
	FROM entry_tags
	WHERE tag_id = ?
	`
)

// FilterEntries narrows the full entry set by the given criteria, newest
// first. Each criterion is optional (blank means "no filter") and criteria
// compose as logical AND. Category and mood match exactly, ignoring case; a
// tag that doesn't exist yields an empty result.
func FilterEntries(ctx context.Context, conn *sql.DB, category, mood, tag string) ([]Entry, error) {
	entries, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(category) != "" {
		entries = keepEntries(entries, func(e Entry) bool {
			return strings.EqualFold(e.Category, category)
		})
	}

	if strings.TrimSpace(mood) != "" {
		entries = keepEntries(entries, func(e Entry) bool {
			return strings.EqualFold(e.PrimaryMood, mood)
		})
	}

	if strings.TrimSpace(tag) != "" {
		tagged, err := entryIDsForTag(ctx, conn, tag)
		if err != nil {
			return nil, err
		}
		if tagged == nil {
			return []Entry{}, nil
		}
		entries = keepEntries(entries, func(e Entry) bool {
			return tagged[e.ID]
		})
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func keepEntries(entries []Entry, match func(Entry) bool) []Entry {
	kept := []Entry{}
	for _, e := range entries {
		if match(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// entryIDsForTag resolves a tag by case-insensitive name and collects the ids
// of the entries linked to it. A nil map means the tag does not exist.
func entryIDsForTag(ctx context.Context, conn *sql.DB, name string) (map[int64]bool, error) {
	tag, err := findTagByName(ctx, conn, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, nil
	}

	rows, err := conn.QueryContext(ctx, listTagEntryIDsStatement, tag.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListCategories returns the distinct categories in use, case-insensitively
// merged and alphabetically sorted. Blank categories count as "General".
func ListCategories(ctx context.Context, conn *sql.DB) ([]string, error) {
	entries, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, e := range entries {
		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = DefaultCategory
		}
		key := strings.ToLower(category)
		if seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, category)
	}

	sort.Strings(categories)
	return categories, nil
}

// ListMoods returns the distinct primary moods in use, case-insensitively
// merged, blank moods excluded, alphabetically sorted.
func ListMoods(ctx context.Context, conn *sql.DB) ([]string, error) {
	entries, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	moods := []string{}
	for _, e := range entries {
		mood := strings.TrimSpace(e.PrimaryMood)
		if mood == "" {
			continue
		}
		key := strings.ToLower(mood)
		if seen[key] {
			continue
		}
		seen[key] = true
		moods = append(moods, mood)
	}

	sort.Strings(moods)
	return moods, nil
}
