package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

const (
	findTagByNameStatement = `
	SELECT id, name, created_at
	FROM tags
	WHERE name = ? COLLATE NOCASE
	LIMIT 1
	`

	insertTagStatement = `
	INSERT INTO tags (name)
	VALUES (?)
	`

	insertEntryTagStatement = `
	INSERT INTO entry_tags (entry_id, tag_id)
	VALUES (?, ?)
	`

	listEntryTagNamesStatement = `
	SELECT t.name
	FROM entry_tags et
	JOIN tags t ON t.id = et.tag_id
	WHERE et.entry_id = ?
	`

	listAllTagNamesStatement = `
	SELECT name
	FROM tags
	`
)

func findTagByName(ctx context.Context, q queryer, name string) (*Tag, error) {
	var (
		tag     Tag
		created float64
	)
	err := q.QueryRowContext(ctx, findTagByNameStatement, name).Scan(&tag.ID, &tag.Name, &created)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up tag '%s': %w", name, err)
	}
	tag.CreatedAt = timeFromEpoch(created)
	return &tag, nil
}

func getOrCreateTag(ctx context.Context, q queryer, name string) (Tag, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		clean = DefaultCategory
	}

	existing, err := findTagByName(ctx, q, clean)
	if err != nil {
		return Tag{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	res, err := q.ExecContext(ctx, insertTagStatement, clean)
	if err != nil {
		return Tag{}, fmt.Errorf("failed to create tag '%s': %w", clean, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Tag{}, err
	}

	return Tag{ID: id, Name: clean}, nil
}

// GetOrCreateTag resolves a tag by case-insensitive name, creating it if
// absent. The name is trimmed; a blank name becomes "General".
func GetOrCreateTag(ctx context.Context, conn *sql.DB, name string) (Tag, error) {
	return getOrCreateTag(ctx, conn, name)
}

// SetEntryTags replaces the entry's tag set with the given names. Names are
// trimmed, blank names dropped, and duplicates merged case-insensitively;
// missing tags are created on the fly. The replacement runs in a single
// transaction.
func SetEntryTags(ctx context.Context, conn *sql.DB, entryID int64, names []string) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteEntryLinksStatement, entryID); err != nil {
		return fmt.Errorf("failed to clear tags for entry %d: %w", entryID, err)
	}

	seen := map[string]bool{}
	for _, name := range names {
		clean := strings.TrimSpace(name)
		if clean == "" {
			continue
		}
		key := strings.ToLower(clean)
		if seen[key] {
			continue
		}
		seen[key] = true

		tag, err := getOrCreateTag(ctx, tx, clean)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertEntryTagStatement, entryID, tag.ID); err != nil {
			return fmt.Errorf("failed to link tag '%s' to entry %d: %w", tag.Name, entryID, err)
		}
	}

	return tx.Commit()
}

// GetEntryTags returns the names of the tags attached to the entry,
// case-insensitively de-duplicated and alphabetically sorted. An entry with
// no tags yields an empty slice.
func GetEntryTags(ctx context.Context, conn *sql.DB, entryID int64) ([]string, error) {
	rows, err := conn.QueryContext(ctx, listEntryTagNamesStatement, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDistinctNames(rows)
}

// ListAllTagNames returns every known tag name, case-insensitively distinct
// and alphabetically sorted.
func ListAllTagNames(ctx context.Context, conn *sql.DB) ([]string, error) {
	rows, err := conn.QueryContext(ctx, listAllTagNamesStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDistinctNames(rows)
}

// collectDistinctNames drains a single-column name result set into a sorted,
// case-insensitively distinct slice. First-seen casing wins.
func collectDistinctNames(rows *sql.Rows) ([]string, error) {
	seen := map[string]bool{}
	names := []string{}

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}
