package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const (
	entryColumns = `id, entry_date, title, content, primary_mood, secondary_mood1, secondary_mood2, category, created_at, updated_at, word_count`

	getEntryByDateStatement = `
	SELECT ` + entryColumns + `
	FROM entries
	WHERE entry_date = ?
	`

	listEntriesNewestFirstStatement = `
	SELECT ` + entryColumns + `
	FROM entries
	ORDER BY entry_date DESC
	`

	listEntriesOldestFirstStatement = `
	SELECT ` + entryColumns + `
	FROM entries
	ORDER BY entry_date ASC
	`

	insertEntryStatement = `
	INSERT INTO entries (entry_date, title, content, primary_mood, secondary_mood1, secondary_mood2, category, created_at, updated_at, word_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	updateEntryStatement = `
	UPDATE entries
	SET title = ?, content = ?, primary_mood = ?, secondary_mood1 = ?, secondary_mood2 = ?, category = ?, updated_at = ?, word_count = ?
	WHERE id = ?
	`

	deleteEntryStatement = `
	DELETE FROM entries
	WHERE id = ?
	`

	deleteEntryLinksStatement = `
	DELETE FROM entry_tags
	WHERE entry_id = ?
	`
)

// queryer is satisfied by both *sql.DB and *sql.Tx, so the statement helpers
// can run inside or outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry            Entry
		dateStr          string
		mood1, mood2     sql.NullString
		created, updated float64
	)

	err := row.Scan(
		&entry.ID,
		&dateStr,
		&entry.Title,
		&entry.Content,
		&entry.PrimaryMood,
		&mood1,
		&mood2,
		&entry.Category,
		&created,
		&updated,
		&entry.WordCount,
	)
	if err != nil {
		return Entry{}, err
	}

	entry.EntryDate, err = time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse stored entry date '%s': %w", dateStr, err)
	}
	entry.SecondaryMood1 = mood1.String
	entry.SecondaryMood2 = mood2.String
	entry.CreatedAt = timeFromEpoch(created)
	entry.UpdatedAt = timeFromEpoch(updated)

	return entry, nil
}

func getEntryByDate(ctx context.Context, q queryer, date time.Time) (*Entry, error) {
	key := NormalizeDate(date).Format(DateLayout)

	entry, err := scanEntry(q.QueryRowContext(ctx, getEntryByDateStatement, key))
	if err != nil {
		if err == sql.ErrNoRows {
			// Absence is a normal outcome, not an error.
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

// GetEntryByDate returns the entry for the given calendar day, or nil if no
// entry exists for that day. The time-of-day component of date is ignored.
func GetEntryByDate(ctx context.Context, conn *sql.DB, date time.Time) (*Entry, error) {
	return getEntryByDate(ctx, conn, date)
}

func upsertEntry(ctx context.Context, q queryer, entry Entry) (Entry, error) {
	entry.EntryDate = NormalizeDate(entry.EntryDate)
	entry.WordCount = CountWords(entry.Content)
	if strings.TrimSpace(entry.Category) == "" {
		entry.Category = DefaultCategory
	}

	existing, err := getEntryByDate(ctx, q, entry.EntryDate)
	if err != nil {
		return Entry{}, err
	}

	now := time.Now()
	if existing == nil {
		entry.CreatedAt = now
		entry.UpdatedAt = now

		res, err := q.ExecContext(
			ctx,
			insertEntryStatement,
			entry.EntryDate.Format(DateLayout),
			entry.Title,
			entry.Content,
			entry.PrimaryMood,
			nullableMood(entry.SecondaryMood1),
			nullableMood(entry.SecondaryMood2),
			entry.Category,
			epochFromTime(entry.CreatedAt),
			epochFromTime(entry.UpdatedAt),
			entry.WordCount,
		)
		if err != nil {
			return Entry{}, err
		}

		entry.ID, err = res.LastInsertId()
		if err != nil {
			return Entry{}, err
		}
		return entry, nil
	}

	// Identity and creation timestamp survive every rewrite of the day.
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = now

	_, err = q.ExecContext(
		ctx,
		updateEntryStatement,
		entry.Title,
		entry.Content,
		entry.PrimaryMood,
		nullableMood(entry.SecondaryMood1),
		nullableMood(entry.SecondaryMood2),
		entry.Category,
		epochFromTime(entry.UpdatedAt),
		entry.WordCount,
		entry.ID,
	)
	if err != nil {
		return Entry{}, err
	}

	return entry, nil
}

func nullableMood(mood string) any {
	if mood == "" {
		return nil
	}
	return mood
}

// UpsertEntry saves the entry for its calendar day: an insert if the day has
// no entry yet, otherwise an in-place update preserving identity and creation
// timestamp. The word count is always recomputed from the content; a blank
// category becomes "General". The persisted entry is returned.
func UpsertEntry(ctx context.Context, conn *sql.DB, entry Entry) (Entry, error) {
	return upsertEntry(ctx, conn, entry)
}

// DeleteEntryByDate removes the entry for the given day along with all of its
// tag associations, returning the number of entries deleted (0 or 1). The
// cascade runs in a single transaction.
func DeleteEntryByDate(ctx context.Context, conn *sql.DB, date time.Time) (int64, error) {
	entry, err := getEntryByDate(ctx, conn, date)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteEntryLinksStatement, entry.ID); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, deleteEntryStatement, entry.ID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return 1, nil
}

func listEntries(ctx context.Context, q queryer, statement string) ([]Entry, error) {
	rows, err := q.QueryContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ListEntriesNewestFirst returns every entry, ordered by entry date
// descending.
func ListEntriesNewestFirst(ctx context.Context, conn *sql.DB) ([]Entry, error) {
	return listEntries(ctx, conn, listEntriesNewestFirstStatement)
}

// GetEntriesPage returns one page of the newest-first entry list. Page and
// pageSize values below 1 are clamped to 1 rather than rejected.
func GetEntriesPage(ctx context.Context, conn *sql.DB, page, pageSize int) ([]Entry, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	all, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * pageSize
	if start >= len(all) {
		return []Entry{}, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// SearchEntries returns the entries whose title or content contains the query
// as a case-insensitive substring, newest first. A blank query yields an
// empty result, which is distinct from "no filter".
func SearchEntries(ctx context.Context, conn *sql.DB, query string) ([]Entry, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []Entry{}, nil
	}

	all, err := ListEntriesNewestFirst(ctx, conn)
	if err != nil {
		return nil, err
	}

	matched := []Entry{}
	for _, entry := range all {
		if strings.Contains(strings.ToLower(entry.Title), needle) ||
			strings.Contains(strings.ToLower(entry.Content), needle) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}
