package journal

import (
	"strings"
	"time"
)

// DateLayout is the storage and export format of the per-day uniqueness key.
const DateLayout = "2006-01-02"

// Entry represents one journal entry. At most one entry exists per calendar
// day; EntryDate is always normalized to its date-only value.
type Entry struct {
	ID             int64     `json:"id"`
	EntryDate      time.Time `json:"entry_date"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	PrimaryMood    string    `json:"primary_mood"`
	SecondaryMood1 string    `json:"secondary_mood1,omitempty"`
	SecondaryMood2 string    `json:"secondary_mood2,omitempty"`
	Category       string    `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	WordCount      int       `json:"word_count"`
}

// Tag represents a label that can be attached to entries. Tag names are
// case-insensitively unique.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// EntryTag is the association row linking one entry to one tag.
type EntryTag struct {
	ID      int64 `json:"id"`
	EntryID int64 `json:"entry_id"`
	TagID   int64 `json:"tag_id"`
}

// DefaultCategory is substituted for blank entry categories and tag names.
const DefaultCategory = "General"

// NormalizeDate truncates the time-of-day component, keeping the calendar
// day. Normalized dates are the uniqueness key for entries.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day, normalized.
func Today() time.Time {
	return NormalizeDate(time.Now())
}

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// timeFromEpoch converts a fractional unix timestamp, as stored by SQLite,
// into a time.Time.
func timeFromEpoch(f float64) time.Time {
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9))
}

// epochFromTime is the inverse of timeFromEpoch.
func epochFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
