package mcp

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/daybook-app/daybook/pkg/journal"
)

// parseDateArg interprets the optional "date" argument; an absent or blank
// value means today.
func parseDateArg(args map[string]any) (time.Time, error) {
	raw, _ := args["date"].(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return journal.Today(), nil
	}
	date, err := time.ParseInLocation(journal.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", raw)
	}
	return date, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Daybook MCP server is alive."),
	)
	s.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong_daybook"), nil
	})
}

// RegisterSaveEntryTool registers save_entry, the upsert-by-date operation.
func RegisterSaveEntryTool(s *server.MCPServer, db *sql.DB) {
	saveEntry := mcp.NewTool("save_entry",
		mcp.WithDescription("Saves the journal entry for a calendar day. Creates the entry if the day is empty, otherwise rewrites it in place. Word count is computed from the content."),
		mcp.WithString("date", mcp.Description("Day to save, YYYY-MM-DD. Defaults to today.")),
		mcp.WithString("title", mcp.Description("Entry title.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Entry text.")),
		mcp.WithString("primary_mood", mcp.Description("Primary mood label.")),
		mcp.WithString("secondary_mood1", mcp.Description("Optional secondary mood.")),
		mcp.WithString("secondary_mood2", mcp.Description("Optional secondary mood.")),
		mcp.WithString("category", mcp.Description("Category; blank becomes 'General'.")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tag names; when present, replaces the entry's tag set.")),
	)
	s.AddTool(saveEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments

		content, contentOk := args["content"].(string)
		if !contentOk {
			return mcp.NewToolResultError("'content' parameter is required and must be a string."), nil
		}
		date, err := parseDateArg(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		title, _ := args["title"].(string)
		primaryMood, _ := args["primary_mood"].(string)
		mood1, _ := args["secondary_mood1"].(string)
		mood2, _ := args["secondary_mood2"].(string)
		category, _ := args["category"].(string)

		entry, err := journal.UpsertEntry(ctx, db, journal.Entry{
			EntryDate:      date,
			Title:          title,
			Content:        content,
			PrimaryMood:    primaryMood,
			SecondaryMood1: mood1,
			SecondaryMood2: mood2,
			Category:       category,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save entry: %v", err)), nil
		}

		if rawTags, ok := args["tags"].(string); ok && strings.TrimSpace(rawTags) != "" {
			names := strings.Split(rawTags, ",")
			if err := journal.SetEntryTags(ctx, db, entry.ID, names); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Entry saved but tagging failed: %v", err)), nil
			}
		}

		return jsonResult(entry)
	})
}

// RegisterGetEntryTool registers get_entry.
func RegisterGetEntryTool(s *server.MCPServer, db *sql.DB) {
	getEntry := mcp.NewTool("get_entry",
		mcp.WithDescription("Returns the journal entry for a calendar day, with its tags, or null if the day has no entry."),
		mcp.WithString("date", mcp.Description("Day to fetch, YYYY-MM-DD. Defaults to today.")),
	)
	s.AddTool(getEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := journal.GetEntryByDate(ctx, db, date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get entry: %v", err)), nil
		}
		if entry == nil {
			return mcp.NewToolResultText("null"), nil
		}

		tags, err := journal.GetEntryTags(ctx, db, entry.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get entry tags: %v", err)), nil
		}

		return jsonResult(map[string]any{"entry": entry, "tags": tags})
	})
}

// RegisterDeleteEntryTool registers delete_entry.
func RegisterDeleteEntryTool(s *server.MCPServer, db *sql.DB) {
	deleteEntry := mcp.NewTool("delete_entry",
		mcp.WithDescription("Deletes the entry for a calendar day along with its tag associations. Returns the number of entries deleted (0 or 1)."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day to delete, YYYY-MM-DD.")),
	)
	s.AddTool(deleteEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		count, err := journal.DeleteEntryByDate(ctx, db, date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry: %v", err)), nil
		}
		return jsonResult(map[string]int64{"deleted": count})
	})
}

// RegisterListEntriesTool registers list_entries with optional paging.
func RegisterListEntriesTool(s *server.MCPServer, db *sql.DB) {
	listEntries := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists journal entries newest first. Page and page_size below 1 are clamped to 1."),
		mcp.WithNumber("page", mcp.Description("1-based page number. Omit for the full list.")),
		mcp.WithNumber("page_size", mcp.Description("Entries per page.")),
	)
	s.AddTool(listEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments

		var (
			entries []journal.Entry
			err     error
		)
		if rawPage, paged := args["page"].(float64); paged {
			pageSize := 10.0
			if ps, ok := args["page_size"].(float64); ok {
				pageSize = ps
			}
			entries, err = journal.GetEntriesPage(ctx, db, int(rawPage), int(pageSize))
		} else {
			entries, err = journal.ListEntriesNewestFirst(ctx, db)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}
		if entries == nil {
			entries = []journal.Entry{}
		}
		return jsonResult(entries)
	})
}

// RegisterSearchEntriesTool registers search_entries.
func RegisterSearchEntriesTool(s *server.MCPServer, db *sql.DB) {
	searchEntries := mcp.NewTool("search_entries",
		mcp.WithDescription("Case-insensitive substring search against entry titles and content, newest first. A blank query returns no entries."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to search for.")),
	)
	s.AddTool(searchEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, _ := request.Params.Arguments["query"].(string)

		entries, err := journal.SearchEntries(ctx, db, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search entries: %v", err)), nil
		}
		return jsonResult(entries)
	})
}

// RegisterFilterEntriesTool registers filter_entries.
func RegisterFilterEntriesTool(s *server.MCPServer, db *sql.DB) {
	filterEntries := mcp.NewTool("filter_entries",
		mcp.WithDescription("Filters entries by category, mood, and/or tag (all optional, combined with AND), newest first. An unknown tag yields no entries."),
		mcp.WithString("category", mcp.Description("Exact category, case-insensitive.")),
		mcp.WithString("mood", mcp.Description("Exact primary mood, case-insensitive.")),
		mcp.WithString("tag", mcp.Description("Exact tag name, case-insensitive.")),
	)
	s.AddTool(filterEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments
		category, _ := args["category"].(string)
		mood, _ := args["mood"].(string)
		tag, _ := args["tag"].(string)

		entries, err := journal.FilterEntries(ctx, db, category, mood, tag)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to filter entries: %v", err)), nil
		}
		return jsonResult(entries)
	})
}

// RegisterSetEntryTagsTool registers set_entry_tags.
func RegisterSetEntryTagsTool(s *server.MCPServer, db *sql.DB) {
	setTags := mcp.NewTool("set_entry_tags",
		mcp.WithDescription("Replaces the tag set of the entry for a calendar day. Names are trimmed and de-duplicated case-insensitively; missing tags are created."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day whose entry to retag, YYYY-MM-DD.")),
		mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tag names. An empty string clears all tags.")),
	)
	s.AddTool(setTags, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments
		date, err := parseDateArg(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := journal.GetEntryByDate(ctx, db, date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve entry: %v", err)), nil
		}
		if entry == nil {
			return mcp.NewToolResultError("No entry exists for that day."), nil
		}

		rawTags, _ := args["tags"].(string)
		var names []string
		if strings.TrimSpace(rawTags) != "" {
			names = strings.Split(rawTags, ",")
		}
		if err := journal.SetEntryTags(ctx, db, entry.ID, names); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to set tags: %v", err)), nil
		}

		tags, err := journal.GetEntryTags(ctx, db, entry.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Tags set but readback failed: %v", err)), nil
		}
		return jsonResult(tags)
	})
}

// RegisterGetEntryTagsTool registers get_entry_tags.
func RegisterGetEntryTagsTool(s *server.MCPServer, db *sql.DB) {
	getTags := mcp.NewTool("get_entry_tags",
		mcp.WithDescription("Returns the sorted tag names of the entry for a calendar day."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day whose entry to inspect, YYYY-MM-DD.")),
	)
	s.AddTool(getTags, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := journal.GetEntryByDate(ctx, db, date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve entry: %v", err)), nil
		}
		if entry == nil {
			return jsonResult([]string{})
		}

		tags, err := journal.GetEntryTags(ctx, db, entry.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get tags: %v", err)), nil
		}
		return jsonResult(tags)
	})
}

// RegisterListTagsTool registers list_tags.
func RegisterListTagsTool(s *server.MCPServer, db *sql.DB) {
	listTags := mcp.NewTool("list_tags",
		mcp.WithDescription("Lists every known tag name, sorted, case-insensitively distinct."),
	)
	s.AddTool(listTags, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := journal.ListAllTagNames(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
		}
		return jsonResult(names)
	})
}

// RegisterJournalStatsTool registers journal_stats, the aggregate report.
func RegisterJournalStatsTool(s *server.MCPServer, db *sql.DB) {
	statsTool := mcp.NewTool("journal_stats",
		mcp.WithDescription("Returns totals plus mood, category, tag, and per-month entry counts."),
	)
	s.AddTool(statsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		totalEntries, err := journal.TotalEntries(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to count entries: %v", err)), nil
		}
		totalWords, err := journal.TotalWords(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to sum words: %v", err)), nil
		}
		moods, err := journal.MoodCounts(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to count moods: %v", err)), nil
		}
		categories, err := journal.CategoryCounts(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to count categories: %v", err)), nil
		}
		tags, err := journal.TagCounts(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to count tags: %v", err)), nil
		}
		months, err := journal.EntriesPerMonth(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to bucket months: %v", err)), nil
		}

		return jsonResult(map[string]any{
			"total_entries":     totalEntries,
			"total_words":       totalWords,
			"mood_counts":       moods,
			"category_counts":   categories,
			"tag_counts":        tags,
			"entries_per_month": months,
		})
	})
}

// RegisterJournalStreaksTool registers journal_streaks.
func RegisterJournalStreaksTool(s *server.MCPServer, db *sql.DB) {
	streaksTool := mcp.NewTool("journal_streaks",
		mcp.WithDescription("Returns the current streak, longest streak, and missed days."),
	)
	s.AddTool(streaksTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report, err := journal.Streaks(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to compute streaks: %v", err)), nil
		}
		return jsonResult(report)
	})
}

// RegisterExportJournalTool registers export_journal.
func RegisterExportJournalTool(s *server.MCPServer, db *sql.DB) {
	exportTool := mcp.NewTool("export_journal",
		mcp.WithDescription("Exports every entry, oldest first. Format 'csv' or 'json' returns text; 'pdf' returns base64-encoded bytes."),
		mcp.WithString("format", mcp.Required(), mcp.Description("One of: csv, json, pdf.")),
	)
	s.AddTool(exportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format, _ := request.Params.Arguments["format"].(string)

		switch strings.ToLower(strings.TrimSpace(format)) {
		case "csv":
			out, err := journal.ExportCSV(ctx, db)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("CSV export failed: %v", err)), nil
			}
			return mcp.NewToolResultText(out), nil
		case "json":
			out, err := journal.ExportJSON(ctx, db)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("JSON export failed: %v", err)), nil
			}
			return mcp.NewToolResultText(out), nil
		case "pdf":
			out, err := journal.ExportPDF(ctx, db)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("PDF export failed: %v", err)), nil
			}
			return mcp.NewToolResultText(base64.StdEncoding.EncodeToString(out)), nil
		default:
			return mcp.NewToolResultError("'format' must be one of: csv, json, pdf."), nil
		}
	})
}

// RegisterImportJournalTool registers import_journal.
func RegisterImportJournalTool(s *server.MCPServer, db *sql.DB) {
	importTool := mcp.NewTool("import_journal",
		mcp.WithDescription("Imports entries from the JSON export format, upserting by date. Malformed input imports zero entries. Tags are not restored."),
		mcp.WithString("data", mcp.Required(), mcp.Description("JSON array of entry objects.")),
	)
	s.AddTool(importTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, _ := request.Params.Arguments["data"].(string)

		imported, err := journal.ImportFromJSON(ctx, db, data)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Import failed: %v", err)), nil
		}
		return jsonResult(map[string]int{"imported": imported})
	})
}
