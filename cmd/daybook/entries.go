package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/journal"
)

var (
	writeDate     string
	writeTitle    string
	writeMood     string
	writeMood2    string
	writeMood3    string
	writeCategory string
	writeTags     []string
	listPage      int
	listPageSize  int
	filterCat     string
	filterMood    string
	filterTag     string
)

// parseDateFlag turns a --date value into a calendar day. A blank value
// means today.
func parseDateFlag(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return journal.Today(), nil
	}
	parsed, err := time.Parse(journal.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return parsed, nil
}

func printEntry(entry journal.Entry, tags []string) error {
	payload := struct {
		journal.Entry
		Tags []string `json:"tags"`
	}{Entry: entry, Tags: tags}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printEntries(entries []journal.Entry) error {
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

var writeCmd = &cobra.Command{
	Use:   "write <content>",
	Short: "Write or update the journal entry for a day",
	Long: `Saves the journal entry for a calendar day. Each day has at most one entry;
writing to a day that already has an entry replaces its content while keeping
the original creation time. The word count is computed automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateFlag(writeDate)
		if err != nil {
			return err
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := context.Background()
		entry, err := journal.UpsertEntry(ctx, conn, journal.Entry{
			EntryDate:      day,
			Title:          writeTitle,
			Content:        args[0],
			PrimaryMood:    writeMood,
			SecondaryMood1: writeMood2,
			SecondaryMood2: writeMood3,
			Category:       writeCategory,
		})
		if err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		tags, err := journal.GetEntryTags(ctx, conn, entry.ID)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("tag") {
			names := []string{}
			for _, raw := range writeTags {
				names = append(names, strings.Split(raw, ",")...)
			}
			if err := journal.SetEntryTags(ctx, conn, entry.ID, names); err != nil {
				return fmt.Errorf("failed to set tags: %w", err)
			}
			tags, err = journal.GetEntryTags(ctx, conn, entry.ID)
			if err != nil {
				return err
			}
		}

		return printEntry(entry, tags)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show the journal entry for a day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateArg := ""
		if len(args) == 1 {
			dateArg = args[0]
		}
		day, err := parseDateFlag(dateArg)
		if err != nil {
			return err
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := context.Background()
		entry, err := journal.GetEntryByDate(ctx, conn, day)
		if err != nil {
			return err
		}
		if entry == nil {
			fmt.Printf("No entry for %s.\n", day.Format(journal.DateLayout))
			return nil
		}

		tags, err := journal.GetEntryTags(ctx, conn, entry.ID)
		if err != nil {
			return err
		}
		return printEntry(*entry, tags)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete the journal entry for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateFlag(args[0])
		if err != nil {
			return err
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		deleted, err := journal.DeleteEntryByDate(context.Background(), conn, day)
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		if deleted == 0 {
			fmt.Printf("No entry for %s.\n", day.Format(journal.DateLayout))
			return nil
		}
		fmt.Printf("Deleted entry for %s.\n", day.Format(journal.DateLayout))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := context.Background()
		var entries []journal.Entry
		if cmd.Flags().Changed("page") || cmd.Flags().Changed("page-size") {
			entries, err = journal.GetEntriesPage(ctx, conn, listPage, listPageSize)
		} else {
			entries, err = journal.ListEntriesNewestFirst(ctx, conn)
		}
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		return printEntries(entries)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search entries by title or content",
	Long:  `Performs a case-insensitive substring search over entry titles and content.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		entries, err := journal.SearchEntries(context.Background(), conn, args[0])
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return printEntries(entries)
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter entries by category, mood, and/or tag",
	Long: `Lists entries matching every provided criterion. Matching is
case-insensitive; omitted criteria do not narrow the result.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		entries, err := journal.FilterEntries(context.Background(), conn, filterCat, filterMood, filterTag)
		if err != nil {
			return fmt.Errorf("filter failed: %w", err)
		}
		return printEntries(entries)
	},
}

func init() {
	writeCmd.Flags().StringVar(&writeDate, "date", "", "Entry date as YYYY-MM-DD (defaults to today)")
	writeCmd.Flags().StringVar(&writeTitle, "title", "", "Entry title")
	writeCmd.Flags().StringVar(&writeMood, "mood", "", "Primary mood")
	writeCmd.Flags().StringVar(&writeMood2, "mood2", "", "Second mood")
	writeCmd.Flags().StringVar(&writeMood3, "mood3", "", "Third mood")
	writeCmd.Flags().StringVar(&writeCategory, "category", "", "Entry category (defaults to General)")
	writeCmd.Flags().StringSliceVar(&writeTags, "tag", nil, "Tag to attach (repeatable; replaces the entry's tags)")

	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number (1-based)")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 10, "Entries per page")

	filterCmd.Flags().StringVar(&filterCat, "category", "", "Category to match")
	filterCmd.Flags().StringVar(&filterMood, "mood", "", "Mood to match (any mood slot)")
	filterCmd.Flags().StringVar(&filterTag, "tag", "", "Tag to match")
}
