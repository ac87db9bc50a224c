package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Long: `Prints aggregate statistics for the journal: entry and word totals plus
per-mood, per-category, per-tag, and per-month entry counts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := context.Background()
		totalEntries, err := journal.TotalEntries(ctx, conn)
		if err != nil {
			return err
		}
		totalWords, err := journal.TotalWords(ctx, conn)
		if err != nil {
			return err
		}
		moods, err := journal.MoodCounts(ctx, conn)
		if err != nil {
			return err
		}
		categories, err := journal.CategoryCounts(ctx, conn)
		if err != nil {
			return err
		}
		tags, err := journal.TagCounts(ctx, conn)
		if err != nil {
			return err
		}
		months, err := journal.EntriesPerMonth(ctx, conn)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(map[string]interface{}{
			"total_entries":     totalEntries,
			"total_words":       totalWords,
			"mood_counts":       moods,
			"category_counts":   categories,
			"tag_counts":        tags,
			"entries_per_month": months,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Show journaling streaks",
	Long: `Prints the current streak of consecutive journaled days, the longest streak
on record, and the number of days missed since the first entry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		report, err := journal.Streaks(context.Background(), conn)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
