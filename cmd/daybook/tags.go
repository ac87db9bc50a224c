package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/journal"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tag names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		names, err := journal.ListAllTagNames(context.Background(), conn)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List the known moods and their groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, mood := range journal.AllMoods() {
			fmt.Printf("%s\t%s\n", mood, journal.MoodGroup(mood))
		}
		return nil
	},
}
