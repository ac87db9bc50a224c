package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/journal"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal to CSV, JSON, or PDF",
	Long: `Exports every journal entry, oldest first. CSV and JSON go to stdout unless
--out is given; PDF always requires --out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(exportFormat))

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := context.Background()
		var data []byte
		switch format {
		case "csv":
			text, err := journal.ExportCSV(ctx, conn)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(text)
		case "json":
			text, err := journal.ExportJSON(ctx, conn)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(text)
		case "pdf":
			if exportOut == "" {
				return fmt.Errorf("pdf export requires --out")
			}
			data, err = journal.ExportPDF(ctx, conn)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
		default:
			return fmt.Errorf("unsupported format %q (expected csv, json, or pdf)", exportFormat)
		}

		if exportOut == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		fmt.Printf("Exported journal to %s.\n", exportOut)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from a JSON export",
	Long: `Reads a JSON array of entries (as produced by export --format json) and
saves each one. Entries for days that already exist are overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		count, err := journal.ImportFromJSON(context.Background(), conn, string(data))
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("Imported %d entries.\n", count)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv, json, or pdf")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write the export to a file instead of stdout")
}
