package journal

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// CSVHeader is the fixed first row of the CSV export. Consumers parse this
// format; it must stay byte-compatible.
const CSVHeader = "Date,Title,Content,PrimaryMood,Category,WordCount"

// ExportCSV renders every entry, oldest first, as CSV. Text fields are always
// double-quoted with internal quotes doubled; the date and word count are
// never quoted.
func ExportCSV(ctx context.Context, conn *sql.DB) (string, error) {
	entries, err := listEntries(ctx, conn, listEntriesOldestFirstStatement)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(CSVHeader)
	sb.WriteString("\n")

	for _, e := range entries {
		fields := []string{
			e.EntryDate.Format(DateLayout),
			csvQuote(e.Title),
			csvQuote(e.Content),
			csvQuote(e.PrimaryMood),
			csvQuote(e.Category),
			strconv.Itoa(e.WordCount),
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportJSON renders every entry, oldest first, as an indented JSON array of
// full entry objects. Tags are not part of the export.
func ExportJSON(ctx context.Context, conn *sql.DB) (string, error) {
	entries, err := listEntries(ctx, conn, listEntriesOldestFirstStatement)
	if err != nil {
		return "", err
	}
	if entries == nil {
		entries = []Entry{}
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize entries: %w", err)
	}
	return string(out), nil
}

// ExportPDF renders every entry, oldest first, as a paginated A4 report: a
// title header, the generation timestamp, one bordered block per entry, and a
// page-numbered footer.
func ExportPDF(ctx context.Context, conn *sql.DB) ([]byte, error) {
	entries, err := listEntries(ctx, conn, listEntriesOldestFirstStatement)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Journal Export", false)
	pdf.SetMargins(15, 15, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d / {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Journal Export", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, e := range entries {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s | %s", e.EntryDate.Format(DateLayout), e.Title), "LTR", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("Mood: %s   Category: %s   Words: %d", e.PrimaryMood, e.Category, e.WordCount), "LR", 1, "L", false, 0, "")
		if strings.TrimSpace(e.Content) != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, e.Content, "LRB", "L", false)
		} else {
			pdf.CellFormat(0, 2, "", "LRB", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
