package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
)

// ImportFromJSON re-imports entries from the ExportJSON format, upserting
// each one by date. Dates are normalized and word counts recomputed from the
// parsed content; identities and timestamps in the input are ignored, and
// tags are never restored. Blank or unparseable input imports zero entries
// without error. The whole import runs in one transaction.
func ImportFromJSON(ctx context.Context, conn *sql.DB, data string) (int, error) {
	if strings.TrimSpace(data) == "" {
		return 0, nil
	}

	var items []Entry
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		// Malformed input is reported as zero imported, not as a failure.
		return 0, nil
	}
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	imported := 0
	for _, item := range items {
		if _, err := upsertEntry(ctx, tx, item); err != nil {
			return 0, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}
