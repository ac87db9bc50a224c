package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// validSyncModes lists the allowed values for the synchronous pragma.
var validSyncModes = map[string]bool{
	"OFF":    true,
	"NORMAL": true,
	"FULL":   true,
	"EXTRA":  true,
}

// OpenDBConnection establishes a connection to a SQLite database with the
// given options. baseDSN is the initial data source name (usually a file
// path). enableWAL sets journal_mode to WAL; syncPragma sets the synchronous
// pragma (OFF, NORMAL, FULL, or EXTRA).
func OpenDBConnection(baseDSN string, enableWAL bool, syncPragma string) (*sql.DB, error) {
	params := url.Values{}

	if enableWAL {
		params.Add("_journal_mode", "WAL")
	}

	if syncPragma != "" {
		ucSyncPragma := strings.ToUpper(syncPragma)
		if !validSyncModes[ucSyncPragma] {
			return nil, fmt.Errorf("invalid sync pragma value: %s. Must be one of OFF, NORMAL, FULL, EXTRA", syncPragma)
		}
		params.Add("_synchronous", ucSyncPragma)
	}

	constructedDSN := baseDSN
	if len(params) > 0 {
		if strings.Contains(baseDSN, "?") {
			constructedDSN += "&" + params.Encode()
		} else {
			constructedDSN += "?" + params.Encode()
		}
	}

	conn, err := sql.Open("sqlite3", constructedDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database with DSN '%s': %w", constructedDSN, err)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database with DSN '%s': %w", constructedDSN, err)
	}

	// Foreign key enforcement is off by default in SQLite; the entry_tags
	// cascade rules depend on it.
	if _, err = conn.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign key support for DSN '%s': %w", constructedDSN, err)
	}

	return conn, nil
}

// Handle owns the single database connection for a daybook installation.
// The connection is opened lazily on first Acquire and reused for the life
// of the process; the schema is ensured before the first use.
type Handle struct {
	path      string
	enableWAL bool
	syncMode  string

	mu   sync.Mutex
	conn *sql.DB
}

// NewHandle constructs a handle for the database at path. Nothing is opened
// until Acquire is called.
func NewHandle(path string, enableWAL bool, syncMode string) *Handle {
	return &Handle{path: path, enableWAL: enableWAL, syncMode: syncMode}
}

// Acquire returns the live connection, opening the database and ensuring the
// schema is at the target version on first call. Subsequent calls return the
// same connection.
func (h *Handle) Acquire() (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn != nil {
		return h.conn, nil
	}

	conn, err := OpenDBConnection(h.path, h.enableWAL, h.syncMode)
	if err != nil {
		return nil, err
	}

	if err := UpgradeDB(conn, h.path, TargetSchemaVersion); err != nil {
		conn.Close()
		return nil, err
	}

	h.conn = conn
	return h.conn, nil
}

// Close releases the underlying connection, if one was opened. The handle can
// be acquired again afterwards.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn == nil {
		return nil
	}
	err := h.conn.Close()
	h.conn = nil
	return err
}
