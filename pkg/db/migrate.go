package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// TargetSchemaVersion is the highest schema version this version of the
	// code supports for the journaldb component.
	TargetSchemaVersion int64 = 1
	// JournalDBComponent is the name for the main journal database component.
	JournalDBComponent = "journaldb"
)

// GetComponentSchemaVersion retrieves the schema version for a given
// component. Returns 0 if the component is not found, the versions table is
// uninitialized, or the table doesn't exist yet.
func GetComponentSchemaVersion(conn *sql.DB, componentName string) (int64, error) {
	query := `SELECT version FROM daybook_versions WHERE component = ?;`
	row := conn.QueryRow(query, componentName)

	var version int64
	err := row.Scan(&version)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		if strings.Contains(err.Error(), "no such table") && strings.Contains(err.Error(), "daybook_versions") {
			// Versions table itself doesn't exist, so definitely version 0.
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// InitializeSchema creates all journaldb tables and records the given schema
// version for the component. Table creation is idempotent.
func InitializeSchema(conn *sql.DB, schemaVersionToSet int64) error {
	if _, err := conn.Exec(SchemaV1); err != nil {
		return fmt.Errorf("failed to execute schema v1 SQL: %w", err)
	}

	insertVersionSQL := `
INSERT INTO daybook_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch();`

	if _, err := conn.Exec(insertVersionSQL, JournalDBComponent, schemaVersionToSet); err != nil {
		return fmt.Errorf("failed to insert/update version for component %s to %d: %w", JournalDBComponent, schemaVersionToSet, err)
	}

	log.Debug().Str("component", JournalDBComponent).Int64("version", schemaVersionToSet).Msg("schema initialized")
	return nil
}

// UpgradeDB brings the journaldb component of the database behind conn up to
// appTargetSchemaVersion. dbIdentifierForLog is used for logging only.
func UpgradeDB(conn *sql.DB, dbIdentifierForLog string, appTargetSchemaVersion int64) error {
	currentDBVersion, err := GetComponentSchemaVersion(conn, JournalDBComponent)
	if err != nil {
		return err
	}

	switch {
	case currentDBVersion == 0:
		log.Debug().Str("db", dbIdentifierForLog).Int64("target", appTargetSchemaVersion).Msg("initializing uninitialized database")
		if err := InitializeSchema(conn, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", JournalDBComponent, dbIdentifierForLog, err)
		}
		return nil
	case currentDBVersion == appTargetSchemaVersion:
		return nil
	case currentDBVersion < appTargetSchemaVersion:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is older than application's target schema version %d. Automatic migration from this older version is not yet supported", JournalDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	default:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is newer than application's target schema version %d. Please upgrade the application", JournalDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	}
}
