// Package config loads daybook settings from DAYBOOK_* environment
// variables. Command-line flags take precedence over these defaults.
package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/daybook-app/daybook/pkg/utils"
)

// Settings holds the process-wide configuration.
type Settings struct {
	// DBPath is the journal database location; empty means the per-OS
	// default install path.
	DBPath string `envconfig:"DB_PATH"`
	// WAL toggles SQLite write-ahead logging.
	WAL bool `envconfig:"WAL" default:"true"`
	// SyncMode is the SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA).
	SyncMode string `envconfig:"SYNC" default:"NORMAL"`
}

// Load reads settings from the environment, filling in defaults.
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process("daybook", &s); err != nil {
		return Settings{}, err
	}
	if s.DBPath == "" {
		s.DBPath = utils.GetDefaultDBPathOnly()
	}
	return s, nil
}
