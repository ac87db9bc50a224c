package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	daybook "github.com/daybook-app/daybook/pkg"
	"github.com/daybook-app/daybook/pkg/config"
	pkgdb "github.com/daybook-app/daybook/pkg/db"
	"github.com/daybook-app/daybook/pkg/utils"
)

var (
	dbPath   string
	walMode  bool
	syncMode string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:     "daybook",
	Short:   "A local daily journal with moods, tags, streaks, and exports.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", daybook.Version),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// openDB resolves the database location (flag, then DAYBOOK_* environment,
// then the per-OS default), opens it, and ensures the schema is current.
func openDB() (*sql.DB, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	path := dbPath
	if path == "" {
		path = settings.DBPath
	}
	resolvedPath, err := utils.ResolveAndEnsureDBPath(path)
	if err != nil {
		return nil, err
	}

	wal := walMode
	sync := syncMode
	if !rootCmd.PersistentFlags().Changed("wal") {
		wal = settings.WAL
	}
	if !rootCmd.PersistentFlags().Changed("sync") {
		sync = settings.SyncMode
	}

	conn, err := pkgdb.OpenDBConnection(resolvedPath, wal, sync)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pkgdb.UpgradeDB(conn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for daybook.

The command prints a completion script to stdout. You can source it in your
shell or install it to the appropriate location for your shell to enable
completions permanently.

Examples:

  Bash (current shell):
    $ source <(daybook completion bash)

  Zsh:
    $ daybook completion zsh > "${fpath[1]}/_daybook"

  Fish:
    $ daybook completion fish | source`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daybook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(daybook.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the daybook database",
	Long:  `Provides commands for managing the daybook SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the daybook database schema to the latest version",
	Long: `Connects to the SQLite database (via --db, the DAYBOOK_DB_PATH environment
variable, or the default install location) and applies any necessary schema
migrations. If the database does not exist it is created and initialized with
the latest schema.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		fmt.Println("Database schema is up to date.")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the daybook SQLite database file (defaults to the per-OS install location)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", true, "Enable SQLite WAL (Write-Ahead Logging) mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "NORMAL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	dbCmd.AddCommand(dbUpgradeCmd)
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd, writeCmd, showCmd, deleteCmd, listCmd, searchCmd, filterCmd, tagsCmd, moodsCmd, statsCmd, streaksCmd, exportCmd, importCmd, accountCmd, mcpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
