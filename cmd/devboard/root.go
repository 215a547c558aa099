package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/devboard-app/devboard/internal/config"
	"github.com/devboard-app/devboard/internal/ops"
	"github.com/devboard-app/devboard/internal/seed"
	"github.com/devboard-app/devboard/internal/store"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
	st  *store.SQLiteStore
	svc *ops.Service
	log zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "devboard",
	Short: "Offline-first project, task, and note manager",
	Long: `DevBoard keeps projects, tasks, and notes in a local SQLite store
with full-text search, saved views, and versioned import/export.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := zerolog.InfoLevel
		if parsed, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			level = parsed
		}
		if verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
		}

		st, err = store.NewSQLiteStore(cfg.DatabasePath())
		if err != nil {
			return err
		}

		svc = ops.New(st, log)
		if _, err := svc.EnsureSettings(cmd.Context()); err != nil {
			return err
		}

		if cfg.SeedDemo {
			inserted, err := seed.Demo(cmd.Context(), svc)
			if err != nil {
				return err
			}
			if inserted {
				log.Info().Msg("demo data inserted into empty store")
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if st != nil {
			if err := st.Close(); err != nil {
				log.Error().Err(err).Msg("closing store")
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
