package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/config"
	"github.com/abhisek/hanzi/internal/logging"
	"github.com/abhisek/hanzi/internal/progress"
	"github.com/abhisek/hanzi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "hanzi",
	Short: "HSK Chinese vocabulary trainer",
	Long:  "Hanzi: terminal flashcards and quizzes for HSK 1-5 vocabulary, with progress tracking.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HANZI_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/hanzi/config.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "Vocabulary catalog JSON (default: built-in HSK 1-5 list)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is everything a command needs, opened from config and flags.
type env struct {
	cfg      config.Config
	log      *zap.Logger
	closeLog func() error
	db       *store.Store
	progress *progress.Store
	catalog  *catalog.Catalog
}

// errDBFlagNeedsSQLite is returned when --db is combined with a server driver.
var errDBFlagNeedsSQLite = errors.New("--db is a SQLite file path; set storage.dsn for other drivers")

// loadConfig reads config and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file})
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if d := cfg.Storage.Driver; d != "" && d != store.DriverSQLite && d != store.DriverSQLiteCGO {
			return config.Config{}, fmt.Errorf("%w (storage.driver is %q)", errDBFlagNeedsSQLite, d)
		}
		if err := store.EnsureDir(p); err != nil {
			return config.Config{}, fmt.Errorf("resolve DB path: %w", err)
		}
		cfg.Storage.DSN = p
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.Catalog.Path = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	return cfg, nil
}

// resolveDSN fills in the default SQLite file when no DSN is configured.
func resolveDSN(cfg config.StorageConfig) (string, error) {
	if cfg.DSN != "" || cfg.Driver == store.DriverPostgres {
		return cfg.DSN, nil
	}
	return store.DefaultDBPath()
}

// setup opens the logger, catalog, database and progress store. console
// receives warnings for CLI commands; the TUI passes nil.
func setup(cmd *cobra.Command, console io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: console,
	})
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: log, closeLog: closeLog}

	if e.catalog, err = catalog.Load(cfg.Catalog.Path); err != nil {
		e.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	dsn, err := resolveDSN(cfg.Storage)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if e.db, err = store.Open(cfg.Storage.Driver, dsn); err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	e.progress, err = progress.Open(cmdContext(cmd), e.db.KV(), progress.WithLogger(log.Named("progress")))
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open progress: %w", err)
	}

	log.Debug("environment ready",
		zap.String("driver", cfg.Storage.Driver),
		zap.Int("words", e.catalog.Len()))
	return e, nil
}

// Close releases the database and flushes the log.
func (e *env) Close() {
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			e.log.Warn("close store", zap.Error(err))
		}
	}
	if e.closeLog != nil {
		_ = e.closeLog()
	}
}

// cmdContext returns the command context, or Background when unset.
func cmdContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
