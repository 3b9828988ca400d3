package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/config"
	"github.com/aidmqan/mqan-console/internal/db"
	"github.com/aidmqan/mqan-console/internal/models"
	"github.com/aidmqan/mqan-console/internal/ui"
)

var (
	configFile string
	noSplash   bool
	v          = config.NewViper()
)

// rootCmd opens the console when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mqan",
	Short: "Medicine quality assurance network console",
	Long: `mqan is the operator console of the medicine quality assurance network.

Without a subcommand it opens the interactive dashboard. The same record
pages are available to scripts through query, export and serve.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./mqan.yaml or ~/.config/mqan/mqan.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = v.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().BoolVar(&noSplash, "no-splash", false, "skip the start-up splash")
	tuiCmd.Flags().BoolVar(&noSplash, "no-splash", false, "skip the start-up splash")

	rootCmd.AddCommand(tuiCmd, serveCmd, queryCmd, exportCmd, seedCmd, viewsCmd, configCmd)
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

// session is the state every command shares after start-up.
type session struct {
	cfg      *config.Config
	logger   *log.Logger
	store    *db.DB
	catalog  *catalog.Catalog
	settings models.Settings
	closers  []io.Closer
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

// logTarget picks where a command logs. Interactive commands log to the
// configured file so the alternate screen is not overwritten.
type logTarget int

const (
	logStderr logTarget = iota
	logFile
)

func newLogger(cfg *config.Config, target logTarget) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer
	if target == logFile && cfg.LogFile != "" {
		if dir := filepath.Dir(cfg.LogFile); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Prefix:          "mqan",
	})
	return logger, closer, nil
}

// openSession loads the config, opens the store and loads the catalog,
// seeding the store on first run.
func openSession(target logTarget) (*session, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	logger, closer, err := newLogger(cfg, target)
	if err != nil {
		return nil, err
	}
	s.logger = logger
	if closer != nil {
		s.closers = append(s.closers, closer)
	}
	if cfg.File != "" {
		logger.Debug("Loaded config", "file", cfg.File)
	}

	store, err := db.New(cfg.DBPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.store = store
	s.closers = append(s.closers, store)

	seeded, err := store.IsSeeded()
	if err != nil {
		s.Close()
		return nil, err
	}
	if !seeded {
		logger.Info("Seeding database", "path", cfg.DBPath)
		if err := store.SeedCatalog(catalog.Seed(), false); err != nil {
			s.Close()
			return nil, err
		}
	}

	s.catalog, err = store.LoadCatalog()
	if err != nil {
		s.Close()
		return nil, err
	}
	s.settings, err = store.LoadSettings(cfg.Settings())
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
