package main

import (
	"github.com/spf13/cobra"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/feed"
	"github.com/aidmqan/mqan-console/internal/models"
	"github.com/aidmqan/mqan-console/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession(logFile)
	if err != nil {
		return err
	}
	defer s.Close()

	if !noSplash {
		if err := ui.ShowSplash(s.settings.SystemName); err != nil {
			s.logger.Warn("Splash failed", "err", err)
		}
	}

	f := newFeed(s, nil)
	f.Prime(s.cfg.Feed.Initial)

	settings := s.settings
	env := ui.Env{
		Catalog:   s.catalog,
		Registry:  catalog.NewRegistry(s.catalog, f.Snapshot),
		Feed:      f,
		Store:     s.store,
		Settings:  &settings,
		Logger:    s.logger,
		Interval:  s.cfg.Feed.Interval,
		ExportDir: ".",
	}

	s.logger.Info("Console started", "db", s.cfg.DBPath, "pages", len(env.Registry.Names()))
	return ui.Run(env)
}

// newFeed builds the live feed. Every event is recorded in the activity
// log; observe, when set, sees each tick as well.
func newFeed(s *session, observe func(models.Activity, bool)) *feed.Feed {
	return feed.New(feed.Options{
		Capacity: s.cfg.Feed.Capacity,
		Seed:     s.cfg.Feed.Seed,
		Logger:   s.logger,
		OnTick: func(a models.Activity, dropped bool) {
			if err := s.store.InsertActivity(a); err != nil {
				s.logger.Error("Failed to record activity", "err", err)
			}
			if observe != nil {
				observe(a, dropped)
			}
		},
	})
}
