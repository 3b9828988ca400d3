package main

import (
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aidmqan/mqan-console/internal/api"
	"github.com/aidmqan/mqan-console/internal/models"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the record pages and live feed as JSON",
	Long: `Start the read-only HTTP API. The live feed ticks in the background
and every event is recorded in the activity log.

Routes:
  GET /api/v1/pages             page names, facets and search fields
  GET /api/v1/{page}            filtered page (?q=text&<facet>=<value>)
  GET /api/v1/monitor/feed      live feed, newest first
  GET /api/v1/views/{page}      saved views
  GET /metrics                  Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openSession(logStderr)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *api.Server
	f := newFeed(s, func(a models.Activity, dropped bool) {
		srv.Metrics().ObserveFeed(a, dropped)
	})
	srv = api.New(s.catalog, f, s.store, api.Options{
		Addr:           s.cfg.Server.Addr,
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		Logger:         s.logger,
		Activity:       s.store,
	})
	f.Prime(s.cfg.Feed.Initial)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.Run(ctx, s.cfg.Feed.Interval)
	}()

	err = srv.Run(ctx)
	stop()
	wg.Wait()
	return err
}
