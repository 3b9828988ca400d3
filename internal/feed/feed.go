package feed

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aidmqan/mqan-console/internal/models"
)

// Defaults for the monitor feed.
const (
	DefaultInterval = 3 * time.Second
	DefaultCapacity = 20
	DefaultInitial  = 10
)

// Options configures a Feed.
type Options struct {
	Capacity int
	Seed     uint64
	Logger   *log.Logger
	// OnTick is called after every new event is pushed.
	OnTick func(a models.Activity, dropped bool)
}

// Feed is the live activity window of the real-time monitor.
type Feed struct {
	window *Window[models.Activity]
	gen    *Generator
	logger *log.Logger
	onTick func(models.Activity, bool)
}

// New creates an empty feed.
func New(opts Options) *Feed {
	if opts.Capacity == 0 {
		opts.Capacity = DefaultCapacity
	}
	return &Feed{
		window: NewWindow[models.Activity](opts.Capacity),
		gen:    NewGenerator(opts.Seed),
		logger: opts.Logger,
		onTick: opts.OnTick,
	}
}

// Prime pushes n events without waiting for the ticker.
func (f *Feed) Prime(n int) {
	for i := 0; i < n; i++ {
		f.Tick()
	}
}

// Tick synthesizes one event and prepends it to the window.
func (f *Feed) Tick() models.Activity {
	a := f.gen.Next()
	dropped := f.window.Push(a)
	if f.logger != nil {
		f.logger.Debug("Activity", "seq", a.Seq, "hospital", a.Hospital, "action", a.Action, "status", a.Status)
	}
	if f.onTick != nil {
		f.onTick(a, dropped)
	}
	return a
}

// Run ticks every interval until ctx is cancelled.
func (f *Feed) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if f.logger != nil {
		f.logger.Info("Feed started", "interval", interval, "capacity", f.window.Cap())
	}
	for {
		select {
		case <-ctx.Done():
			if f.logger != nil {
				f.logger.Info("Feed stopped", "events", f.window.Len())
			}
			return
		case <-ticker.C:
			f.Tick()
		}
	}
}

// Snapshot returns the current events, newest first.
func (f *Feed) Snapshot() []models.Activity {
	return f.window.Snapshot()
}

// Newest returns the most recent event, if any.
func (f *Feed) Newest() (models.Activity, bool) {
	return f.window.Newest()
}

// Len returns the number of events held.
func (f *Feed) Len() int {
	return f.window.Len()
}

// Cap returns the window capacity.
func (f *Feed) Cap() int {
	return f.window.Cap()
}
