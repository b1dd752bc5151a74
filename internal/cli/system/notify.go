package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/config"
	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/notifier"
	"github.com/julianstephens/zenith/internal/reminders"
	"github.com/julianstephens/zenith/internal/state"
)

// NotifyCmd sends reminders that came due in the last few minutes. It is
// meant to be run from cron or a systemd timer.
type NotifyCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	now := time.Now()
	d := reminders.NewDispatcher(store, senderFor(ctx, c.DryRun))
	d.SkipBefore(now.Add(-constants.NotifyGracePeriod))

	sent, err := d.Check(context.Background(), now)
	if c.DryRun && sent == 0 {
		fmt.Println("No reminders due.")
	}
	return err
}

// WatchCmd keeps running and delivers reminders on the configured schedule
type WatchCmd struct {
	DryRun   bool   `help:"Print reminders to stdout instead of sending them."`
	Schedule string `help:"Cron schedule for reminder checks. Defaults to the settings file."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return err
	}

	schedule := c.Schedule
	if schedule == "" {
		schedule = settings(ctx).Reminders.Schedule
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := reminders.NewDispatcher(&reloadingSource{ctx: ctx}, senderFor(ctx, c.DryRun))
	// Catch up on anything already due before the first tick
	if _, err := d.Check(runCtx, time.Now()); err != nil {
		logger.Warn("Initial reminder check failed", "error", err)
	}
	if err := d.Start(runCtx, schedule); err != nil {
		return err
	}

	fmt.Printf("Watching for reminders (%s). Press Ctrl+C to stop.\n", schedule)
	<-runCtx.Done()
	d.Stop()
	fmt.Println("Stopped.")
	return nil
}

func settings(ctx *cli.Context) *config.Config {
	if ctx.Config != nil {
		return ctx.Config
	}
	return config.Default()
}

func senderFor(ctx *cli.Context, dryRun bool) reminders.Sender {
	if dryRun || !settings(ctx).Reminders.Desktop {
		return reminders.WriterSender{W: os.Stdout}
	}
	return notifier.New()
}

// reloadingSource reads the persisted state on every check so reminders
// created by other zenith processes are picked up
type reloadingSource struct {
	ctx *cli.Context

	mu   sync.Mutex
	last state.Snapshot
}

func (r *reloadingSource) Snapshot() state.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	// JSON storage caches the file; Load re-reads it
	if err := r.ctx.Provider.Load(); err != nil {
		logger.Warn("Failed to reload storage, using previous snapshot", "error", err)
		return r.last
	}

	opts := r.ctx.StoreOptions
	opts.Persister = state.NewRecordPersister(r.ctx.Provider, settings(r.ctx).Storage.Record)
	s, err := state.New(opts)
	if err != nil {
		logger.Warn("Failed to reload state, using previous snapshot", "error", err)
		return r.last
	}
	defer s.Close()

	r.last = s.Snapshot()
	return r.last
}
