// Package reminders fires reminder notifications once their scheduled time
// has passed. It only reads store snapshots; delivery never changes state.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/state"
)

// Source provides the snapshots the dispatcher scans
type Source interface {
	Snapshot() state.Snapshot
}

// Sender delivers a due reminder
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

type Dispatcher struct {
	source Source
	sender Sender
	clock  func() time.Time

	mu         sync.Mutex
	dispatched map[string]bool
	notBefore  time.Time
	cron       *cron.Cron
}

func NewDispatcher(source Source, sender Sender) *Dispatcher {
	return &Dispatcher{
		source:     source,
		sender:     sender,
		clock:      time.Now,
		dispatched: make(map[string]bool),
	}
}

// Due returns the unread reminders in snap scheduled at or before now,
// oldest first.
func Due(snap state.Snapshot, now time.Time) []models.Notification {
	var due []models.Notification
	for _, n := range snap.Notifications {
		if !n.Read && n.IsDue(now) {
			due = append(due, n)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].ScheduledFor.Before(*due[j].ScheduledFor)
	})
	return due
}

// SkipBefore makes Check ignore reminders scheduled before t. One-shot runs
// use it so that a reminder is only sent by the run closest to its time.
func (d *Dispatcher) SkipBefore(t time.Time) {
	d.mu.Lock()
	d.notBefore = t
	d.mu.Unlock()
}

// Check sends every due reminder that has not been sent by this dispatcher
// yet. A reminder whose delivery fails is retried on the next check.
func (d *Dispatcher) Check(ctx context.Context, now time.Time) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	sent := 0
	for _, n := range Due(d.source.Snapshot(), now) {
		if d.dispatched[n.ID] || n.ScheduledFor.Before(d.notBefore) {
			continue
		}
		if err := d.sender.Send(ctx, n); err != nil {
			logger.Warn("Failed to deliver reminder", "id", n.ID, "error", err)
			errs = append(errs, fmt.Errorf("reminder %s: %w", n.ID, err))
			continue
		}
		d.dispatched[n.ID] = true
		sent++
		logger.Info("Reminder delivered", "id", n.ID, "title", n.Title)
	}
	return sent, errors.Join(errs...)
}

// Start runs Check on the cron schedule until ctx is done or Stop is called
func (d *Dispatcher) Start(ctx context.Context, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := d.Check(ctx, d.clock()); err != nil {
			logger.Debug("Reminder check finished with errors", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}

	d.mu.Lock()
	d.cron = c
	d.mu.Unlock()

	c.Start()
	go func() {
		<-ctx.Done()
		d.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running check to finish
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	c := d.cron
	d.cron = nil
	d.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// WriterSender prints reminders instead of showing them on the desktop
type WriterSender struct {
	W     io.Writer
	Clock func() time.Time
}

func (w WriterSender) Send(_ context.Context, n models.Notification) error {
	now := time.Now()
	if w.Clock != nil {
		now = w.Clock()
	}
	_, err := fmt.Fprintf(w.W, "[%s] %s: %s\n", humanize.RelTime(*n.ScheduledFor, now, "ago", "from now"), n.Title, n.Message)
	return err
}
