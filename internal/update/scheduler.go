package update

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jaeho/runbrief/internal/store"
)

// Sweep schedules. The midnight sweep captures the new forecast day as
// soon as the source rolls over; the ten-minute sweep keeps the
// current day fresh.
const (
	midnightSpec = "0 0 * * *"
	refreshSpec  = "*/10 * * * *"
)

// Scheduler runs batch sweeps on a cron cadence in the configured
// local clock.
type Scheduler struct {
	cron    *cron.Cron
	updater *Updater
	store   *store.Store
}

func NewScheduler(u *Updater, st *store.Store, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		updater: u,
		store:   st,
	}
}

// Start registers both sweeps and runs the cron loop until ctx is
// cancelled. It blocks; run it in its own goroutine when the caller
// has other work.
func (s *Scheduler) Start(ctx context.Context) error {
	sweep := func() { s.sweep(ctx) }
	if _, err := s.cron.AddFunc(midnightSpec, sweep); err != nil {
		return fmt.Errorf("register midnight sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(refreshSpec, sweep); err != nil {
		return fmt.Errorf("register refresh sweep: %w", err)
	}

	s.cron.Start()
	log.Printf("scheduler: started (sweeps %q and %q)", midnightSpec, refreshSpec)

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Printf("scheduler: stopped")
	return ctx.Err()
}

func (s *Scheduler) sweep(ctx context.Context) {
	locations, err := s.store.ListLocations()
	if err != nil {
		log.Printf("scheduler: list locations: %v", err)
		return
	}
	if len(locations) == 0 {
		log.Printf("scheduler: no locations configured, skipping sweep")
		return
	}
	s.updater.UpdateMany(ctx, locations)
}
