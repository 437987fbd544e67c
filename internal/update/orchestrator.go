// Package update drives the write side of the pipeline: extract a
// location's page, normalize the rows, and upsert them. A batch sweep
// runs every configured location independently, so one bad location
// never blocks the rest.
package update

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jaeho/runbrief/internal/metrics"
	"github.com/jaeho/runbrief/internal/models"
	"github.com/jaeho/runbrief/internal/normalize"
	"github.com/jaeho/runbrief/internal/scrape"
	"github.com/jaeho/runbrief/internal/store"
)

type Updater struct {
	extractor *scrape.Extractor
	store     *store.Store
	baseURL   string

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func NewUpdater(extractor *scrape.Extractor, st *store.Store, baseURL string) *Updater {
	return &Updater{
		extractor: extractor,
		store:     st,
		baseURL:   baseURL,
		breakers:  make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Result counts batch outcomes per location, not per record.
type Result struct {
	Succeeded int
	Failed    int
}

// breaker returns the circuit breaker for one location code, creating
// it on first use. Breakers are per code so a site page that went
// missing for one location cannot open the circuit for the others.
func (u *Updater) breaker(code string) *gobreaker.CircuitBreaker {
	u.mu.Lock()
	defer u.mu.Unlock()
	if cb, ok := u.breakers[code]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "extract-" + code,
		Timeout: 5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				metrics.BreakerOpens.WithLabelValues(code).Inc()
				log.Printf("update: breaker open for %s", code)
			}
		},
	})
	u.breakers[code] = cb
	return cb
}

// PageURL is the source page address for one location code.
func (u *Updater) PageURL(code string) string {
	return fmt.Sprintf("%s/today/%s", u.baseURL, code)
}

// UpdateOne extracts, normalizes, and stores the hourly forecast for
// one location from the given page URL. It reports success only when
// at least one record was written; a page that rendered but yielded no
// usable rows is a failure for batch accounting.
func (u *Updater) UpdateOne(ctx context.Context, code, url string) (bool, error) {
	start := time.Now()
	out, err := u.breaker(code).Execute(func() (interface{}, error) {
		return u.extractor.Extract(ctx, url, code)
	})
	if err != nil {
		// An open breaker returns without touching the page; its
		// near-zero duration is not an extraction latency.
		if !errors.Is(err, gobreaker.ErrOpenState) {
			metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
		}
		metrics.ExtractionsTotal.WithLabelValues(code, "error").Inc()
		return false, fmt.Errorf("extract %s: %w", code, err)
	}
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	metrics.ExtractionsTotal.WithLabelValues(code, "ok").Inc()

	result := out.(*scrape.Result)
	if snap := normalize.Snapshot(result.Current); snap != nil {
		log.Printf("update: %s: now %s°C, %s", code, snap.Temperature, snap.WeatherStatus)
	}

	records := normalize.NormalizeAll(result.Hourly, code, time.Now())
	for _, r := range records {
		if err := u.store.UpsertHourly(r); err != nil {
			return false, fmt.Errorf("store hourly for %s: %w", code, err)
		}
	}
	metrics.RecordsUpserted.WithLabelValues(code).Add(float64(len(records)))

	if len(records) == 0 {
		log.Printf("update: %s: page yielded no storable rows", code)
		return false, nil
	}
	return true, nil
}

// UpdateMany runs UpdateOne for every location, in order, continuing
// past failures. Cancellation stops the sweep; locations not reached
// count as failed so the caller's totals always cover the full batch.
func (u *Updater) UpdateMany(ctx context.Context, locations []models.Location) Result {
	var res Result
	for i, loc := range locations {
		if ctx.Err() != nil {
			res.Failed += len(locations) - i
			break
		}
		ok, err := u.UpdateOne(ctx, loc.Code, u.PageURL(loc.Code))
		if err != nil {
			log.Printf("update: %s: %v", loc.Code, err)
		}
		if ok {
			res.Succeeded++
		} else {
			res.Failed++
			metrics.BatchFailures.Inc()
		}
	}
	metrics.BatchRuns.Inc()
	log.Printf("update: batch done: %d succeeded, %d failed", res.Succeeded, res.Failed)
	return res
}
