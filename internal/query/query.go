// Package query answers read-side questions over stored hourly
// records: the record nearest to now, fixed morning and day windows,
// and aggregate summaries with outfit and warning labels.
package query

import (
	"fmt"
	"log"
	"time"

	"github.com/jaeho/runbrief/internal/astro"
	"github.com/jaeho/runbrief/internal/models"
	"github.com/jaeho/runbrief/internal/outfit"
	"github.com/jaeho/runbrief/internal/store"
)

// Window bounds, inclusive on both ends.
const (
	morningFromHour = 4
	morningToHour   = 7
	dayFromHour     = 6
	dayToHour       = 23
)

const rainWarningThreshold = 40

type Queries struct {
	store  *store.Store
	loc    *time.Location
	ladder *outfit.Ladder
}

func New(s *store.Store, loc *time.Location) *Queries {
	return &Queries{store: s, loc: loc, ladder: outfit.DefaultLadder()}
}

// Summary aggregates a window of hourly records. An empty window
// yields the zero value with no warnings.
type Summary struct {
	MinTemp        int
	MaxTemp        int
	MaxPrecipProb  int
	DominantStatus string
	OutfitLabel    string
	Warnings       []string
}

// DaySummary is one day of a weekly briefing.
type DaySummary struct {
	Date    time.Time
	Weekday string
	Records []models.HourlyRecord
	Summary Summary
}

// Current returns the record for the present hour, falling back to the
// nearest stored future record when the present hour is absent. Both
// misses return nil without error.
func (q *Queries) Current(code string, now time.Time) (*models.HourlyRecord, error) {
	local := now.In(q.loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	rec, err := q.store.GetHourly(code, date, local.Hour())
	if err != nil {
		return nil, fmt.Errorf("current hour for %s: %w", code, err)
	}
	if rec != nil {
		return rec, nil
	}
	rec, err = q.store.NearestFuture(code, date, local.Hour())
	if err != nil {
		return nil, fmt.Errorf("nearest future for %s: %w", code, err)
	}
	return rec, nil
}

// MorningWindow returns the stored records for the early-run hours of
// date, ordered by hour.
func (q *Queries) MorningWindow(code string, date time.Time) ([]models.HourlyRecord, error) {
	return q.store.GetHourRange(code, date, morningFromHour, morningToHour)
}

// DayWindow returns the stored records for the waking hours of date,
// ordered by hour.
func (q *Queries) DayWindow(code string, date time.Time) ([]models.HourlyRecord, error) {
	return q.store.GetHourRange(code, date, dayFromHour, dayToHour)
}

// WeeklyMorning summarizes the morning window for today and the six
// following days. Days with no stored records still appear, carrying
// an empty summary.
func (q *Queries) WeeklyMorning(code string, today time.Time) ([]DaySummary, error) {
	local := today.In(q.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	days := make([]DaySummary, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		records, err := q.MorningWindow(code, date)
		if err != nil {
			return nil, fmt.Errorf("weekly morning for %s on %s: %w", code, date.Format("2006-01-02"), err)
		}
		days = append(days, DaySummary{
			Date:    date,
			Weekday: date.Weekday().String(),
			Records: records,
			Summary: q.Summarize(records),
		})
	}
	return days, nil
}

// Briefing is everything a runner checks before heading out: the
// nearest forecast, window summaries, sun times, and matching outfit
// rules for the nearest hour.
type Briefing struct {
	Location models.Location
	Current  *models.HourlyRecord
	Morning  Summary
	Day      Summary
	Sun      *astro.SunTimes
	Outfits  []models.OutfitRule
}

// Briefing assembles the full pre-run view for one location. A failed
// sun calculation drops the sun section and keeps the rest; an
// entirely empty store still yields a briefing with empty summaries.
func (q *Queries) Briefing(location models.Location, rules *outfit.RuleSet, now time.Time) (*Briefing, error) {
	local := now.In(q.loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	current, err := q.Current(location.Code, now)
	if err != nil {
		return nil, err
	}
	morning, err := q.MorningWindow(location.Code, date)
	if err != nil {
		return nil, err
	}
	day, err := q.DayWindow(location.Code, date)
	if err != nil {
		return nil, err
	}

	b := &Briefing{
		Location: location,
		Current:  current,
		Morning:  q.Summarize(morning),
		Day:      q.Summarize(day),
	}

	sun, err := astro.Compute(location.Latitude, location.Longitude, date)
	if err != nil {
		log.Printf("query: sun times for %s: %v", location.Code, err)
	} else {
		b.Sun = sun
	}

	if current != nil && rules != nil {
		humidity := float64(current.Humidity)
		wind := current.WindSpeed
		b.Outfits = rules.Recommend(float64(current.Temperature), &humidity, &wind)
	}
	return b, nil
}

// Summarize reduces a window to its temperature extremes, peak
// precipitation probability, most frequent status, an outfit label for
// the coldest hour, and any warnings. Ties for the dominant status go
// to the status seen first.
func (q *Queries) Summarize(records []models.HourlyRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	s := Summary{
		MinTemp: records[0].Temperature,
		MaxTemp: records[0].Temperature,
	}
	counts := make(map[string]int, len(records))
	var order []string
	for _, r := range records {
		if r.Temperature < s.MinTemp {
			s.MinTemp = r.Temperature
		}
		if r.Temperature > s.MaxTemp {
			s.MaxTemp = r.Temperature
		}
		if r.PrecipProb > s.MaxPrecipProb {
			s.MaxPrecipProb = r.PrecipProb
		}
		if _, seen := counts[r.WeatherStatus]; !seen {
			order = append(order, r.WeatherStatus)
		}
		counts[r.WeatherStatus]++
	}

	best := -1
	for _, status := range order {
		if counts[status] > best {
			best = counts[status]
			s.DominantStatus = status
		}
	}

	s.OutfitLabel = q.ladder.Recommend(s.MinTemp)

	if s.MaxPrecipProb >= rainWarningThreshold {
		s.Warnings = append(s.Warnings, fmt.Sprintf("rain likely (max precipitation probability %d%%)", s.MaxPrecipProb))
	}
	if float64(s.MinTemp) <= outfit.ExtremeColdCutoff {
		s.Warnings = append(s.Warnings, fmt.Sprintf("extreme cold (min %d°C)", s.MinTemp))
	}
	return s
}
