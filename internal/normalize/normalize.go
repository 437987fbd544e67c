// Package normalize converts raw extracted page strings into typed
// hourly records. Numeric fields default to zero on parse failure
// instead of rejecting the row: a forecast hour with a valid timestamp
// and a flaky numeric cell is more useful stored-with-zero than absent.
// Only a row without a parseable timestamp is dropped.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/jaeho/runbrief/internal/models"
	"github.com/jaeho/runbrief/internal/scrape"
)

// Normalize converts one raw hourly column into a storable record.
// ok is false when the row must be skipped (unparseable timestamp).
func Normalize(raw scrape.RawHourly, code string, now time.Time) (models.HourlyRecord, bool) {
	date, hour, ok := parseCompactTimestamp(raw.Timestamp)
	if !ok {
		return models.HourlyRecord{}, false
	}

	return models.HourlyRecord{
		Code:          code,
		Date:          date,
		Hour:          hour,
		Temperature:   IntOrZero(raw.Temperature),
		WeatherStatus: raw.WeatherStatus,
		PrecipProb:    PercentOrZero(raw.PrecipProb),
		PrecipAmount:  raw.PrecipAmount,
		Humidity:      PercentOrZero(raw.Humidity),
		WindDirection: raw.WindDirection,
		WindSpeed:     FloatOrZero(raw.WindSpeed),
		UpdatedAt:     now.UTC(),
	}, true
}

// NormalizeAll applies Normalize to every raw row, silently dropping
// rows that signal a skip.
func NormalizeAll(raws []scrape.RawHourly, code string, now time.Time) []models.HourlyRecord {
	records := make([]models.HourlyRecord, 0, len(raws))
	for _, raw := range raws {
		if r, ok := Normalize(raw, code, now); ok {
			records = append(records, r)
		}
	}
	return records
}

// Snapshot converts the best-effort current-conditions block, keeping
// the source strings as-is. Returns nil when nothing was captured.
func Snapshot(raw *scrape.RawCurrent) *models.CurrentSnapshot {
	if raw == nil {
		return nil
	}
	return &models.CurrentSnapshot{
		Temperature:   raw.Temperature,
		WeatherStatus: raw.WeatherStatus,
		Precipitation: raw.Precipitation,
		Humidity:      raw.Humidity,
	}
}

// parseCompactTimestamp decodes the source's fixed-width YYYYMMDDHH
// header attribute. Anything shorter than 10 characters, or with
// non-numeric positions, is a skip.
func parseCompactTimestamp(ts string) (time.Time, int, bool) {
	if len(ts) < 10 {
		return time.Time{}, 0, false
	}
	year, err := strconv.Atoi(ts[0:4])
	if err != nil {
		return time.Time{}, 0, false
	}
	month, err := strconv.Atoi(ts[4:6])
	if err != nil {
		return time.Time{}, 0, false
	}
	day, err := strconv.Atoi(ts[6:8])
	if err != nil {
		return time.Time{}, 0, false
	}
	hour, err := strconv.Atoi(ts[8:10])
	if err != nil {
		return time.Time{}, 0, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || hour < 0 || hour > 23 {
		return time.Time{}, 0, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), hour, true
}

// IntOrZero parses an integer, defaulting to 0 on any failure.
func IntOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// PercentOrZero strips one trailing percent marker and parses the rest
// as an integer, defaulting to 0 when what remains is not all digits.
func PercentOrZero(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// FloatOrZero parses a float, treating the source's "-" placeholder and
// empty strings as 0.
func FloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
