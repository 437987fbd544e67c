package models

import (
	"database/sql"
	"time"
)

// Location is a forecast target registered for briefings. Code is the
// opaque identifier issued by the upstream weather site; it is never
// generated locally.
type Location struct {
	Code      string
	Name      string
	Alias     sql.NullString
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// HourlyRecord is one stored forecast observation. At most one record
// exists per (Code, Date, Hour); re-extraction updates in place.
type HourlyRecord struct {
	ID            int64
	Code          string
	Date          time.Time // midnight UTC, date component only
	Hour          int       // 0-23
	Temperature   int       // °C
	WeatherStatus string
	PrecipProb    int    // percent
	PrecipAmount  string // qualitative passthrough from the source
	Humidity      int    // percent
	WindDirection string // "none" when the source gave no usable value
	WindSpeed     float64
	UpdatedAt     time.Time
}

// CurrentSnapshot is the best-effort current-conditions reading taken
// alongside an hourly extraction. It is never persisted.
type CurrentSnapshot struct {
	Temperature   string
	WeatherStatus string
	Precipitation string
	Humidity      string
}

// OutfitRule is one range-bounded clothing recommendation. Null bounds
// never reject a match. Lower Priority sorts first for display.
type OutfitRule struct {
	ID           int64
	MinTemp      float64
	MaxTemp      sql.NullFloat64
	HumidityMin  sql.NullFloat64
	HumidityMax  sql.NullFloat64
	WindMin      sql.NullFloat64
	WindMax      sql.NullFloat64
	Top          string
	Bottom       string
	Accessories  string
	Notes        string
	Priority     int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
