package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jaeho/runbrief/internal/models"
)

const dateLayout = "2006-01-02"

type Store struct {
	db  *sql.DB
	loc *time.Location
}

func New(db *sql.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc}
}

// UpsertHourly writes one hourly record, replacing any existing record
// for the same (location_code, date, hour). The insert-or-update runs as
// a single statement so concurrent re-scrapes of the same location
// cannot produce duplicates or lost rows.
func (s *Store) UpsertHourly(r models.HourlyRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO hourly_records (location_code, date, hour, temperature, weather_status, precip_prob, precip_amount, humidity, wind_direction, wind_speed, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(location_code, date, hour) DO UPDATE SET
			temperature = excluded.temperature,
			weather_status = excluded.weather_status,
			precip_prob = excluded.precip_prob,
			precip_amount = excluded.precip_amount,
			humidity = excluded.humidity,
			wind_direction = excluded.wind_direction,
			wind_speed = excluded.wind_speed,
			updated_at = excluded.updated_at
	`, r.Code, r.Date.Format(dateLayout), r.Hour, r.Temperature, r.WeatherStatus,
		r.PrecipProb, r.PrecipAmount, r.Humidity, r.WindDirection, r.WindSpeed,
		r.UpdatedAt)
	return err
}

func (s *Store) GetHourly(code string, date time.Time, hour int) (*models.HourlyRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, location_code, date, hour, temperature, weather_status, precip_prob, precip_amount, humidity, wind_direction, wind_speed, updated_at
		FROM hourly_records
		WHERE location_code = ? AND date = ? AND hour = ?
	`, code, date.Format(dateLayout), hour)
	return scanHourly(row)
}

// GetHourRange returns records for hours in [fromHour, toHour] on date,
// ordered by hour ascending. Missing hours are simply absent.
func (s *Store) GetHourRange(code string, date time.Time, fromHour, toHour int) ([]models.HourlyRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, location_code, date, hour, temperature, weather_status, precip_prob, precip_amount, humidity, wind_direction, wind_speed, updated_at
		FROM hourly_records
		WHERE location_code = ? AND date = ? AND hour >= ? AND hour <= ?
		ORDER BY hour ASC
	`, code, date.Format(dateLayout), fromHour, toHour)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHourly(rows)
}

// NearestFuture returns the chronologically first record strictly after
// (date, hour): a later hour on the same date, or any hour on a later
// date. Returns nil when nothing newer is stored.
func (s *Store) NearestFuture(code string, date time.Time, hour int) (*models.HourlyRecord, error) {
	dateStr := date.Format(dateLayout)
	row := s.db.QueryRow(`
		SELECT id, location_code, date, hour, temperature, weather_status, precip_prob, precip_amount, humidity, wind_direction, wind_speed, updated_at
		FROM hourly_records
		WHERE location_code = ? AND (date > ? OR (date = ? AND hour > ?))
		ORDER BY date ASC, hour ASC
		LIMIT 1
	`, code, dateStr, dateStr, hour)
	return scanHourly(row)
}

// CountHourly reports how many records exist for one location, across
// all dates.
func (s *Store) CountHourly(code string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM hourly_records WHERE location_code = ?`, code).Scan(&n)
	return n, err
}

type hourlyScanner interface {
	Scan(dest ...any) error
}

func scanHourlyInto(sc hourlyScanner, r *models.HourlyRecord) error {
	var dateStr string
	if err := sc.Scan(&r.ID, &r.Code, &dateStr, &r.Hour, &r.Temperature,
		&r.WeatherStatus, &r.PrecipProb, &r.PrecipAmount, &r.Humidity,
		&r.WindDirection, &r.WindSpeed, &r.UpdatedAt); err != nil {
		return err
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return fmt.Errorf("parse record date %q: %w", dateStr, err)
	}
	r.Date = date
	return nil
}

func scanHourly(row *sql.Row) (*models.HourlyRecord, error) {
	var r models.HourlyRecord
	err := scanHourlyInto(row, &r)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func collectHourly(rows *sql.Rows) ([]models.HourlyRecord, error) {
	var records []models.HourlyRecord
	for rows.Next() {
		var r models.HourlyRecord
		if err := scanHourlyInto(rows, &r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) UpsertLocation(l models.Location) error {
	_, err := s.db.Exec(`
		INSERT INTO locations (code, name, alias, latitude, longitude)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			alias = excluded.alias,
			latitude = excluded.latitude,
			longitude = excluded.longitude
	`, l.Code, l.Name, l.Alias, l.Latitude, l.Longitude)
	return err
}

func (s *Store) GetLocation(code string) (*models.Location, error) {
	row := s.db.QueryRow(`SELECT code, name, alias, latitude, longitude, created_at FROM locations WHERE code = ?`, code)
	var l models.Location
	err := row.Scan(&l.Code, &l.Name, &l.Alias, &l.Latitude, &l.Longitude, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) ListLocations() ([]models.Location, error) {
	rows, err := s.db.Query(`SELECT code, name, alias, latitude, longitude, created_at FROM locations ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.Code, &l.Name, &l.Alias, &l.Latitude, &l.Longitude, &l.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (s *Store) DeleteLocation(code string) error {
	_, err := s.db.Exec(`DELETE FROM locations WHERE code = ?`, code)
	return err
}
