package store

import (
	"database/sql"

	"github.com/jaeho/runbrief/internal/models"
)

// InsertOutfitRule stores a new rule and returns its id. Overlapping
// temperature ranges are allowed; the rule engine returns every match.
func (s *Store) InsertOutfitRule(r models.OutfitRule) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO outfit_rules (min_temp, max_temp, humidity_min, humidity_max, wind_speed_min, wind_speed_max, top, bottom, accessories, notes, priority, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.MinTemp, r.MaxTemp, r.HumidityMin, r.HumidityMax, r.WindMin, r.WindMax,
		r.Top, r.Bottom, r.Accessories, r.Notes, r.Priority, r.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListOutfitRules returns active rules in storage order. Priority is a
// display concern and is resolved by the rule engine, not here.
func (s *Store) ListOutfitRules() ([]models.OutfitRule, error) {
	rows, err := s.db.Query(`
		SELECT id, min_temp, max_temp, humidity_min, humidity_max, wind_speed_min, wind_speed_max, top, bottom, accessories, notes, priority, active, created_at, updated_at
		FROM outfit_rules
		WHERE active = TRUE
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.OutfitRule
	for rows.Next() {
		var r models.OutfitRule
		if err := rows.Scan(&r.ID, &r.MinTemp, &r.MaxTemp, &r.HumidityMin, &r.HumidityMax,
			&r.WindMin, &r.WindMax, &r.Top, &r.Bottom, &r.Accessories, &r.Notes,
			&r.Priority, &r.Active, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *Store) GetOutfitRule(id int64) (*models.OutfitRule, error) {
	row := s.db.QueryRow(`
		SELECT id, min_temp, max_temp, humidity_min, humidity_max, wind_speed_min, wind_speed_max, top, bottom, accessories, notes, priority, active, created_at, updated_at
		FROM outfit_rules
		WHERE id = ?
	`, id)
	var r models.OutfitRule
	err := row.Scan(&r.ID, &r.MinTemp, &r.MaxTemp, &r.HumidityMin, &r.HumidityMax,
		&r.WindMin, &r.WindMax, &r.Top, &r.Bottom, &r.Accessories, &r.Notes,
		&r.Priority, &r.Active, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) DeleteOutfitRule(id int64) error {
	_, err := s.db.Exec(`DELETE FROM outfit_rules WHERE id = ?`, id)
	return err
}

func (s *Store) CountOutfitRules() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM outfit_rules`).Scan(&n)
	return n, err
}
