package outfit

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/jaeho/runbrief/internal/models"
)

// Extreme-condition cutoffs. At or beyond either one the rule table is
// bypassed entirely and a single advisory is returned.
const (
	ExtremeHeatCutoff = 29.0
	ExtremeColdCutoff = -7.0
)

// RuleSet evaluates persisted outfit rules against observed
// conditions. It holds a private copy of the rules; reloading after a
// rule change means building a new RuleSet.
type RuleSet struct {
	rules []models.OutfitRule
}

func NewRuleSet(rules []models.OutfitRule) *RuleSet {
	copied := make([]models.OutfitRule, len(rules))
	copy(copied, rules)
	return &RuleSet{rules: copied}
}

// Recommend returns every active rule matching the observed
// conditions, ordered by priority then id. Humidity and wind are
// optional on both sides: a rule bound only filters when the
// observation carries that dimension, and an absent bound never
// rejects. Temperatures at or beyond the extreme cutoffs short-circuit
// to exactly one synthetic advisory.
func (s *RuleSet) Recommend(temp float64, humidity, windSpeed *float64) []models.OutfitRule {
	if temp >= ExtremeHeatCutoff {
		return []models.OutfitRule{extremeHeatAdvisory(temp)}
	}
	if temp <= ExtremeColdCutoff {
		return []models.OutfitRule{extremeColdAdvisory(temp)}
	}

	var matches []models.OutfitRule
	for _, r := range s.rules {
		if !r.Active {
			continue
		}
		if ruleMatches(r, temp, humidity, windSpeed) {
			matches = append(matches, r)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Priority != matches[j].Priority {
			return matches[i].Priority < matches[j].Priority
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}

// ruleMatches applies the half-open temperature interval [min, max)
// and the inclusive humidity and wind bounds.
func ruleMatches(r models.OutfitRule, temp float64, humidity, windSpeed *float64) bool {
	if temp < r.MinTemp {
		return false
	}
	if r.MaxTemp.Valid && temp >= r.MaxTemp.Float64 {
		return false
	}
	if humidity != nil {
		if r.HumidityMin.Valid && *humidity < r.HumidityMin.Float64 {
			return false
		}
		if r.HumidityMax.Valid && *humidity > r.HumidityMax.Float64 {
			return false
		}
	}
	if windSpeed != nil {
		if r.WindMin.Valid && *windSpeed < r.WindMin.Float64 {
			return false
		}
		if r.WindMax.Valid && *windSpeed > r.WindMax.Float64 {
			return false
		}
	}
	return true
}

func extremeHeatAdvisory(temp float64) models.OutfitRule {
	return models.OutfitRule{
		MinTemp:  temp,
		MaxTemp:  sql.NullFloat64{Float64: temp, Valid: true},
		Top:      "Outdoor running inadvisable",
		Bottom:   "Indoor training recommended",
		Notes:    fmt.Sprintf("%.0f°C is in the heat-injury range; move the session indoors or to dawn hours", temp),
		Priority: 0,
		Active:   true,
	}
}

func extremeColdAdvisory(temp float64) models.OutfitRule {
	return models.OutfitRule{
		MinTemp:  temp,
		MaxTemp:  sql.NullFloat64{Float64: temp, Valid: true},
		Top:      "Outdoor running inadvisable",
		Bottom:   "Indoor training recommended",
		Notes:    fmt.Sprintf("%.0f°C carries frostbite and airway risk; treadmill or strength work instead", temp),
		Priority: 0,
		Active:   true,
	}
}
