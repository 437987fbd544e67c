// Package astro computes sunrise and sunset times for a coordinate.
package astro

import (
	"fmt"
	"time"

	"github.com/kelvins/sunrisesunset"
)

// Briefing output is presented on a fixed UTC+9 clock regardless of
// host timezone, matching the forecast source's own clock.
const displayUTCOffset = 9.0

// SunTimes holds the computed rise and set for one date, already
// shifted to the display clock.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// Compute returns sunrise and sunset for the given coordinate and
// date. Out-of-range coordinates and solver failures return an error;
// callers render the briefing without a sun section in that case.
func Compute(latitude, longitude float64, date time.Time) (*SunTimes, error) {
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("latitude %f out of range", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("longitude %f out of range", longitude)
	}

	sunrise, sunset, err := sunrisesunset.GetSunriseSunset(latitude, longitude, displayUTCOffset, date)
	if err != nil {
		return nil, fmt.Errorf("sunrise/sunset for (%f, %f): %w", latitude, longitude, err)
	}
	return &SunTimes{Sunrise: sunrise, Sunset: sunset}, nil
}
