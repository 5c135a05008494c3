package models

import (
	"fmt"
	"time"

	"AstroCalc/pkg/util"
)

// Subject is a resolved birth record: instant, place and derived
// Julian Day. Immutable once resolved; geocoding happens upstream.
type Subject struct {
	Name        string    `json:"name,omitempty"`
	BirthUTC    time.Time `json:"birth_utc"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ElevationM  float64   `json:"elevation_m,omitempty"`
	TZOffsetMin int       `json:"tz_offset_min"`
	JulianDay   float64   `json:"julian_day"`
}

// NewSubject resolves a subject from a local birth instant and its
// UTC offset in minutes.
func NewSubject(name string, birthLocal time.Time, tzOffsetMin int, lat, lon, elevM float64) Subject {
	utc := birthLocal.Add(-time.Duration(tzOffsetMin) * time.Minute).UTC()
	return Subject{
		Name:        name,
		BirthUTC:    utc,
		Latitude:    lat,
		Longitude:   lon,
		ElevationM:  elevM,
		TZOffsetMin: tzOffsetMin,
		JulianDay:   util.JulianDay(utc),
	}
}

// Fingerprint is a stable identity string for cache keys. Coordinates
// are rounded to 1e-4 degrees (~11 m) so re-geocoded subjects hash
// identically.
func (s Subject) Fingerprint() string {
	return fmt.Sprintf("%d:%.4f:%.4f", s.BirthUTC.Unix(), s.Latitude, s.Longitude)
}
