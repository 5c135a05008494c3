package models

import (
	"time"
)

// HouseSystem selects the house computation algorithm.
type HouseSystem string

const (
	Placidus  HouseSystem = "placidus"
	WholeSign HouseSystem = "whole-sign"
)

// IsValidHouseSystem reports whether hs is supported.
func IsValidHouseSystem(hs HouseSystem) bool {
	return hs == Placidus || hs == WholeSign
}

// Zodiac selects the reference frame for longitudes.
type Zodiac string

const (
	Sidereal Zodiac = "sidereal"
	Tropical Zodiac = "tropical"
)

// BodyPosition is one body's state at a single instant. Longitude and
// latitude are ecliptic degrees, distance is AU (km for the Moon's
// callers should use DistanceKM), speed is degrees per day.
type BodyPosition struct {
	Body       Body    `json:"body"`
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	DistanceAU float64 `json:"distance_au"`
	Speed      float64 `json:"speed"`
	Retrograde bool    `json:"retrograde"`
	House      int     `json:"house,omitempty"` // 1..12, set during chart build
}

// Sign returns the zero-based sign index (0 = Aries) of the position.
func (p BodyPosition) Sign() int { return int(p.Longitude/30) % 12 }

// SignDegree returns the degree within the sign, [0, 30).
func (p BodyPosition) SignDegree() float64 { return p.Longitude - float64(p.Sign())*30 }

// SignNames indexed by sign number, 0 = Aries.
var SignNames = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Chart is the full figure for one subject at one instant: positions,
// cusps and angles. It is a pure value; identical inputs always
// produce an identical chart.
type Chart struct {
	Subject     Subject        `json:"subject"`
	AsOf        time.Time      `json:"as_of"`
	JulianDay   float64        `json:"julian_day"`
	HouseSystem HouseSystem    `json:"house_system"`
	Zodiac      Zodiac         `json:"zodiac"`
	Ayanamsa    float64        `json:"ayanamsa,omitempty"`
	Positions   []BodyPosition `json:"positions"`
	Cusps       [12]float64    `json:"cusps"` // Cusps[0] = 1st house cusp
	Asc         float64        `json:"ascendant"`
	MC          float64        `json:"midheaven"`
}

// Position returns the position of a body, including the Asc/MC
// pseudo-points, and whether it was found.
func (c *Chart) Position(b Body) (BodyPosition, bool) {
	switch b {
	case Ascendant:
		return BodyPosition{Body: Ascendant, Longitude: c.Asc, House: 1}, true
	case Midheaven:
		return BodyPosition{Body: Midheaven, Longitude: c.MC, House: 10}, true
	}
	for _, p := range c.Positions {
		if p.Body == b {
			return p, true
		}
	}
	return BodyPosition{}, false
}

// Points returns all aspectable points: every body plus Asc and MC.
func (c *Chart) Points() []BodyPosition {
	out := make([]BodyPosition, 0, len(c.Positions)+2)
	out = append(out, c.Positions...)
	out = append(out,
		BodyPosition{Body: Ascendant, Longitude: c.Asc, House: 1},
		BodyPosition{Body: Midheaven, Longitude: c.MC, House: 10},
	)
	return out
}

// DivisionalChart is a harmonic transform of a base chart. Positions
// carry the remapped longitudes; houses are counted from the varga
// ascendant sign, whole-sign style.
type DivisionalChart struct {
	Factor    int            `json:"factor"`
	Base      *Chart         `json:"-"`
	Asc       float64        `json:"ascendant"`
	Positions []BodyPosition `json:"positions"`
}
