// Package ephemeris computes geocentric ecliptic positions from
// closed-form series: a truncated solar theory for the Sun, the main
// lunar periodic terms for the Moon, and osculating Keplerian
// elements for the planets. Everything is a pure function of Julian
// Day, so results are bit-identical across calls.
package ephemeris

import (
	"AstroCalc/pkg/util"
)

// J2000 is the Julian Day of the reference epoch.
const J2000 = 2451545.0

// DaysPerCentury converts Julian Days to Julian centuries.
const DaysPerCentury = 36525.0

// centuries returns Julian centuries since J2000.
func centuries(jd float64) float64 { return (jd - J2000) / DaysPerCentury }

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(jd float64) float64 {
	t := centuries(jd)
	return 23.4392911 - 0.0130042*t - 1.64e-7*t*t + 5.04e-7*t*t*t
}

// GMST returns Greenwich mean sidereal time in degrees.
func GMST(jd float64) float64 {
	t := centuries(jd)
	return util.Norm360(280.46061837 + 360.98564736629*(jd-J2000) +
		0.000387933*t*t - t*t*t/38710000)
}

// precessionFromJ2000 is the accumulated general precession in
// longitude, degrees, used to carry J2000-frame planet longitudes to
// the equinox of date.
func precessionFromJ2000(jd float64) float64 {
	return 1.39697 * centuries(jd)
}

// Ayanamsa returns the Lahiri ayanamsa in degrees: 23°51'11" at
// J2000 moving at the general precession rate of 50.2888"/yr.
func Ayanamsa(jd float64) float64 {
	years := (jd - J2000) / 365.25
	return 23.853 + years*(50.2888/3600)
}

// MeanLunarNode returns the mean ascending node of the lunar orbit
// in degrees of date. The node regresses, so its daily motion is
// negative.
func MeanLunarNode(jd float64) float64 {
	t := centuries(jd)
	return util.Norm360(125.0445479 - 1934.1362891*t + 0.0020754*t*t +
		t*t*t/467441 - t*t*t*t/60616000)
}
