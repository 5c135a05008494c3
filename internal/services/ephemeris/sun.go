package ephemeris

import (
	"AstroCalc/pkg/util"
)

// SunPosition returns the Sun's apparent geocentric ecliptic
// longitude (degrees of date), latitude (always 0 at this precision)
// and distance in AU. Accuracy is about 0.01 degrees over 1900-2100.
func SunPosition(jd float64) (lon, lat, distAU float64) {
	t := centuries(jd)

	l0 := util.Norm360(280.46646 + 36000.76983*t + 0.0003032*t*t)
	m := util.Norm360(357.52911 + 35999.05029*t - 0.0001537*t*t)

	c := (1.914602-0.004817*t-0.000014*t*t)*util.Sind(m) +
		(0.019993-0.000101*t)*util.Sind(2*m) +
		0.000289*util.Sind(3*m)

	trueLon := l0 + c

	// nutation and aberration
	omega := 125.04 - 1934.136*t
	lon = util.Norm360(trueLon - 0.00569 - 0.00478*util.Sind(omega))

	e := 0.016708634 - 0.000042037*t
	nu := m + c
	distAU = 1.000001018 * (1 - e*e) / (1 + e*util.Cosd(nu))
	return lon, 0, distAU
}
