package ephemeris

import (
	"math"

	"AstroCalc/internal/domain/models"
	"AstroCalc/pkg/util"
)

// orbitalElements holds osculating Keplerian elements at J2000 and
// their centennial rates: semi-major axis (AU), eccentricity,
// inclination, mean longitude, longitude of perihelion and longitude
// of the ascending node (degrees). The frame is the J2000 ecliptic.
type orbitalElements struct {
	a, e, i, l, peri, node             float64
	aDot, eDot, iDot, lDot, pDot, nDot float64
}

var planetElements = map[models.Body]orbitalElements{
	models.Mercury: {
		0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
	},
	models.Venus: {
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	},
	models.Mars: {
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	},
	models.Jupiter: {
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	},
	models.Saturn: {
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	},
	models.Uranus: {
		19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589,
	},
	models.Neptune: {
		30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664,
	},
	models.Pluto: {
		39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
		-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482,
	},
}

// earthElements are the Earth-Moon barycenter elements, used as the
// observer position for geocentric reduction.
var earthElements = orbitalElements{
	1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
	0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
}

// solveKepler iterates Newton's method on Kepler's equation. The
// fixed iteration count keeps the result deterministic; convergence
// is far below float precision for every solar-system eccentricity.
func solveKepler(meanAnomalyRad, e float64) float64 {
	ea := meanAnomalyRad
	for i := 0; i < 20; i++ {
		ea = ea - (ea-e*math.Sin(ea)-meanAnomalyRad)/(1-e*math.Cos(ea))
	}
	return ea
}

// heliocentric returns the J2000-ecliptic rectangular position in AU.
func (el orbitalElements) heliocentric(jd float64) (x, y, z float64) {
	t := centuries(jd)
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	incl := el.i + el.iDot*t
	l := el.l + el.lDot*t
	peri := el.peri + el.pDot*t
	node := el.node + el.nDot*t

	m := util.Norm360(l-peri) * math.Pi / 180
	ea := solveKepler(m, e)

	xp := a * (math.Cos(ea) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ea)

	argPeri := (peri - node) * math.Pi / 180
	nodeR := node * math.Pi / 180
	inclR := incl * math.Pi / 180

	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	co, so := math.Cos(nodeR), math.Sin(nodeR)
	ci, si := math.Cos(inclR), math.Sin(inclR)

	x = (cw*co-sw*so*ci)*xp + (-sw*co-cw*so*ci)*yp
	y = (cw*so+sw*co*ci)*xp + (-sw*so+cw*co*ci)*yp
	z = (sw*si)*xp + (cw*si)*yp
	return x, y, z
}

// PlanetPosition returns a planet's geocentric ecliptic longitude and
// latitude in degrees of date plus its distance in AU. Supported for
// the bodies in planetElements only.
func PlanetPosition(body models.Body, jd float64) (lon, lat, distAU float64, ok bool) {
	el, found := planetElements[body]
	if !found {
		return 0, 0, 0, false
	}
	px, py, pz := el.heliocentric(jd)
	ex, ey, ez := earthElements.heliocentric(jd)
	gx, gy, gz := px-ex, py-ey, pz-ez

	lon = util.Norm360(util.Atan2d(gy, gx) + precessionFromJ2000(jd))
	lat = util.Asind(gz / math.Sqrt(gx*gx+gy*gy+gz*gz))
	distAU = math.Sqrt(gx*gx + gy*gy + gz*gz)
	return lon, lat, distAU, true
}
