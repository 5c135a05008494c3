package chart

import (
	"fmt"

	"AstroCalc/internal/domain/models"
	"AstroCalc/pkg/util"
)

// maxPlacidusLat is the latitude limit for Placidus houses. Closer to
// the poles parts of the ecliptic never rise and the semi-arc
// proportions are undefined.
const maxPlacidusLat = 66.5

// Angles returns the ascendant and midheaven in tropical ecliptic
// degrees for a given RAMC (right ascension of the MC), obliquity and
// geographic latitude, all in degrees.
func Angles(ramc, eps, lat float64) (asc, mc float64) {
	mc = util.Norm360(util.Atan2d(util.Sind(ramc), util.Cosd(ramc)*util.Cosd(eps)))
	asc = util.Norm360(util.Atan2d(
		util.Cosd(ramc),
		-(util.Sind(ramc)*util.Cosd(eps) + util.Tand(lat)*util.Sind(eps)),
	))
	return asc, mc
}

// eclipticFromRA maps a right ascension back to the ecliptic
// longitude of the point where the house circle meets the ecliptic.
func eclipticFromRA(ra, eps float64) float64 {
	return util.Norm360(util.Atan2d(util.Sind(ra), util.Cosd(ra)*util.Cosd(eps)))
}

// placidusCusp iterates one intermediate cusp. offset is the cusp's
// diurnal arc from the RAMC (30, 60, 120 or 150 degrees), f the
// semi-arc fraction.
func placidusCusp(ramc, eps, lat, offset, f float64) float64 {
	ra := ramc + offset
	for i := 0; i < 12; i++ {
		lon := eclipticFromRA(ra, eps)
		decl := util.Asind(util.Sind(eps) * util.Sind(lon))
		ad := util.Asind(util.Tand(lat) * util.Tand(decl))
		ra = ramc + offset + f*ad
	}
	return eclipticFromRA(ra, eps)
}

// PlacidusCusps computes the twelve Placidus cusps. Cusps[0] is the
// first house cusp (the ascendant); opposite cusps are antipodal.
func PlacidusCusps(ramc, eps, lat float64) ([12]float64, error) {
	var cusps [12]float64
	if lat > maxPlacidusLat || lat < -maxPlacidusLat {
		return cusps, fmt.Errorf("%w: latitude %.4f beyond +/-%.1f for placidus houses",
			models.ErrInvalidLatitude, lat, maxPlacidusLat)
	}

	asc, mc := Angles(ramc, eps, lat)
	c11 := placidusCusp(ramc, eps, lat, 30, 1.0/3)
	c12 := placidusCusp(ramc, eps, lat, 60, 2.0/3)
	c2 := placidusCusp(ramc, eps, lat, 120, 2.0/3)
	c3 := placidusCusp(ramc, eps, lat, 150, 1.0/3)

	cusps[0] = asc
	cusps[1] = c2
	cusps[2] = c3
	cusps[3] = util.Norm360(mc + 180)
	cusps[4] = util.Norm360(c11 + 180)
	cusps[5] = util.Norm360(c12 + 180)
	cusps[6] = util.Norm360(asc + 180)
	cusps[7] = util.Norm360(c2 + 180)
	cusps[8] = util.Norm360(c3 + 180)
	cusps[9] = mc
	cusps[10] = c11
	cusps[11] = c12
	return cusps, nil
}

// WholeSignCusps puts every cusp on a sign boundary starting from the
// sign holding the ascendant.
func WholeSignCusps(asc float64) [12]float64 {
	var cusps [12]float64
	start := float64(int(util.Norm360(asc)/30)) * 30
	for i := range cusps {
		cusps[i] = util.Norm360(start + float64(i)*30)
	}
	return cusps
}

// HouseOf returns the 1-based house holding lon: the house whose
// forward arc from its cusp to the next contains the longitude.
func HouseOf(lon float64, cusps [12]float64) int {
	for i := 0; i < 12; i++ {
		next := cusps[(i+1)%12]
		span := util.Norm360(next - cusps[i])
		if span == 0 {
			span = 360 // degenerate, single-house chart
		}
		if util.Norm360(lon-cusps[i]) < span {
			return i + 1
		}
	}
	return 12
}
