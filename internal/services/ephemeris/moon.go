package ephemeris

import (
	"AstroCalc/pkg/util"
)

// lunarTerm is one periodic term of the lunar theory: multiples of
// the fundamental arguments D, M, M', F with sine (longitude, 1e-6
// deg) and cosine (distance, 1e-3 km) coefficients.
type lunarTerm struct {
	d, m, mp, f int
	sinL        float64
	cosR        float64
}

// lunarLonTerms are the dominant longitude/distance terms of the
// lunar theory, enough for a few hundredths of a degree.
var lunarLonTerms = []lunarTerm{
	{0, 0, 1, 0, 6288774, -20905355},
	{2, 0, -1, 0, 1274027, -3699111},
	{2, 0, 0, 0, 658314, -2955968},
	{0, 0, 2, 0, 213618, -569925},
	{0, 1, 0, 0, -185116, 48888},
	{0, 0, 0, 2, -114332, -3149},
	{2, 0, -2, 0, 58793, 246158},
	{2, -1, -1, 0, 57066, -152138},
	{2, 0, 1, 0, 53322, -170733},
	{2, -1, 0, 0, 45758, -204586},
	{0, 1, -1, 0, -40923, -129620},
	{1, 0, 0, 0, -34720, 108743},
	{0, 1, 1, 0, -30383, 104755},
	{2, 0, 0, -2, 15327, 10321},
	{0, 0, 1, 2, -12528, 0},
	{0, 0, 1, -2, 10980, 79661},
	{4, 0, -1, 0, 10675, -34782},
	{0, 0, 3, 0, 10034, -23210},
	{4, 0, -2, 0, 8548, -21636},
	{2, 1, -1, 0, -7888, 24208},
	{2, 1, 0, 0, -6766, 30824},
	{1, 0, -1, 0, -5163, -8379},
	{1, 1, 0, 0, 4987, -16675},
	{2, -1, 1, 0, 4036, -12831},
	{2, 0, 2, 0, 3994, -10445},
	{4, 0, 0, 0, 3861, -11650},
	{2, 0, -3, 0, 3665, 14403},
	{0, 1, -2, 0, -2689, -7003},
	{2, 0, -1, 2, -2602, 0},
	{2, -1, -2, 0, 2390, 10056},
	{1, 0, 1, 0, -2348, 6322},
	{2, -2, 0, 0, 2236, -9884},
}

// lunarLatTerms are the dominant latitude terms (sine, 1e-6 deg).
var lunarLatTerms = []lunarTerm{
	{0, 0, 0, 1, 5128122, 0},
	{0, 0, 1, 1, 280602, 0},
	{0, 0, 1, -1, 277693, 0},
	{2, 0, 0, -1, 173237, 0},
	{2, 0, -1, 1, 55413, 0},
	{2, 0, -1, -1, 46271, 0},
	{2, 0, 0, 1, 32573, 0},
	{0, 0, 2, 1, 17198, 0},
	{2, 0, 1, -1, 9266, 0},
	{0, 0, 2, -1, 8822, 0},
	{2, -1, 0, -1, 8216, 0},
	{2, 0, -2, -1, 4324, 0},
	{2, 0, 1, 1, 4200, 0},
	{2, 1, 0, -1, -3359, 0},
	{2, -1, -1, 1, 2463, 0},
	{2, -1, 0, 1, 2211, 0},
	{2, -1, -1, -1, 2065, 0},
	{0, 1, -1, -1, -1870, 0},
	{4, 0, -1, -1, 1828, 0},
	{0, 1, 0, 1, -1794, 0},
}

// MoonPosition returns the Moon's apparent geocentric ecliptic
// longitude and latitude in degrees of date and its distance in km.
func MoonPosition(jd float64) (lon, lat, distKM float64) {
	t := centuries(jd)

	lp := util.Norm360(218.3164477 + 481267.88123421*t - 0.0015786*t*t +
		t*t*t/538841 - t*t*t*t/65194000)
	d := util.Norm360(297.8501921 + 445267.1114034*t - 0.0018819*t*t +
		t*t*t/545868 - t*t*t*t/113065000)
	m := util.Norm360(357.5291092 + 35999.0502909*t - 0.0001536*t*t +
		t*t*t/24490000)
	mp := util.Norm360(134.9633964 + 477198.8675055*t + 0.0087414*t*t +
		t*t*t/69699 - t*t*t*t/14712000)
	f := util.Norm360(93.2720950 + 483202.0175233*t - 0.0036539*t*t -
		t*t*t/3526000 + t*t*t*t/863310000)

	// eccentricity damping for terms involving the solar anomaly
	e := 1 - 0.002516*t - 0.0000074*t*t

	a1 := util.Norm360(119.75 + 131.849*t)
	a2 := util.Norm360(53.09 + 479264.290*t)
	a3 := util.Norm360(313.45 + 481266.484*t)

	var sumL, sumR, sumB float64
	for _, tm := range lunarLonTerms {
		arg := float64(tm.d)*d + float64(tm.m)*m + float64(tm.mp)*mp + float64(tm.f)*f
		ef := 1.0
		if tm.m == 1 || tm.m == -1 {
			ef = e
		} else if tm.m == 2 || tm.m == -2 {
			ef = e * e
		}
		sumL += tm.sinL * ef * util.Sind(arg)
		sumR += tm.cosR * ef * util.Cosd(arg)
	}
	sumL += 3958*util.Sind(a1) + 1962*util.Sind(lp-f) + 318*util.Sind(a2)

	for _, tm := range lunarLatTerms {
		arg := float64(tm.d)*d + float64(tm.m)*m + float64(tm.mp)*mp + float64(tm.f)*f
		ef := 1.0
		if tm.m == 1 || tm.m == -1 {
			ef = e
		}
		sumB += tm.sinL * ef * util.Sind(arg)
	}
	sumB += -2235*util.Sind(lp) + 382*util.Sind(a3) +
		175*util.Sind(a1-f) + 175*util.Sind(a1+f) +
		127*util.Sind(lp-mp) - 115*util.Sind(lp+mp)

	lon = util.Norm360(lp + sumL/1e6)
	lat = sumB / 1e6
	distKM = 385000.56 + sumR/1000
	return lon, lat, distKM
}

// KMPerAU converts the Moon's kilometre distance to AU for a uniform
// BodyPosition unit.
const KMPerAU = 149597870.7

// MoonDistanceAU converts km to AU.
func MoonDistanceAU(km float64) float64 { return km / KMPerAU }
