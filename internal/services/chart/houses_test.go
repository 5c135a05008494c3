package chart

import (
	"errors"
	"math"
	"testing"

	"AstroCalc/internal/domain/models"
)

// New Delhi, 1990-06-15 12:00 UTC: RAMC and obliquity precomputed
// from sidereal time at 77.2090 E.
const (
	delhiRAMC = 160.71726
	delhiEps  = 23.44053
	delhiLat  = 28.6139
)

func TestAngles(t *testing.T) {
	asc, mc := Angles(delhiRAMC, delhiEps, delhiLat)
	if math.Abs(asc-241.14992) > 0.001 {
		t.Fatalf("asc = %v, want 241.14992", asc)
	}
	if math.Abs(mc-159.12682) > 0.001 {
		t.Fatalf("mc = %v, want 159.12682", mc)
	}
}

func TestAnglesEquator(t *testing.T) {
	// on the equator the ascendant is 90 degrees of RA east of the MC
	asc, mc := Angles(0, delhiEps, 0)
	if math.Abs(mc-0) > 1e-9 {
		t.Fatalf("mc = %v, want 0", mc)
	}
	if asc <= mc || asc >= 180 {
		t.Fatalf("asc = %v, want in (0, 180)", asc)
	}
}

func TestPlacidusCusps(t *testing.T) {
	cusps, err := PlacidusCusps(delhiRAMC, delhiEps, delhiLat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[int]float64{
		0:  241.14992, // asc
		9:  159.12682, // mc
		10: 190.8111,
		11: 217.8217,
		1:  271.4677,
		2:  304.7483,
	}
	for i, w := range want {
		if math.Abs(cusps[i]-w) > 0.001 {
			t.Fatalf("cusp %d = %v, want %v", i+1, cusps[i], w)
		}
	}
	// opposite cusps are antipodal
	for i := 0; i < 6; i++ {
		diff := math.Mod(cusps[i+6]-cusps[i]+360, 360)
		if math.Abs(diff-180) > 1e-9 {
			t.Fatalf("cusps %d/%d not antipodal: %v", i+1, i+7, diff)
		}
	}
}

func TestPlacidusCuspsMonotone(t *testing.T) {
	cusps, err := PlacidusCusps(delhiRAMC, delhiEps, delhiLat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// walking cusp 1 -> 2 -> ... -> 12 -> 1 covers the circle once
	total := 0.0
	for i := 0; i < 12; i++ {
		span := math.Mod(cusps[(i+1)%12]-cusps[i]+360, 360)
		if span <= 0 || span >= 120 {
			t.Fatalf("house %d span = %v", i+1, span)
		}
		total += span
	}
	if math.Abs(total-360) > 1e-6 {
		t.Fatalf("spans sum to %v", total)
	}
}

func TestPlacidusCuspsPolarLatitude(t *testing.T) {
	if _, err := PlacidusCusps(delhiRAMC, delhiEps, 70); !errors.Is(err, models.ErrInvalidLatitude) {
		t.Fatalf("got %v, want ErrInvalidLatitude", err)
	}
	if _, err := PlacidusCusps(delhiRAMC, delhiEps, -70); !errors.Is(err, models.ErrInvalidLatitude) {
		t.Fatalf("got %v, want ErrInvalidLatitude", err)
	}
}

func TestWholeSignCusps(t *testing.T) {
	cusps := WholeSignCusps(241.14992) // Scorpio rising
	if cusps[0] != 240 {
		t.Fatalf("cusp 1 = %v, want 240", cusps[0])
	}
	for i, c := range cusps {
		if c != math.Mod(240+float64(i)*30, 360) {
			t.Fatalf("cusp %d = %v", i+1, c)
		}
	}
}

func TestHouseOf(t *testing.T) {
	cusps := WholeSignCusps(241.14992)
	cases := []struct {
		lon  float64
		want int
	}{
		{240, 1}, {269.9, 1}, {270, 2}, {0, 5}, {100, 8}, {239.9, 12},
	}
	for _, c := range cases {
		if got := HouseOf(c.lon, cusps); got != c.want {
			t.Fatalf("HouseOf(%v) = %d, want %d", c.lon, got, c.want)
		}
	}
}
