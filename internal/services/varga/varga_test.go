package varga

import (
	"errors"
	"math"
	"testing"

	"AstroCalc/internal/domain/models"
)

func TestRemapIdentity(t *testing.T) {
	for _, lon := range []float64{0, 14.65, 99.9, 321.6277, 359.99} {
		if got := remap(lon, 1); math.Abs(got-lon) > 1e-9 {
			t.Fatalf("remap(%v, 1) = %v", lon, got)
		}
	}
}

func TestRemapNavamsa(t *testing.T) {
	cases := []struct {
		lon      float64
		wantSign int
	}{
		{0, 0},        // 0 Aries, movable: counts from itself
		{3.4, 1},      // second navamsa of Aries
		{30, 9},       // 0 Taurus, fixed: counts from the 9th
		{60, 6},       // 0 Gemini, dual: counts from the 5th
		{321.6277, 0}, // 21.63 Aquarius, fixed
	}
	for _, c := range cases {
		got := remap(c.lon, 9)
		if int(got/30) != c.wantSign {
			t.Fatalf("navamsa(%v) = %v, want sign %d", c.lon, got, c.wantSign)
		}
	}
	// degree inside the part scales to a full sign
	got := remap(321.6277, 9)
	if math.Abs(got-14.6493) > 0.001 {
		t.Fatalf("navamsa(321.6277) = %v, want 14.6493", got)
	}
}

func TestRemapHora(t *testing.T) {
	const leo, cancer = 4, 3
	cases := []struct {
		lon      float64
		wantSign int
	}{
		{10, leo},     // first half of Aries
		{20, cancer},  // second half of Aries
		{40, cancer},  // first half of Taurus
		{50, leo},     // second half of Taurus
	}
	for _, c := range cases {
		if got := int(remap(c.lon, 2) / 30); got != c.wantSign {
			t.Fatalf("hora(%v) sign = %d, want %d", c.lon, got, c.wantSign)
		}
	}
}

func TestRemapDrekkana(t *testing.T) {
	// third drekkana of Gemini falls in Aquarius
	if got := int(remap(85, 3) / 30); got != 10 {
		t.Fatalf("drekkana(85) sign = %d, want 10", got)
	}
}

func TestRemapTrimsamsa(t *testing.T) {
	cases := []struct {
		lon      float64
		wantSign int
	}{
		{4, 0},  // odd sign, Mars segment -> Aries
		{12, 8}, // odd sign, Jupiter segment -> Sagittarius
		{51, 9}, // 21 Taurus, even-sign Saturn segment -> Capricorn
		{58, 7}, // 28 Taurus, even-sign Mars segment -> Scorpio
	}
	for _, c := range cases {
		if got := int(remap(c.lon, 30) / 30); got != c.wantSign {
			t.Fatalf("trimsamsa(%v) sign = %d, want %d", c.lon, got, c.wantSign)
		}
	}
}

func TestSupportedFactors(t *testing.T) {
	want := []int{1, 2, 3, 4, 7, 9, 10, 12, 16, 20, 24, 27, 30, 40, 45, 60}
	got := SupportedFactors()
	if len(got) != len(want) {
		t.Fatalf("factors = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("factors = %v, want %v", got, want)
		}
	}
}

func testChart() *models.Chart {
	return &models.Chart{
		Asc: 217.43, // sidereal Scorpio rising
		Positions: []models.BodyPosition{
			{Body: models.Sun, Longitude: 60.41},
			{Body: models.Moon, Longitude: 321.6277},
			{Body: models.Mars, Longitude: 347.32},
		},
	}
}

func TestDeriveWholeSignHouses(t *testing.T) {
	e := NewEngine()
	d, err := e.Derive(testChart(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Factor != 9 || d.Base == nil {
		t.Fatalf("factor %d base %v", d.Factor, d.Base)
	}
	if len(d.Positions) != 3 {
		t.Fatalf("got %d positions", len(d.Positions))
	}
	ascSign := int(d.Asc / 30)
	for _, p := range d.Positions {
		want := (p.Sign()-ascSign+12)%12 + 1
		if p.House != want {
			t.Fatalf("%s house = %d, want %d", p.Body, p.House, want)
		}
	}
}

func TestDeriveIdentityFactor(t *testing.T) {
	base := testChart()
	d, err := NewEngine().Derive(base, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range d.Positions {
		if math.Abs(p.Longitude-base.Positions[i].Longitude) > 1e-9 {
			t.Fatalf("%s moved to %v", p.Body, p.Longitude)
		}
	}
}

func TestDeriveUnsupportedFactor(t *testing.T) {
	for _, f := range []int{0, 5, 11, 61} {
		if _, err := NewEngine().Derive(testChart(), f); !errors.Is(err, models.ErrUnsupportedParameter) {
			t.Fatalf("D%d: got %v, want ErrUnsupportedParameter", f, err)
		}
	}
}
