package chart

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"AstroCalc/internal/domain/models"
	"AstroCalc/internal/services/ephemeris"
)

var (
	testBirth   = time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)
	testSubject = models.NewSubject("test", testBirth, 0, 28.6139, 77.2090, 216)
)

func TestBuildTropicalPlacidus(t *testing.T) {
	b := NewBuilder(ephemeris.NewBuiltinSource(), WithZodiac(models.Tropical))
	c, err := b.Build(context.Background(), testSubject, testBirth, models.Placidus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(c.Asc-241.14992) > 0.002 {
		t.Fatalf("asc = %v, want 241.14992", c.Asc)
	}
	if math.Abs(c.MC-159.12682) > 0.002 {
		t.Fatalf("mc = %v, want 159.12682", c.MC)
	}
	if c.Ayanamsa != 0 {
		t.Fatalf("tropical chart carries ayanamsa %v", c.Ayanamsa)
	}
	sun, ok := c.Position(models.Sun)
	if !ok {
		t.Fatalf("no sun position")
	}
	if math.Abs(sun.Longitude-84.13156) > 0.01 {
		t.Fatalf("sun = %v, want 84.13156", sun.Longitude)
	}
	if len(c.Positions) != len(models.AllBodies) {
		t.Fatalf("got %d positions", len(c.Positions))
	}
	for _, p := range c.Positions {
		if p.House < 1 || p.House > 12 {
			t.Fatalf("%s house = %d", p.Body, p.House)
		}
	}
}

func TestBuildSiderealShiftsFrame(t *testing.T) {
	ctx := context.Background()
	src := ephemeris.NewBuiltinSource()
	sid, err := NewBuilder(src).Build(ctx, testSubject, testBirth, models.Placidus)
	if err != nil {
		t.Fatalf("sidereal build: %v", err)
	}
	trop, err := NewBuilder(src, WithZodiac(models.Tropical)).Build(ctx, testSubject, testBirth, models.Placidus)
	if err != nil {
		t.Fatalf("tropical build: %v", err)
	}

	if math.Abs(sid.Ayanamsa-23.71964) > 0.001 {
		t.Fatalf("ayanamsa = %v, want 23.71964", sid.Ayanamsa)
	}
	moon, _ := sid.Position(models.Moon)
	if math.Abs(moon.Longitude-321.6277) > 0.02 {
		t.Fatalf("sidereal moon = %v, want 321.6277", moon.Longitude)
	}
	// every longitude is the tropical one minus the ayanamsa
	for i := range sid.Positions {
		want := math.Mod(trop.Positions[i].Longitude-sid.Ayanamsa+360, 360)
		if math.Abs(sid.Positions[i].Longitude-want) > 1e-9 {
			t.Fatalf("%s: sidereal %v, tropical %v",
				sid.Positions[i].Body, sid.Positions[i].Longitude, trop.Positions[i].Longitude)
		}
	}
	wantAsc := math.Mod(trop.Asc-sid.Ayanamsa+360, 360)
	if math.Abs(sid.Asc-wantAsc) > 1e-9 {
		t.Fatalf("sidereal asc = %v, want %v", sid.Asc, wantAsc)
	}
}

func TestBuildWholeSign(t *testing.T) {
	b := NewBuilder(ephemeris.NewBuiltinSource())
	c, err := b.Build(context.Background(), testSubject, testBirth, models.WholeSign)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, cusp := range c.Cusps {
		if math.Mod(cusp, 30) != 0 {
			t.Fatalf("cusp %d = %v, not on a sign boundary", i+1, cusp)
		}
	}
	// ascendant sits inside the first house sign
	if int(c.Asc/30) != int(c.Cusps[0]/30) {
		t.Fatalf("asc %v outside first house starting %v", c.Asc, c.Cusps[0])
	}
}

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder(ephemeris.NewBuiltinSource())
	ctx := context.Background()
	c1, err := b.Build(ctx, testSubject, testBirth, models.Placidus)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	c2, err := b.Build(ctx, testSubject, testBirth, models.Placidus)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if c1.Asc != c2.Asc || c1.MC != c2.MC || len(c1.Positions) != len(c2.Positions) {
		t.Fatalf("charts differ between runs")
	}
	for i := range c1.Positions {
		if c1.Positions[i] != c2.Positions[i] {
			t.Fatalf("position %d differs", i)
		}
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	b := NewBuilder(ephemeris.NewBuiltinSource())
	ctx := context.Background()

	bad := testSubject
	bad.Latitude = 91
	if _, err := b.Build(ctx, bad, testBirth, models.Placidus); !errors.Is(err, models.ErrInvalidLatitude) {
		t.Fatalf("got %v, want ErrInvalidLatitude", err)
	}

	polar := testSubject
	polar.Latitude = 78.2 // Svalbard
	if _, err := b.Build(ctx, polar, testBirth, models.Placidus); !errors.Is(err, models.ErrInvalidLatitude) {
		t.Fatalf("got %v, want ErrInvalidLatitude", err)
	}
	if _, err := b.Build(ctx, polar, testBirth, models.WholeSign); err != nil {
		t.Fatalf("whole-sign at polar latitude: %v", err)
	}

	if _, err := b.Build(ctx, testSubject, testBirth, models.HouseSystem("koch")); !errors.Is(err, models.ErrUnsupportedParameter) {
		t.Fatalf("got %v, want ErrUnsupportedParameter", err)
	}
}
