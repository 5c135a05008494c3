package strength

import (
	"math"
	"testing"
	"time"

	"AstroCalc/internal/domain/models"
	"AstroCalc/internal/services/aspect"
)

func TestPositional(t *testing.T) {
	cases := []struct {
		body models.Body
		sign int
		want float64
	}{
		{models.Sun, 0, 1.0},      // exalted in Aries
		{models.Sun, 6, 0.0},      // debilitated in Libra
		{models.Sun, 4, 0.85},     // own sign Leo
		{models.Sun, 3, 0.65},     // Cancer, the Moon is a friend
		{models.Sun, 1, 0.25},     // Taurus, Venus is an enemy
		{models.Sun, 2, 0.5},      // Gemini, Mercury is neutral
		{models.Uranus, 0, 0.5},   // no classical dignity
		{models.Rahu, 1, 1.0},     // exalted in Taurus
		{models.Rahu, 7, 0.0},     // debilitated in Scorpio
		{models.Rahu, 2, 0.5},     // no friendship scheme for nodes
		{models.Saturn, 6, 1.0},   // exalted in Libra
		{models.Jupiter, 9, 0.0},  // debilitated in Capricorn
		{models.Mercury, 5, 1.0},  // exaltation beats own sign in Virgo
	}
	for _, c := range cases {
		if got := positional(c.body, c.sign); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("positional(%s, %d) = %v, want %v", c.body, c.sign, got, c.want)
		}
	}
}

func TestDirectional(t *testing.T) {
	cases := []struct {
		body  models.Body
		house int
		want  float64
	}{
		{models.Sun, 10, 1.0},
		{models.Sun, 4, 0.0},
		{models.Sun, 1, 0.5},
		{models.Sun, 7, 0.5},
		{models.Mercury, 1, 1.0},
		{models.Saturn, 7, 1.0},
		{models.Moon, 4, 1.0},
		{models.Uranus, 10, 0.5},
	}
	for _, c := range cases {
		if got := directional(c.body, c.house); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("directional(%s, %d) = %v, want %v", c.body, c.house, got, c.want)
		}
	}
}

func TestTemporal(t *testing.T) {
	// day birth, Sun not the weekday lord
	if got := temporal(models.Sun, true, models.Moon); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("day sun = %v", got)
	}
	// night birth, Moon rules the weekday too
	if got := temporal(models.Moon, false, models.Moon); math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("night moon on monday = %v", got)
	}
	// mercury scores the sect component either way
	if got := temporal(models.Mercury, true, models.Sun); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("mercury = %v", got)
	}
	if got := temporal(models.Mars, true, models.Sun); math.Abs(got-0.0) > 1e-12 {
		t.Fatalf("day mars = %v", got)
	}
}

func TestMotional(t *testing.T) {
	retro := models.BodyPosition{Body: models.Saturn, Speed: -0.05, Retrograde: true}
	if got := motional(retro); got != 1.0 {
		t.Fatalf("retrograde saturn = %v", got)
	}
	sunAtMean := models.BodyPosition{Body: models.Sun, Speed: 0.9856}
	if got := motional(sunAtMean); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("sun at mean speed = %v", got)
	}
	node := models.BodyPosition{Body: models.Rahu, Speed: -0.053, Retrograde: true}
	if got := motional(node); got != 0.5 {
		t.Fatalf("node = %v", got)
	}
	fast := models.BodyPosition{Body: models.Moon, Speed: 30}
	if got := motional(fast); got != 1.0 {
		t.Fatalf("clamp failed: %v", got)
	}
}

func TestAspectualCentered(t *testing.T) {
	e := NewEngine(aspect.NewEngine())
	trine := []models.Aspect{{A: models.Sun, B: models.Jupiter, Type: models.Trine, Exactness: 1}}
	if got := e.aspectual(models.Sun, trine); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("exact trine = %v, want 0.75", got)
	}
	square := []models.Aspect{{A: models.Sun, B: models.Saturn, Type: models.Square, Exactness: 1}}
	if got := e.aspectual(models.Sun, square); math.Abs(got-0.25) > 1e-12 {
		t.Fatalf("exact square = %v, want 0.25", got)
	}
	if got := e.aspectual(models.Moon, trine); got != 0.5 {
		t.Fatalf("uninvolved body = %v, want 0.5", got)
	}
}

func TestScoreComponents(t *testing.T) {
	chart := &models.Chart{
		AsOf: time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC), // a Friday
		Positions: []models.BodyPosition{
			{Body: models.Sun, Longitude: 10, Speed: 0.95, House: 10},
			{Body: models.Moon, Longitude: 95, Speed: 13.2, House: 12},
			{Body: models.Venus, Longitude: 130, Speed: 1.1, House: 2},
			{Body: models.Saturn, Longitude: 275, Speed: -0.06, Retrograde: true, House: 7},
		},
		Asc:   241.15,
		MC:    159.13,
		Cusps: [12]float64{240, 270, 300, 330, 0, 30, 60, 90, 120, 150, 180, 210},
	}
	scores := NewEngine(aspect.NewEngine()).Score(chart)
	if len(scores) != 4 {
		t.Fatalf("got %d scores", len(scores))
	}
	for body, s := range scores {
		if len(s.Components) != len(models.StrengthComponents) {
			t.Fatalf("%s: %d components", body, len(s.Components))
		}
		sum := 0.0
		for name, v := range s.Components {
			if v < 0 || v > 1 {
				t.Fatalf("%s %s = %v outside [0,1]", body, name, v)
			}
			sum += v
		}
		if math.Abs(sum-s.Total) > 1e-12 {
			t.Fatalf("%s total %v != sum %v", body, s.Total, sum)
		}
	}
	// Sun exalted in Aries at the 10th house peaks both components
	sun := scores[models.Sun]
	if sun.Components[models.Positional] != 1.0 || sun.Components[models.Directional] != 1.0 {
		t.Fatalf("sun components = %+v", sun.Components)
	}
	// retrograde Saturn takes full motional strength
	if scores[models.Saturn].Components[models.Motional] != 1.0 {
		t.Fatalf("saturn motional = %v", scores[models.Saturn].Components[models.Motional])
	}
}
