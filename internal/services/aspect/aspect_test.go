package aspect

import (
	"math"
	"testing"

	"AstroCalc/internal/domain/models"
)

func pos(b models.Body, lon float64) models.BodyPosition {
	return models.BodyPosition{Body: b, Longitude: lon}
}

func TestMatchConjunction(t *testing.T) {
	asp, ok := NewEngine().match(pos(models.Venus, 100), pos(models.Mars, 103))
	if !ok {
		t.Fatalf("expected a match")
	}
	if asp.Type != models.Conjunction {
		t.Fatalf("type = %s", asp.Type)
	}
	if math.Abs(asp.Separation-3) > 1e-9 {
		t.Fatalf("separation = %v", asp.Separation)
	}
	if math.Abs(asp.Exactness-0.625) > 1e-9 {
		t.Fatalf("exactness = %v, want 0.625", asp.Exactness)
	}
}

func TestMatchOrbScaling(t *testing.T) {
	// 9.5 degrees: inside the luminary-widened orb of 10
	if _, ok := NewEngine().match(pos(models.Sun, 0), pos(models.Jupiter, 9.5)); !ok {
		t.Fatalf("sun-jupiter 9.5 should match with widened orb")
	}
	// two outer bodies narrow the orb to 6
	if _, ok := NewEngine().match(pos(models.Jupiter, 0), pos(models.Saturn, 9.5)); ok {
		t.Fatalf("jupiter-saturn 9.5 should not match with narrowed orb")
	}
}

func TestMatchCanonicalOrder(t *testing.T) {
	asp, ok := NewEngine().match(pos(models.Mars, 0), pos(models.Sun, 120))
	if !ok || asp.Type != models.Trine {
		t.Fatalf("expected a trine, got %+v ok=%v", asp, ok)
	}
	if asp.A != models.Sun || asp.B != models.Mars {
		t.Fatalf("order = %s, %s", asp.A, asp.B)
	}
}

func TestMatchConfiguredOrbs(t *testing.T) {
	// tighten the trine to 2 degrees: a 5 degree miss no longer hits
	e := NewEngine(WithOrbs(map[models.AspectType]float64{models.Trine: 2}))
	if _, ok := e.match(pos(models.Venus, 0), pos(models.Mars, 125)); ok {
		t.Fatalf("trine should not match outside the configured orb")
	}
	if _, ok := NewEngine().match(pos(models.Venus, 0), pos(models.Mars, 125)); !ok {
		t.Fatalf("trine should match with catalog orbs")
	}
	// other aspects keep their catalog orbs
	if _, ok := e.match(pos(models.Venus, 0), pos(models.Mars, 93)); !ok {
		t.Fatalf("square orb should be untouched")
	}
}

func TestMatchNone(t *testing.T) {
	if asp, ok := NewEngine().match(pos(models.Venus, 0), pos(models.Mars, 20)); ok {
		t.Fatalf("unexpected match %+v", asp)
	}
}

func TestFindAspectsSkipsNodeAxis(t *testing.T) {
	points := []models.BodyPosition{
		pos(models.Rahu, 10),
		pos(models.Ketu, 190),
		pos(models.Sun, 10),
	}
	for _, asp := range NewEngine().FindAspects(points) {
		if asp.A.IsNode() && asp.B.IsNode() {
			t.Fatalf("node axis reported: %+v", asp)
		}
	}
}

func TestFindPatternsGrandTrine(t *testing.T) {
	points := []models.BodyPosition{
		pos(models.Sun, 5),       // Aries, fire
		pos(models.Jupiter, 125), // Leo, fire
		pos(models.Moon, 245),    // Sagittarius, fire
	}
	patterns := NewEngine().FindPatterns(points)
	var gt *models.Pattern
	for i := range patterns {
		if patterns[i].Type == models.GrandTrine {
			gt = &patterns[i]
		}
	}
	if gt == nil {
		t.Fatalf("no grand trine in %+v", patterns)
	}
	if gt.Element != "fire" {
		t.Fatalf("element = %s", gt.Element)
	}
	if len(gt.Bodies) != 3 {
		t.Fatalf("bodies = %v", gt.Bodies)
	}
}

func TestFindPatternsMixedElementTrineIgnored(t *testing.T) {
	// mutual trines in orb, but 150.5 falls in Virgo and breaks the
	// fire triplicity
	points := []models.BodyPosition{
		pos(models.Sun, 28),
		pos(models.Moon, 150.5),
		pos(models.Jupiter, 268),
	}
	for _, p := range NewEngine().FindPatterns(points) {
		if p.Type == models.GrandTrine {
			t.Fatalf("grand trine across elements: %+v", p)
		}
	}
}

func TestFindPatternsTSquare(t *testing.T) {
	points := []models.BodyPosition{
		pos(models.Mars, 0),
		pos(models.Venus, 180),
		pos(models.Saturn, 90),
	}
	patterns := NewEngine().FindPatterns(points)
	var ts *models.Pattern
	for i := range patterns {
		if patterns[i].Type == models.TSquare {
			ts = &patterns[i]
		}
	}
	if ts == nil {
		t.Fatalf("no t-square in %+v", patterns)
	}
	if ts.Apex != models.Saturn {
		t.Fatalf("apex = %s", ts.Apex)
	}
}

func TestFindPatternsStellium(t *testing.T) {
	points := []models.BodyPosition{
		pos(models.Mercury, 10),
		pos(models.Venus, 13),
		pos(models.Mars, 17),
		pos(models.Ascendant, 12), // angles never join a stellium
		pos(models.Saturn, 200),
	}
	patterns := NewEngine().FindPatterns(points)
	var st *models.Pattern
	for i := range patterns {
		if patterns[i].Type == models.Stellium {
			st = &patterns[i]
		}
	}
	if st == nil {
		t.Fatalf("no stellium in %+v", patterns)
	}
	if len(st.Bodies) != 3 {
		t.Fatalf("bodies = %v", st.Bodies)
	}
	for _, b := range st.Bodies {
		if b == models.Ascendant {
			t.Fatalf("ascendant joined the stellium")
		}
	}
	if math.Abs(st.ArcSpan-7) > 1e-9 {
		t.Fatalf("arc span = %v", st.ArcSpan)
	}
}

func TestStelliumWrapsAries(t *testing.T) {
	points := []models.BodyPosition{
		pos(models.Mercury, 356),
		pos(models.Venus, 1),
		pos(models.Sun, 3),
	}
	patterns := NewEngine().FindPatterns(points)
	count := 0
	for _, p := range patterns {
		if p.Type == models.Stellium {
			count++
			if len(p.Bodies) != 3 {
				t.Fatalf("bodies = %v", p.Bodies)
			}
		}
	}
	if count != 1 {
		t.Fatalf("got %d stelliums, want 1", count)
	}
}

func TestCrossAspectsTransposes(t *testing.T) {
	a := []models.BodyPosition{pos(models.Sun, 10), pos(models.Moon, 200)}
	b := []models.BodyPosition{pos(models.Venus, 130), pos(models.Mars, 14)}
	e := NewEngine()
	ab := e.CrossAspects(a, b)
	ba := e.CrossAspects(b, a)
	if len(ab) != len(ba) {
		t.Fatalf("matrix sizes differ: %d vs %d", len(ab), len(ba))
	}
	find := func(m []models.CrossAspect, x, y models.Body) (models.CrossAspect, bool) {
		for _, c := range m {
			if c.BodyA == x && c.BodyB == y {
				return c, true
			}
		}
		return models.CrossAspect{}, false
	}
	for _, c := range ab {
		tr, ok := find(ba, c.BodyB, c.BodyA)
		if !ok {
			t.Fatalf("missing transposed cell %s/%s", c.BodyB, c.BodyA)
		}
		if tr.Type != c.Type || math.Abs(tr.Exactness-c.Exactness) > 1e-12 {
			t.Fatalf("cell mismatch: %+v vs %+v", c, tr)
		}
	}
}
