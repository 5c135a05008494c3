package compat

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"AstroCalc/internal/domain/models"
	"AstroCalc/internal/services/aspect"
	"AstroCalc/internal/services/chart"
	"AstroCalc/internal/services/ephemeris"
)

var (
	subjectA = models.NewSubject("a", time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC), 0, 28.6139, 77.2090, 216)
	subjectB = models.NewSubject("b", time.Date(1985, 3, 20, 6, 30, 0, 0, time.UTC), 0, 51.5074, -0.1278, 11)
)

func buildPair(t *testing.T) (*models.Chart, *models.Chart, *Engine) {
	t.Helper()
	builder := chart.NewBuilder(ephemeris.NewBuiltinSource())
	ctx := context.Background()
	ca, err := builder.Build(ctx, subjectA, subjectA.BirthUTC, models.Placidus)
	if err != nil {
		t.Fatalf("chart a: %v", err)
	}
	cb, err := builder.Build(ctx, subjectB, subjectB.BirthUTC, models.Placidus)
	if err != nil {
		t.Fatalf("chart b: %v", err)
	}
	return ca, cb, NewEngine(aspect.NewEngine(), builder)
}

func TestCompareSelfIsMaximal(t *testing.T) {
	ca, _, e := buildPair(t)
	rep, err := e.Compare(context.Background(), ca, ca)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if math.Abs(rep.Score-models.MaxCompatScore) > 1e-9 {
		t.Fatalf("self score = %v, want %v", rep.Score, models.MaxCompatScore)
	}
	for name, v := range rep.Factors {
		if math.Abs(v-1) > 1e-9 {
			t.Fatalf("factor %s = %v, want 1", name, v)
		}
	}
}

func TestCompareSymmetric(t *testing.T) {
	ca, cb, e := buildPair(t)
	ctx := context.Background()
	ab, err := e.Compare(ctx, ca, cb)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	ba, err := e.Compare(ctx, cb, ca)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if math.Abs(ab.Score-ba.Score) > 1e-9 {
		t.Fatalf("scores differ: %v vs %v", ab.Score, ba.Score)
	}
	for name := range ab.Factors {
		if math.Abs(ab.Factors[name]-ba.Factors[name]) > 1e-9 {
			t.Fatalf("factor %s differs", name)
		}
	}
	if len(ab.Composite) != len(ba.Composite) {
		t.Fatalf("composites differ in size")
	}
	for i := range ab.Composite {
		if ab.Composite[i].Body != ba.Composite[i].Body ||
			math.Abs(ab.Composite[i].Longitude-ba.Composite[i].Longitude) > 1e-9 {
			t.Fatalf("composite point %d differs", i)
		}
	}
	if len(ab.CrossAspects) != len(ba.CrossAspects) {
		t.Fatalf("matrix sizes differ")
	}
}

func TestCompareScoreRange(t *testing.T) {
	ca, cb, e := buildPair(t)
	rep, err := e.Compare(context.Background(), ca, cb)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if rep.Score < 0 || rep.Score > models.MaxCompatScore {
		t.Fatalf("score = %v", rep.Score)
	}
	if len(rep.Factors) != 3 {
		t.Fatalf("factors = %v", rep.Factors)
	}
}

func TestCompareRejectsMixedZodiacs(t *testing.T) {
	ca, _, e := buildPair(t)
	builder := chart.NewBuilder(ephemeris.NewBuiltinSource(), chart.WithZodiac(models.Tropical))
	ct, err := builder.Build(context.Background(), subjectB, subjectB.BirthUTC, models.Placidus)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if _, err := e.Compare(context.Background(), ca, ct); !errors.Is(err, models.ErrUnsupportedParameter) {
		t.Fatalf("got %v, want ErrUnsupportedParameter", err)
	}
}

func TestCompositeChart(t *testing.T) {
	ca, cb, e := buildPair(t)
	comp := e.CompositeChart(ca, cb)
	if len(comp) != len(models.AllBodies)+2 {
		t.Fatalf("composite has %d points", len(comp))
	}
	pa, _ := ca.Position(models.Sun)
	pb, _ := cb.Position(models.Sun)
	for _, p := range comp {
		if p.Longitude < 0 || p.Longitude >= 360 {
			t.Fatalf("%s longitude %v", p.Body, p.Longitude)
		}
		if p.Body == models.Sun {
			// the midpoint separations to both parents are equal
			sepA := math.Min(math.Mod(p.Longitude-pa.Longitude+360, 360), math.Mod(pa.Longitude-p.Longitude+360, 360))
			sepB := math.Min(math.Mod(p.Longitude-pb.Longitude+360, 360), math.Mod(pb.Longitude-p.Longitude+360, 360))
			if math.Abs(sepA-sepB) > 1e-9 {
				t.Fatalf("sun midpoint skewed: %v vs %v", sepA, sepB)
			}
		}
	}
}

func TestMidpointChart(t *testing.T) {
	_, _, e := buildPair(t)
	c, err := e.MidpointChart(context.Background(), subjectA, subjectB, models.WholeSign)
	if err != nil {
		t.Fatalf("midpoint chart: %v", err)
	}
	wantMid := subjectA.BirthUTC.Add(subjectB.BirthUTC.Sub(subjectA.BirthUTC) / 2)
	if !c.AsOf.Equal(wantMid) {
		t.Fatalf("asOf = %v, want %v", c.AsOf, wantMid)
	}
	if math.Abs(c.Subject.Latitude-(subjectA.Latitude+subjectB.Latitude)/2) > 1e-9 {
		t.Fatalf("latitude = %v", c.Subject.Latitude)
	}
	if len(c.Positions) != len(models.AllBodies) {
		t.Fatalf("positions = %d", len(c.Positions))
	}
}
