package compat

import (
	"context"
	"fmt"

	"AstroCalc/internal/domain/models"
	domservice "AstroCalc/internal/domain/service"
	"AstroCalc/pkg/util"
)

// factorPairs names the body set scored by each comparison factor.
var factorPairs = map[models.CompatFactor][]models.Body{
	models.LuminaryHarmony:   {models.Sun, models.Moon},
	models.AffectionHarmony:  {models.Venus, models.Mars},
	models.StructuralHarmony: {models.Jupiter, models.Saturn},
}

// aspectWeight grades aspect types for harmony scoring. The exact
// conjunction carries full weight, so a chart compared against itself
// reaches the maximum score.
var aspectWeight = map[models.AspectType]float64{
	models.Conjunction:    1.0,
	models.Trine:          0.9,
	models.Sextile:        0.75,
	models.SemiSextile:    0.4,
	models.Opposition:     0.5,
	models.Quincunx:       0.3,
	models.SemiSquare:     0.3,
	models.Sesquiquadrate: 0.3,
	models.Square:         0.25,
}

// Engine compares charts pairwise. Comparison is symmetric:
// Compare(a, b) and Compare(b, a) agree on factors, composite and
// score.
type Engine struct {
	aspects domservice.AspectEngine
	builder domservice.ChartBuilder
}

// NewEngine wires a compatibility engine. The builder anchors
// midpoint-instant charts.
func NewEngine(aspects domservice.AspectEngine, builder domservice.ChartBuilder) *Engine {
	return &Engine{aspects: aspects, builder: builder}
}

// factorScore is the best harmony found among the factor's pair set.
func factorScore(matrix []models.CrossAspect, bodies []models.Body) float64 {
	in := func(b models.Body) bool {
		for _, x := range bodies {
			if x == b {
				return true
			}
		}
		return false
	}
	best := 0.0
	for _, cell := range matrix {
		if !in(cell.BodyA) || !in(cell.BodyB) {
			continue
		}
		if h := aspectWeight[cell.Type] * cell.Exactness; h > best {
			best = h
		}
	}
	return best
}

// Compare builds the full synastry report for two charts in the same
// zodiac frame.
func (e *Engine) Compare(_ context.Context, a, b *models.Chart) (*models.CompatReport, error) {
	if a.Zodiac != b.Zodiac {
		return nil, fmt.Errorf("%w: comparing %s against %s zodiac", models.ErrUnsupportedParameter, a.Zodiac, b.Zodiac)
	}

	matrix := e.aspects.CrossAspects(a.Points(), b.Points())

	factors := make(map[models.CompatFactor]float64, len(factorPairs))
	total := 0.0
	for name, bodies := range factorPairs {
		s := factorScore(matrix, bodies)
		factors[name] = s
		total += s
	}

	return &models.CompatReport{
		CrossAspects: matrix,
		Composite:    e.CompositeChart(a, b),
		Factors:      factors,
		Score:        total / float64(len(factorPairs)) * models.MaxCompatScore,
	}, nil
}

// CompositeChart midpoints every point the two charts share.
func (e *Engine) CompositeChart(a, b *models.Chart) []models.CompositePoint {
	bodies := append([]models.Body{}, models.AllBodies...)
	bodies = append(bodies, models.Ascendant, models.Midheaven)

	out := make([]models.CompositePoint, 0, len(bodies))
	for _, body := range bodies {
		pa, okA := a.Position(body)
		pb, okB := b.Position(body)
		if !okA || !okB {
			continue
		}
		out = append(out, models.CompositePoint{
			Body:      body,
			Longitude: util.Midpoint(pa.Longitude, pb.Longitude),
		})
	}
	return out
}

// MidpointChart builds a chart at the temporal midpoint of the two
// births, located at the geographic midpoint.
func (e *Engine) MidpointChart(ctx context.Context, a, b models.Subject, hs models.HouseSystem) (*models.Chart, error) {
	mid := a.BirthUTC.Add(b.BirthUTC.Sub(a.BirthUTC) / 2)
	subject := models.NewSubject(
		a.Name+"/"+b.Name,
		mid,
		0,
		(a.Latitude+b.Latitude)/2,
		util.Midpoint(a.Longitude, b.Longitude),
		(a.ElevationM+b.ElevationM)/2,
	)
	return e.builder.Build(ctx, subject, mid, hs)
}

var _ domservice.CompatEngine = (*Engine)(nil)
