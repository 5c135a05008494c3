package predictive

import (
	"context"
	"fmt"
	"math"
	"time"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	domservice "AstroCalc/internal/domain/service"
	"AstroCalc/internal/services/chart"
	"AstroCalc/internal/services/ephemeris"
	"AstroCalc/pkg/util"
)

const (
	yearDays = 365.25

	// return search
	maxReturnIterations = 50
	minRelativeSpeed    = 1e-7 // degrees per day
	returnToleranceDeg  = 1e-6

	// transit scan
	moonStepDays    = 0.25
	defaultStepDays = 1.0
	bisectSteps     = 20
)

// Engine derives symbolically progressed charts, return charts and
// transit event scans from a natal chart.
type Engine struct {
	eph     domrepo.EphemerisSource
	aspects domservice.AspectEngine
	builder domservice.ChartBuilder
}

// NewEngine wires the predictive engine. The chart builder anchors
// return charts at the found instant.
func NewEngine(eph domrepo.EphemerisSource, aspects domservice.AspectEngine, builder domservice.ChartBuilder) *Engine {
	return &Engine{eph: eph, aspects: aspects, builder: builder}
}

// frameShift converts a tropical longitude into the chart's zodiac.
func frameShift(c *models.Chart, lon, jd float64) float64 {
	if c.Zodiac == models.Sidereal {
		return util.Norm360(lon - ephemeris.Ayanamsa(jd))
	}
	return util.Norm360(lon)
}

// Progress advances the natal positions by the technique's arc and
// matches the progressed points against the natal ones.
func (e *Engine) Progress(ctx context.Context, natal *models.Chart, target time.Time, technique models.ProgressionTechnique) (*models.ProgressedChart, error) {
	if !models.IsValidTechnique(technique) {
		return nil, fmt.Errorf("%w: progression technique %q", models.ErrUnsupportedParameter, technique)
	}
	years := target.UTC().Sub(natal.AsOf).Hours() / 24 / yearDays

	var arc float64
	switch technique {
	case models.SecondaryProgression:
		arc = years // one degree per year
	case models.SolarArcDirection:
		// the Sun's actual day-for-a-year motion
		progJD := natal.JulianDay + years
		pos, err := e.eph.Positions(ctx, []models.Body{models.Sun}, progJD)
		if err != nil {
			return nil, fmt.Errorf("solar arc: %w", err)
		}
		natalSun, ok := natal.Position(models.Sun)
		if !ok {
			return nil, fmt.Errorf("%w: natal chart lacks the sun", models.ErrUnsupportedParameter)
		}
		progSun := frameShift(natal, pos[0].Longitude, progJD)
		arc = util.Wrap180(progSun - natalSun.Longitude)
	}

	positions := make([]models.BodyPosition, len(natal.Positions))
	for i, p := range natal.Positions {
		q := p
		q.Longitude = util.Norm360(p.Longitude + arc)
		q.House = chart.HouseOf(q.Longitude, natal.Cusps)
		positions[i] = q
	}

	return &models.ProgressedChart{
		Technique:      technique,
		Years:          years,
		Arc:            arc,
		Positions:      positions,
		AspectsToNatal: e.aspects.CrossAspects(positions, natal.Points()),
	}, nil
}

// ReturnChart locates the instant at or after the start of targetYear
// when the body regains its natal longitude, then anchors a chart
// there. Newton steps on the daily motion; near-zero relative speed
// aborts with ErrNoConvergence.
func (e *Engine) ReturnChart(ctx context.Context, natal *models.Chart, body models.Body, targetYear int) (*models.Chart, error) {
	natalPos, ok := natal.Position(body)
	if !ok || body.Class() == models.ClassPoint {
		return nil, fmt.Errorf("%w: return of %q", models.ErrUnsupportedParameter, body)
	}

	seed := time.Date(targetYear, 1, 1, 0, 0, 0, 0, time.UTC)
	seedJD := util.JulianDay(seed)
	jd := seedJD

	for i := 0; i < maxReturnIterations; i++ {
		pos, err := e.eph.Positions(ctx, []models.Body{body}, jd)
		if err != nil {
			return nil, fmt.Errorf("return search: %w", err)
		}
		lon := frameShift(natal, pos[0].Longitude, jd)
		delta := util.Wrap180(natalPos.Longitude - lon)
		converged := delta < returnToleranceDeg && delta > -returnToleranceDeg
		if converged && jd >= seedJD {
			return e.builder.Build(ctx, natal.Subject, util.TimeFromJulianDay(jd), natal.HouseSystem)
		}
		speed := pos[0].Speed
		if speed < minRelativeSpeed && speed > -minRelativeSpeed {
			return nil, fmt.Errorf("%w: %s barely moves near jd %.2f", models.ErrNoConvergence, body, jd)
		}
		if converged {
			// Newton landed on the return before the seed; jump one
			// full revolution forward and refine again
			jd += 360 / math.Abs(speed)
			continue
		}
		jd += delta / speed
	}
	return nil, fmt.Errorf("%w: return of %s not found in %d iterations",
		models.ErrNoConvergence, body, maxReturnIterations)
}

var _ domservice.PredictiveEngine = (*Engine)(nil)
