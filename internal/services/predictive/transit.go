package predictive

import (
	"context"
	"fmt"
	"sort"
	"time"

	"AstroCalc/internal/domain/models"
	"AstroCalc/pkg/util"
)

// scanAspects are the major angles a transit scan reports.
var scanAspects = []struct {
	angle float64
	typ   models.AspectType
}{
	{0, models.Conjunction},
	{60, models.Sextile},
	{90, models.Square},
	{120, models.Trine},
	{180, models.Opposition},
}

func (e *Engine) lonAt(ctx context.Context, c *models.Chart, body models.Body, jd float64) (float64, error) {
	pos, err := e.eph.Positions(ctx, []models.Body{body}, jd)
	if err != nil {
		return 0, err
	}
	return frameShift(c, pos[0].Longitude, jd), nil
}

// TransitScan samples each body across the window, then refines every
// sign ingress and major aspect perfection to sub-day precision by
// bisection. The Moon is sampled four times a day, everything else
// daily.
func (e *Engine) TransitScan(ctx context.Context, natal *models.Chart, from, to time.Time) ([]models.TransitEvent, error) {
	from, to = from.UTC(), to.UTC()
	if !to.After(from) {
		return nil, fmt.Errorf("%w: scan window [%s, %s]", models.ErrOutOfRangeInstant,
			from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	fromJD, toJD := util.JulianDay(from), util.JulianDay(to)
	points := natal.Points()

	var events []models.TransitEvent
	for _, body := range models.AllBodies {
		step := defaultStepDays
		if body == models.Moon {
			step = moonStepDays
		}
		prevJD := fromJD
		prevLon, err := e.lonAt(ctx, natal, body, prevJD)
		if err != nil {
			return nil, fmt.Errorf("transit scan: %w", err)
		}
		for jd := fromJD + step; prevJD < toJD; jd += step {
			if jd > toJD {
				jd = toJD
			}
			lon, err := e.lonAt(ctx, natal, body, jd)
			if err != nil {
				return nil, fmt.Errorf("transit scan: %w", err)
			}

			evs, err := e.refineInterval(ctx, natal, body, points, prevJD, jd, prevLon, lon)
			if err != nil {
				return nil, err
			}
			events = append(events, evs...)

			prevJD, prevLon = jd, lon
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Time.Before(events[j].Time) })
	return events, nil
}

// refineInterval finds every ingress and aspect crossing between two
// consecutive samples.
func (e *Engine) refineInterval(ctx context.Context, natal *models.Chart, body models.Body, points []models.BodyPosition, jd0, jd1, lon0, lon1 float64) ([]models.TransitEvent, error) {
	var events []models.TransitEvent

	if int(lon0/30) != int(lon1/30) {
		ev, err := e.refineIngress(ctx, natal, body, jd0, jd1, lon0)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	for _, np := range points {
		for _, asp := range scanAspects {
			offsets := []float64{asp.angle}
			if asp.angle != 0 && asp.angle != 180 {
				offsets = append(offsets, -asp.angle)
			}
			for _, off := range offsets {
				d0 := util.Wrap180(lon0 - np.Longitude - off)
				d1 := util.Wrap180(lon1 - np.Longitude - off)
				if d1-d0 > 180 || d0-d1 > 180 {
					continue // wrapped through the far side, not a crossing
				}
				if !(d0 < 0 && d1 >= 0) && !(d0 > 0 && d1 <= 0) {
					continue
				}
				ev, err := e.refineAspect(ctx, natal, body, np, off, asp.typ, jd0, jd1, d0)
				if err != nil {
					return nil, err
				}
				events = append(events, ev)
			}
		}
	}
	return events, nil
}

func (e *Engine) refineIngress(ctx context.Context, natal *models.Chart, body models.Body, jd0, jd1, lon0 float64) (models.TransitEvent, error) {
	sign0 := int(lon0 / 30)
	lo, hi := jd0, jd1
	for i := 0; i < bisectSteps; i++ {
		mid := (lo + hi) / 2
		lon, err := e.lonAt(ctx, natal, body, mid)
		if err != nil {
			return models.TransitEvent{}, fmt.Errorf("transit scan: %w", err)
		}
		if int(lon/30) == sign0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	lon, err := e.lonAt(ctx, natal, body, hi)
	if err != nil {
		return models.TransitEvent{}, fmt.Errorf("transit scan: %w", err)
	}
	return models.TransitEvent{
		Kind:      models.SignIngress,
		Time:      util.TimeFromJulianDay(hi),
		Transit:   body,
		Sign:      models.SignNames[int(lon/30)],
		Longitude: lon,
	}, nil
}

func (e *Engine) refineAspect(ctx context.Context, natal *models.Chart, body models.Body, np models.BodyPosition, off float64, typ models.AspectType, jd0, jd1, d0 float64) (models.TransitEvent, error) {
	lo, hi := jd0, jd1
	for i := 0; i < bisectSteps; i++ {
		mid := (lo + hi) / 2
		lon, err := e.lonAt(ctx, natal, body, mid)
		if err != nil {
			return models.TransitEvent{}, fmt.Errorf("transit scan: %w", err)
		}
		d := util.Wrap180(lon - np.Longitude - off)
		if (d0 < 0) == (d < 0) {
			lo = mid
		} else {
			hi = mid
		}
	}
	lon, err := e.lonAt(ctx, natal, body, hi)
	if err != nil {
		return models.TransitEvent{}, fmt.Errorf("transit scan: %w", err)
	}
	return models.TransitEvent{
		Kind:      models.AspectPerfection,
		Time:      util.TimeFromJulianDay(hi),
		Transit:   body,
		Natal:     np.Body,
		Aspect:    typ,
		Longitude: lon,
	}, nil
}
