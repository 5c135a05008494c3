package strength

import (
	"AstroCalc/internal/domain/models"
	domservice "AstroCalc/internal/domain/service"
)

// Engine sums six independently normalized sub-scores per body. Every
// component is table-driven; the only derived input is the aspect set
// of the chart.
type Engine struct {
	aspects domservice.AspectEngine
}

// NewEngine returns a strength engine using the given aspect matcher
// for the aspectual component.
func NewEngine(aspects domservice.AspectEngine) *Engine {
	return &Engine{aspects: aspects}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func contains(list []models.Body, b models.Body) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}

// positional scores sign placement: exaltation, own sign, friendship
// with the sign lord, or debilitation.
func positional(b models.Body, sign int) float64 {
	exalt, hasDignity := exaltationSign[b]
	if !hasDignity {
		return 0.5 // outer bodies carry no classical dignities
	}
	if sign == exalt {
		return 1.0
	}
	if sign == (exalt+6)%12 {
		return 0.0
	}
	lord := signLord[sign]
	if lord == b {
		return 0.85
	}
	if b.IsNode() {
		return 0.5 // nodes keep only their exaltation axis
	}
	if contains(friends[b], lord) {
		return 0.65
	}
	if contains(enemies[b], lord) {
		return 0.25
	}
	return 0.5
}

// directional scores distance from the body's strongest house: full
// there, zero in the opposite house.
func directional(b models.Body, house int) float64 {
	best, ok := bestHouse[b]
	if !ok || house < 1 || house > 12 {
		return 0.5
	}
	d := house - best
	if d < 0 {
		d = -d
	}
	if d > 6 {
		d = 12 - d
	}
	return 1 - float64(d)/6
}

// temporal blends the day/night preference with the weekday lordship.
func temporal(b models.Body, dayBirth bool, lord models.Body) float64 {
	sect := 0.5
	switch {
	case b == models.Mercury:
		sect = 1.0
	case dayPlanets[b]:
		if dayBirth {
			sect = 1.0
		} else {
			sect = 0.0
		}
	case nightPlanets[b]:
		if dayBirth {
			sect = 0.0
		} else {
			sect = 1.0
		}
	}
	weekday := 0.0
	if b == lord {
		weekday = 1.0
	}
	return 0.75*sect + 0.25*weekday
}

// motional scores speed against the mean motion. Retrogradation is
// strength for the true planets; the luminaries scale by speed alone.
func motional(p models.BodyPosition) float64 {
	mean, ok := meanDailyMotion[p.Body]
	if !ok {
		return 0.5 // nodes move at a near-constant mean rate
	}
	if p.Body != models.Sun && p.Body != models.Moon && p.Retrograde {
		return 1.0
	}
	speed := p.Speed
	if speed < 0 {
		speed = -speed
	}
	return clamp01(speed / (2 * mean))
}

// aspectual sums benefic and malefic influences on the body, weighted
// by exactness, centered at 0.5.
func (e *Engine) aspectual(b models.Body, aspects []models.Aspect) float64 {
	net := 0.0
	for _, a := range aspects {
		var other models.Body
		switch b {
		case a.A:
			other = a.B
		case a.B:
			other = a.A
		default:
			continue
		}
		switch a.Type {
		case models.Trine, models.Sextile, models.SemiSextile:
			net += a.Exactness
		case models.Conjunction:
			if other.IsBenefic() {
				net += a.Exactness
			} else {
				net -= a.Exactness
			}
		default:
			net -= a.Exactness
		}
	}
	return clamp01(0.5 + net/4)
}

// Score computes the component breakdown for every body in the chart.
func (e *Engine) Score(chart *models.Chart) map[models.Body]models.StrengthScore {
	aspects := e.aspects.FindAspects(chart.Points())
	lord := weekdayLord[int(chart.AsOf.Weekday())]

	dayBirth := false
	if sun, ok := chart.Position(models.Sun); ok {
		dayBirth = sun.House >= 7 // above the horizon
	}

	out := make(map[models.Body]models.StrengthScore, len(chart.Positions))
	for _, p := range chart.Positions {
		components := map[models.StrengthComponent]float64{
			models.Positional:  positional(p.Body, p.Sign()),
			models.Directional: directional(p.Body, p.House),
			models.Temporal:    temporal(p.Body, dayBirth, lord),
			models.Motional:    motional(p),
			models.Natural:     naturalStrength[p.Body],
			models.Aspectual:   e.aspectual(p.Body, aspects),
		}
		if _, ok := naturalStrength[p.Body]; !ok {
			components[models.Natural] = 0.5
		}
		total := 0.0
		for _, v := range components {
			total += v
		}
		out[p.Body] = models.StrengthScore{Body: p.Body, Total: total, Components: components}
	}
	return out
}

var _ domservice.StrengthEngine = (*Engine)(nil)
