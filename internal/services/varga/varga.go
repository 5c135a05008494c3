package varga

import (
	"fmt"
	"sort"

	"AstroCalc/internal/domain/models"
	domservice "AstroCalc/internal/domain/service"
	"AstroCalc/pkg/util"
)

// vargaRule maps a (sign, part) pair to the target sign of one
// harmonic chart. Signs are zero-based from Aries.
type vargaRule struct {
	name   string
	target func(sign, part int) int
}

func fromSelf(sign, part int) int { return (sign + part) % 12 }

// oddEven picks the starting sign by sign parity. Starts are relative
// to the sign when rel is true, absolute signs otherwise.
func oddEven(oddStart, evenStart int, rel bool) func(sign, part int) int {
	return func(sign, part int) int {
		start := oddStart
		if sign%2 == 1 { // even sign in traditional counting
			start = evenStart
		}
		if rel {
			start += sign
		}
		return (start + part) % 12
	}
}

// byQuality picks the starting sign by movable/fixed/dual quality.
// Offsets are relative when rel is true, absolute signs otherwise.
func byQuality(movable, fixed, dual int, rel bool) func(sign, part int) int {
	return func(sign, part int) int {
		var start int
		switch sign % 3 {
		case 0:
			start = movable
		case 1:
			start = fixed
		default:
			start = dual
		}
		if rel {
			start += sign
		}
		return (start + part) % 12
	}
}

// byElement picks the starting sign by fire/earth/air/water triplicity.
func byElement(fire, earth, air, water int) func(sign, part int) int {
	starts := [4]int{fire, earth, air, water}
	return func(sign, part int) int {
		return (starts[sign%4] + part) % 12
	}
}

// hora sends each half-sign to Leo or Cancer, the Sun's and the
// Moon's domiciles.
func hora(sign, part int) int {
	const leo, cancer = 4, 3
	if sign%2 == 0 {
		if part == 0 {
			return leo
		}
		return cancer
	}
	if part == 0 {
		return cancer
	}
	return leo
}

var vargaRules = map[int]vargaRule{
	1:  {"rasi", fromSelf},
	2:  {"hora", hora},
	3:  {"drekkana", func(s, p int) int { return (s + 4*p) % 12 }},
	4:  {"chaturthamsa", func(s, p int) int { return (s + 3*p) % 12 }},
	7:  {"saptamsa", oddEven(0, 6, true)},
	9:  {"navamsa", byQuality(0, 8, 4, true)},
	10: {"dasamsa", oddEven(0, 8, true)},
	12: {"dvadasamsa", fromSelf},
	16: {"shodasamsa", byQuality(0, 4, 8, false)},
	20: {"vimsamsa", byQuality(0, 8, 4, false)},
	24: {"chaturvimsamsa", oddEven(4, 3, false)},
	27: {"bhamsa", byElement(0, 3, 6, 9)},
	40: {"khavedamsa", oddEven(0, 6, false)},
	45: {"akshavedamsa", byQuality(0, 4, 8, false)},
	60: {"shashtiamsa", fromSelf},
}

// trimsamsaSegments are the unequal 30th-division segments of an odd
// sign: span in degrees and target sign. Even signs use the reverse
// order with the targets' even-sign counterparts.
var trimsamsaSegments = []struct {
	span   float64
	target int
}{
	{5, 0},  // Mars, Aries
	{5, 10}, // Saturn, Aquarius
	{8, 8},  // Jupiter, Sagittarius
	{7, 2},  // Mercury, Gemini
	{5, 6},  // Venus, Libra
}

var trimsamsaEvenSegments = []struct {
	span   float64
	target int
}{
	{5, 1},  // Venus, Taurus
	{7, 5},  // Mercury, Virgo
	{8, 11}, // Jupiter, Pisces
	{5, 9},  // Saturn, Capricorn
	{5, 7},  // Mars, Scorpio
}

func trimsamsa(sign int, deg float64) (target int, segStart, span float64) {
	segs := trimsamsaSegments
	if sign%2 == 1 {
		segs = trimsamsaEvenSegments
	}
	start := 0.0
	for _, s := range segs {
		if deg < start+s.span {
			return s.target, start, s.span
		}
		start += s.span
	}
	last := segs[len(segs)-1]
	return last.target, 25, last.span
}

// Engine derives harmonic charts by the classical sign-division
// rules. Houses in a derived chart are whole-sign from the derived
// ascendant.
type Engine struct{}

// NewEngine returns a divisional chart engine.
func NewEngine() *Engine { return &Engine{} }

// SupportedFactors lists the divisional factors in ascending order.
func SupportedFactors() []int {
	out := make([]int, 0, len(vargaRules)+1)
	for f := range vargaRules {
		out = append(out, f)
	}
	out = append(out, 30)
	sort.Ints(out)
	return out
}

// VargaName returns the Sanskrit name of a divisional factor.
func VargaName(factor int) string {
	if factor == 30 {
		return "trimsamsa"
	}
	if r, ok := vargaRules[factor]; ok {
		return r.name
	}
	return ""
}

// remap computes the harmonic longitude of one zodiacal longitude.
func remap(lon float64, factor int) float64 {
	lon = util.Norm360(lon)
	sign := int(lon / 30)
	deg := lon - float64(sign)*30

	if factor == 30 {
		target, segStart, span := trimsamsa(sign, deg)
		return float64(target)*30 + (deg-segStart)/span*30
	}

	size := 30.0 / float64(factor)
	part := int(deg / size)
	if part >= factor { // guard the 30.0 boundary
		part = factor - 1
	}
	target := vargaRules[factor].target(sign, part)
	return float64(target)*30 + (deg-float64(part)*size)/size*30
}

// Derive builds the divisional chart for the given factor.
func (e *Engine) Derive(chart *models.Chart, factor int) (*models.DivisionalChart, error) {
	if factor != 30 {
		if _, ok := vargaRules[factor]; !ok {
			return nil, fmt.Errorf("%w: divisional factor D%d", models.ErrUnsupportedParameter, factor)
		}
	}

	asc := remap(chart.Asc, factor)
	ascSign := int(asc / 30)

	positions := make([]models.BodyPosition, len(chart.Positions))
	for i, p := range chart.Positions {
		q := p
		q.Longitude = remap(p.Longitude, factor)
		q.House = (q.Sign()-ascSign+12)%12 + 1
		positions[i] = q
	}

	return &models.DivisionalChart{
		Factor:    factor,
		Base:      chart,
		Asc:       asc,
		Positions: positions,
	}, nil
}

var _ domservice.DivisionalEngine = (*Engine)(nil)
