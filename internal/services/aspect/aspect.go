package aspect

import (
	"sort"

	"AstroCalc/internal/domain/models"
	domservice "AstroCalc/internal/domain/service"
	"AstroCalc/pkg/util"
)

// aspectDef is one catalog entry: the exact angle and its base orb in
// degrees before class scaling.
type aspectDef struct {
	typ   models.AspectType
	angle float64
	orb   float64
}

// majors carry wide orbs, minors tight ones.
var aspectCatalog = []aspectDef{
	{models.Conjunction, 0, 8},
	{models.SemiSextile, 30, 2},
	{models.SemiSquare, 45, 2},
	{models.Sextile, 60, 4},
	{models.Square, 90, 7},
	{models.Trine, 120, 7},
	{models.Sesquiquadrate, 135, 2},
	{models.Quincunx, 150, 2},
	{models.Opposition, 180, 8},
}

// classMultiplier widens orbs for luminaries and narrows them for
// slow outer bodies.
func classMultiplier(c models.BodyClass) float64 {
	switch c {
	case models.ClassLuminary:
		return 1.25
	case models.ClassOuter:
		return 0.75
	default:
		return 1.0
	}
}

// pairOrb scales a base orb by the wider of the two bodies' classes.
func pairOrb(base float64, a, b models.Body) float64 {
	ma, mb := classMultiplier(a.Class()), classMultiplier(b.Class())
	if mb > ma {
		ma = mb
	}
	return base * ma
}

// bodyRank orders bodies canonically: ephemeris order, then angles.
func bodyRank(b models.Body) int {
	for i, x := range models.AllBodies {
		if x == b {
			return i
		}
	}
	switch b {
	case models.Ascendant:
		return len(models.AllBodies)
	case models.Midheaven:
		return len(models.AllBodies) + 1
	}
	return len(models.AllBodies) + 2
}

// Engine matches aspects from the catalog. Orbs scale with the
// bodies involved; pattern detection reuses the same matches.
type Engine struct {
	stelliumArc float64
	orbs        map[models.AspectType]float64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithStelliumArc overrides the default 8 degree cluster arc.
func WithStelliumArc(deg float64) EngineOption {
	return func(e *Engine) {
		if deg > 0 {
			e.stelliumArc = deg
		}
	}
}

// WithOrbs overrides base orbs for the named aspects. Aspects not
// present keep their catalog values.
func WithOrbs(orbs map[models.AspectType]float64) EngineOption {
	return func(e *Engine) {
		for typ, orb := range orbs {
			if orb > 0 {
				e.orbs[typ] = orb
			}
		}
	}
}

// NewEngine returns an aspect engine with catalog orbs.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		stelliumArc: 8,
		orbs:        make(map[models.AspectType]float64, len(aspectCatalog)),
	}
	for _, def := range aspectCatalog {
		e.orbs[def.typ] = def.orb
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// match returns the closest catalog aspect within orb for a pair, or
// false when none applies.
func (e *Engine) match(a, b models.BodyPosition) (models.Aspect, bool) {
	sep := util.Separation(a.Longitude, b.Longitude)
	best := models.Aspect{}
	bestDelta := 361.0
	found := false
	for _, def := range aspectCatalog {
		orb := pairOrb(e.orbs[def.typ], a.Body, b.Body)
		delta := sep - def.angle
		if delta < 0 {
			delta = -delta
		}
		if delta > orb || delta >= bestDelta {
			continue
		}
		bestDelta = delta
		found = true
		best = models.Aspect{
			A:          a.Body,
			B:          b.Body,
			Type:       def.typ,
			Angle:      def.angle,
			Separation: sep,
			Orb:        orb,
			Exactness:  1 - delta/orb,
		}
	}
	if found && bodyRank(best.B) < bodyRank(best.A) {
		best.A, best.B = best.B, best.A
	}
	return best, found
}

// FindAspects returns every matched aspect over all unordered pairs.
// The node axis pair is skipped: Rahu and Ketu oppose by definition.
func (e *Engine) FindAspects(points []models.BodyPosition) []models.Aspect {
	out := make([]models.Aspect, 0, len(points))
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].Body.IsNode() && points[j].Body.IsNode() {
				continue
			}
			if asp, ok := e.match(points[i], points[j]); ok {
				out = append(out, asp)
			}
		}
	}
	return out
}

// CrossAspects matches every point of a against every point of b.
func (e *Engine) CrossAspects(a, b []models.BodyPosition) []models.CrossAspect {
	out := make([]models.CrossAspect, 0, len(a))
	for _, pa := range a {
		for _, pb := range b {
			asp, ok := e.match(pa, pb)
			if !ok {
				continue
			}
			out = append(out, models.CrossAspect{
				BodyA:      pa.Body,
				BodyB:      pb.Body,
				Type:       asp.Type,
				Separation: asp.Separation,
				Exactness:  asp.Exactness,
			})
		}
	}
	return out
}

var elementNames = []string{"fire", "earth", "air", "water"}

// FindPatterns detects grand trines, t-squares and stelliums.
func (e *Engine) FindPatterns(points []models.BodyPosition) []models.Pattern {
	type pairKey struct{ i, j int }
	matched := make(map[pairKey]models.AspectType)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if asp, ok := e.match(points[i], points[j]); ok {
				matched[pairKey{i, j}] = asp.Type
			}
		}
	}
	has := func(i, j int, t models.AspectType) bool {
		if i > j {
			i, j = j, i
		}
		return matched[pairKey{i, j}] == t
	}

	var patterns []models.Pattern

	// grand trine: three mutual trines in one triplicity
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			for k := j + 1; k < len(points); k++ {
				if !has(i, j, models.Trine) || !has(j, k, models.Trine) || !has(i, k, models.Trine) {
					continue
				}
				el := points[i].Sign() % 4
				if points[j].Sign()%4 != el || points[k].Sign()%4 != el {
					continue
				}
				patterns = append(patterns, models.Pattern{
					Type:    models.GrandTrine,
					Bodies:  []models.Body{points[i].Body, points[j].Body, points[k].Body},
					Element: elementNames[el],
				})
			}
		}
	}

	// t-square: an opposition with both ends square a third apex
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if !has(i, j, models.Opposition) {
				continue
			}
			for k := 0; k < len(points); k++ {
				if k == i || k == j {
					continue
				}
				if has(i, k, models.Square) && has(j, k, models.Square) {
					patterns = append(patterns, models.Pattern{
						Type:   models.TSquare,
						Bodies: []models.Body{points[i].Body, points[j].Body, points[k].Body},
						Apex:   points[k].Body,
					})
				}
			}
		}
	}

	patterns = append(patterns, e.stelliums(points)...)
	return patterns
}

// stelliums clusters bodies (not chart angles) inside the configured
// arc, reporting maximal groups of three or more.
func (e *Engine) stelliums(points []models.BodyPosition) []models.Pattern {
	bodies := make([]models.BodyPosition, 0, len(points))
	for _, p := range points {
		if p.Body.Class() != models.ClassPoint {
			bodies = append(bodies, p)
		}
	}
	if len(bodies) < 3 {
		return nil
	}
	sort.Slice(bodies, func(i, j int) bool { return bodies[i].Longitude < bodies[j].Longitude })

	n := len(bodies)

	// maximal window of cluster members starting at each body,
	// allowing wrap through 0 Aries
	windows := make([][]int, n)
	for i := 0; i < n; i++ {
		win := []int{i}
		for k := 1; k < n; k++ {
			if util.Norm360(bodies[(i+k)%n].Longitude-bodies[i].Longitude) > e.stelliumArc {
				break
			}
			win = append(win, (i+k)%n)
		}
		windows[i] = win
	}

	contains := func(big, small []int) bool {
		set := make(map[int]bool, len(big))
		for _, x := range big {
			set[x] = true
		}
		for _, x := range small {
			if !set[x] {
				return false
			}
		}
		return true
	}

	var out []models.Pattern
	for i, win := range windows {
		if len(win) < 3 {
			continue
		}
		maximal := true
		for j, other := range windows {
			if j == i || !contains(other, win) {
				continue
			}
			// strictly larger window wins; equal sets keep the first
			if len(other) > len(win) || (len(other) == len(win) && j < i) {
				maximal = false
				break
			}
		}
		if !maximal {
			continue
		}
		group := make([]models.Body, 0, len(win))
		for _, idx := range win {
			group = append(group, bodies[idx].Body)
		}
		out = append(out, models.Pattern{
			Type:    models.Stellium,
			Bodies:  group,
			ArcSpan: util.Norm360(bodies[win[len(win)-1]].Longitude - bodies[win[0]].Longitude),
		})
	}
	return out
}

var _ domservice.AspectEngine = (*Engine)(nil)
