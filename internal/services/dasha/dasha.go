package dasha

import (
	"context"
	"fmt"
	"time"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	domservice "AstroCalc/internal/domain/service"
	"AstroCalc/internal/services/ephemeris"
	"AstroCalc/pkg/util"
)

// The Vimshottari cycle: nine rulers, 120 years, anchored to the
// Moon's nakshatra at birth.
const (
	cycleYears    = 120.0
	yearDays      = 365.25
	nakshatraArc  = 360.0 / 27 // 13 degrees 20 minutes
	defaultLevels = 3          // major, sub and sub-sub periods
)

// dashaRulers in cycle order with their spans in years.
var dashaRulers = []struct {
	body  models.Body
	years float64
}{
	{models.Ketu, 7},
	{models.Venus, 20},
	{models.Sun, 6},
	{models.Moon, 10},
	{models.Mars, 7},
	{models.Rahu, 18},
	{models.Jupiter, 16},
	{models.Saturn, 19},
	{models.Mercury, 17},
}

// nakshatraNames indexed by sector, 0 = Ashwini.
var nakshatraNames = []string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha",
	"Anuradha", "Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha",
	"Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati",
}

// Nakshatra maps a sidereal longitude to its lunar sector index,
// name and ruling body.
func Nakshatra(siderealLon float64) (int, string, models.Body) {
	idx := int(util.Norm360(siderealLon)/nakshatraArc) % 27
	return idx, nakshatraNames[idx], dashaRulers[idx%len(dashaRulers)].body
}

// Engine builds and queries Vimshottari period trees. The tree is
// computed once per subject from the sidereal Moon at birth and is
// immutable afterwards.
type Engine struct {
	eph    domrepo.EphemerisSource
	levels int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLevels sets how many levels below the root are expanded.
func WithLevels(n int) EngineOption {
	return func(e *Engine) {
		if n >= 1 {
			e.levels = n
		}
	}
}

// NewEngine returns a period engine over the given ephemeris source.
func NewEngine(eph domrepo.EphemerisSource, opts ...EngineOption) *Engine {
	e := &Engine{eph: eph, levels: defaultLevels}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func yearsToDuration(y float64) time.Duration {
	return time.Duration(y * yearDays * 24 * float64(time.Hour))
}

// subdivide expands one node into its nine children, starting from
// the node's own ruler. The last child is pinned to the parent's end
// so the spans sum exactly.
func subdivide(p *models.Period, startIdx int, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	span := p.End.Sub(p.Start)
	start := p.Start
	children := make([]*models.Period, 0, len(dashaRulers))
	for i := 0; i < len(dashaRulers); i++ {
		r := dashaRulers[(startIdx+i)%len(dashaRulers)]
		end := start.Add(time.Duration(float64(span) * r.years / cycleYears))
		if i == len(dashaRulers)-1 {
			end = p.End
		}
		child := &models.Period{
			Level:  p.Level + 1,
			Ruler:  r.body,
			Start:  start,
			End:    end,
			Parent: p,
		}
		subdivide(child, (startIdx+i)%len(dashaRulers), depth+1, maxDepth)
		children = append(children, child)
		start = end
	}
	p.Children = children
}

// BuildTree computes the full tree for a subject. The root begins at
// the start of the major period running at birth, found from the
// Moon's advance through its nakshatra, and extends one whole
// 120-year cycle beyond that period's end. A full cycle therefore
// remains after the birth instant regardless of how late in the
// starting ruler's span the birth falls.
func (e *Engine) BuildTree(ctx context.Context, subject models.Subject) (*models.Period, error) {
	pos, err := e.eph.Positions(ctx, []models.Body{models.Moon}, subject.JulianDay)
	if err != nil {
		return nil, fmt.Errorf("build period tree: %w", err)
	}
	moon := util.Norm360(pos[0].Longitude - ephemeris.Ayanamsa(subject.JulianDay))

	nakshatra, _, _ := Nakshatra(moon)
	rulerIdx := nakshatra % len(dashaRulers)
	fracElapsed := (moon - float64(nakshatra)*nakshatraArc) / nakshatraArc

	rootStart := subject.BirthUTC.Add(-yearsToDuration(fracElapsed * dashaRulers[rulerIdx].years))
	root := &models.Period{
		Level: 0,
		Start: rootStart,
		End:   rootStart.Add(yearsToDuration(cycleYears + dashaRulers[rulerIdx].years)),
	}

	// ten major periods: the birth ruler's, the eight that follow in
	// cycle order, and the birth ruler's again heading the next cycle
	start := rootStart
	children := make([]*models.Period, 0, len(dashaRulers)+1)
	for i := 0; i <= len(dashaRulers); i++ {
		idx := (rulerIdx + i) % len(dashaRulers)
		end := start.Add(yearsToDuration(dashaRulers[idx].years))
		if i == len(dashaRulers) {
			end = root.End
		}
		child := &models.Period{
			Level:  1,
			Ruler:  dashaRulers[idx].body,
			Start:  start,
			End:    end,
			Parent: root,
		}
		subdivide(child, idx, 2, e.levels)
		children = append(children, child)
		start = end
	}
	root.Children = children
	return root, nil
}

// Query walks the tree to the deepest node containing at, returning
// the ruler chain major period first.
func (e *Engine) Query(tree *models.Period, at time.Time) (models.PeriodPath, error) {
	if !tree.Contains(at) {
		return nil, fmt.Errorf("%w: %s outside [%s, %s]", models.ErrOutOfRangeInstant,
			at.Format(time.RFC3339), tree.Start.Format(time.RFC3339), tree.End.Format(time.RFC3339))
	}
	var path models.PeriodPath
	node := tree
	for len(node.Children) > 0 {
		var next *models.Period
		for _, c := range node.Children {
			if c.Contains(at) {
				next = c
				break
			}
		}
		if next == nil {
			break
		}
		path = append(path, next)
		node = next
	}
	return path, nil
}

var _ domservice.PeriodEngine = (*Engine)(nil)
