package models

import "time"

// Period is one node in the hierarchical planetary-period tree.
// Level 0 is the root covering the whole cycle; children subdivide
// their parent's span exactly.
type Period struct {
	Level    int       `json:"level"`
	Ruler    Body      `json:"ruler,omitempty"` // empty on the root
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Children []*Period `json:"children,omitempty"`
	Parent   *Period   `json:"-"`
}

// Span returns the node's duration.
func (p *Period) Span() time.Duration { return p.End.Sub(p.Start) }

// Contains reports whether t falls inside the node's half-open span.
func (p *Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// PeriodPath is the ruler chain active at a queried instant, major
// period first.
type PeriodPath []*Period

// Rulers returns just the ruling bodies along the path.
func (pp PeriodPath) Rulers() []Body {
	out := make([]Body, 0, len(pp))
	for _, p := range pp {
		out = append(out, p.Ruler)
	}
	return out
}
