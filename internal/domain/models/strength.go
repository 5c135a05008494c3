package models

// StrengthComponent names one sub-score of the composite strength.
type StrengthComponent string

const (
	Positional  StrengthComponent = "positional"
	Directional StrengthComponent = "directional"
	Temporal    StrengthComponent = "temporal"
	Motional    StrengthComponent = "motional"
	Natural     StrengthComponent = "natural"
	Aspectual   StrengthComponent = "aspectual"
)

// StrengthComponents in reporting order.
var StrengthComponents = []StrengthComponent{
	Positional, Directional, Temporal, Motional, Natural, Aspectual,
}

// StrengthScore is a body's composite strength with its component
// breakdown. Each component is normalized to [0, 1]; Total is their
// sum, so it lies in [0, 6].
type StrengthScore struct {
	Body       Body                          `json:"body"`
	Total      float64                       `json:"total"`
	Components map[StrengthComponent]float64 `json:"components"`
}
