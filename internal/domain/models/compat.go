package models

// CompatFactor names one independently scored comparison factor.
type CompatFactor string

const (
	LuminaryHarmony   CompatFactor = "luminary"
	AffectionHarmony  CompatFactor = "affection"
	StructuralHarmony CompatFactor = "structural"
)

// CrossAspect is one cell of the synastry matrix: a point of chart A
// against a point of chart B.
type CrossAspect struct {
	BodyA      Body       `json:"body_a"`
	BodyB      Body       `json:"body_b"`
	Type       AspectType `json:"type"`
	Separation float64    `json:"separation"`
	Exactness  float64    `json:"exactness"`
}

// CompositePoint is one shorter-arc midpoint of the composite chart.
type CompositePoint struct {
	Body      Body    `json:"body"`
	Longitude float64 `json:"longitude"`
}

// CompatReport is the full pairwise comparison. compare(A,B) and
// compare(B,A) produce the transposed matrix, the same composite and
// the same score.
type CompatReport struct {
	CrossAspects []CrossAspect            `json:"cross_aspects"`
	Composite    []CompositePoint         `json:"composite"`
	Factors      map[CompatFactor]float64 `json:"factors"`
	Score        float64                  `json:"score"` // 0..100
}

// MaxCompatScore is the highest attainable overall score; comparing a
// chart against itself reaches it.
const MaxCompatScore = 100.0
