package models

// AspectType names a recognized angular relationship.
type AspectType string

const (
	Conjunction    AspectType = "conjunction"    // 0
	SemiSextile    AspectType = "semi-sextile"   // 30
	SemiSquare     AspectType = "semi-square"    // 45
	Sextile        AspectType = "sextile"        // 60
	Square         AspectType = "square"         // 90
	Trine          AspectType = "trine"          // 120
	Sesquiquadrate AspectType = "sesquiquadrate" // 135
	Quincunx       AspectType = "quincunx"       // 150
	Opposition     AspectType = "opposition"     // 180
)

// Aspect records a matched angular relationship between two points.
// A and B are stored in canonical order so Aspect(a,b) == Aspect(b,a).
type Aspect struct {
	A          Body       `json:"a"`
	B          Body       `json:"b"`
	Type       AspectType `json:"type"`
	Angle      float64    `json:"angle"`      // catalog angle
	Separation float64    `json:"separation"` // actual minimal separation
	Orb        float64    `json:"orb"`        // allowed orb that matched
	Exactness  float64    `json:"exactness"`  // 1 at partile, 0 at orb edge
}

// Harmonious reports whether the aspect type is classically soft.
func (a Aspect) Harmonious() bool {
	switch a.Type {
	case Trine, Sextile, SemiSextile:
		return true
	default:
		return false
	}
}

// PatternType names a detected multi-point configuration.
type PatternType string

const (
	GrandTrine PatternType = "grand-trine"
	TSquare    PatternType = "t-square"
	Stellium   PatternType = "stellium"
)

// Pattern is a detected configuration over three or more points.
type Pattern struct {
	Type    PatternType `json:"type"`
	Bodies  []Body      `json:"bodies"`
	Element string      `json:"element,omitempty"` // grand trine triplicity
	Apex    Body        `json:"apex,omitempty"`    // t-square apex
	ArcSpan float64     `json:"arc_span,omitempty"`
}
