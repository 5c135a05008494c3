package models

// ProgressionTechnique selects the symbolic advancement rule.
type ProgressionTechnique string

const (
	// SecondaryProgression advances one degree per elapsed year.
	SecondaryProgression ProgressionTechnique = "secondary"
	// SolarArcDirection advances every point by the Sun's
	// day-for-a-year arc.
	SolarArcDirection ProgressionTechnique = "solar-arc"
)

// IsValidTechnique reports whether t is a supported technique.
func IsValidTechnique(t ProgressionTechnique) bool {
	return t == SecondaryProgression || t == SolarArcDirection
}

// ProgressedChart holds symbolically advanced positions and their
// aspects back to the natal chart.
type ProgressedChart struct {
	Technique      ProgressionTechnique `json:"technique"`
	Years          float64              `json:"years"`
	Arc            float64              `json:"arc"`
	Positions      []BodyPosition       `json:"positions"`
	AspectsToNatal []CrossAspect        `json:"aspects_to_natal"`
}
