package models

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

// SubjectInput is the wire form of a subject before resolution.
// Geocoding happens upstream; coordinates arrive resolved.
type SubjectInput struct {
	Name        string  `json:"name"`
	Birth       string  `json:"birth" validate:"required"` // RFC3339 local time
	TZOffsetMin int     `json:"tz_offset_min" validate:"gte=-840,lte=840"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	ElevationM  float64 `json:"elevation_m"`
}

type AnalysisHTTPRequest struct {
	AnalysisID string            `json:"analysis_id" validate:"required"`
	Subject    SubjectInput      `json:"subject" validate:"required"`
	Partner    *SubjectInput     `json:"partner,omitempty"`
	AsOf       string            `json:"as_of,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
}

type ChartHTTPRequest struct {
	Subject     SubjectInput `json:"subject" validate:"required"`
	HouseSystem string       `json:"house_system" default:"placidus" validate:"oneof=placidus whole-sign"`
}

type ComprehensiveHTTPRequest struct {
	Subject  SubjectInput `json:"subject" validate:"required"`
	Analyses []string     `json:"analyses,omitempty" validate:"max=32,dive,min=1"`
}
