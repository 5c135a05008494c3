package models

import "time"

// AnalysisRequest is the dispatcher envelope for one named analysis.
type AnalysisRequest struct {
	AnalysisID string            `json:"analysis_id"`
	Subject    Subject           `json:"subject"`
	Partner    *Subject          `json:"partner,omitempty"`
	AsOf       *time.Time        `json:"as_of,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
}

// AnalysisResult carries the structured payload plus narrative text.
// It contains no wall-clock fields so identical requests serialize
// bit-identically.
type AnalysisResult struct {
	AnalysisID string `json:"analysis_id"`
	Payload    any    `json:"payload"`
	Narrative  string `json:"narrative,omitempty"`
}

// ComprehensiveReport bundles several analyses for one subject.
// Failed sections land in Errors under their analysis id instead of
// failing the whole report.
type ComprehensiveReport struct {
	Subject  Subject                    `json:"subject"`
	Sections map[string]*AnalysisResult `json:"sections"`
	Errors   map[string]string          `json:"errors,omitempty"`
}

// TransitEventKind distinguishes scan findings.
type TransitEventKind string

const (
	SignIngress      TransitEventKind = "ingress"
	AspectPerfection TransitEventKind = "aspect"
)

// TransitEvent is one timed finding of a transit scan, refined to
// sub-day precision.
type TransitEvent struct {
	Kind      TransitEventKind `json:"kind"`
	Time      time.Time        `json:"time"`
	Transit   Body             `json:"transit"`
	Natal     Body             `json:"natal,omitempty"`  // aspect events
	Aspect    AspectType       `json:"aspect,omitempty"` // aspect events
	Sign      string           `json:"sign,omitempty"`   // ingress events
	Longitude float64          `json:"longitude"`
}
