package repository

import (
	"context"

	"AstroCalc/internal/domain/models"
)

// EphemerisSource supplies body positions for one instant. Sources
// may perform blocking I/O; callers batch all bodies of a chart into
// a single call.
type EphemerisSource interface {
	Positions(ctx context.Context, bodies []models.Body, jd float64) ([]models.BodyPosition, error)
}

// Metrics records engine-level observations.
type Metrics interface {
	RecordAnalysis(analysisID string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordCacheHit(hit bool)
}
