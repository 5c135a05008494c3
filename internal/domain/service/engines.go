package service

import (
	"context"
	"time"

	"AstroCalc/internal/domain/models"
)

// ChartBuilder composes a full chart from a subject and instant.
type ChartBuilder interface {
	Build(ctx context.Context, subject models.Subject, asOf time.Time, hs models.HouseSystem) (*models.Chart, error)
}

// DivisionalEngine derives harmonic charts from a base chart.
type DivisionalEngine interface {
	Derive(chart *models.Chart, factor int) (*models.DivisionalChart, error)
}

// AspectEngine finds angular relationships and configurations.
type AspectEngine interface {
	FindAspects(points []models.BodyPosition) []models.Aspect
	FindPatterns(points []models.BodyPosition) []models.Pattern
	CrossAspects(a, b []models.BodyPosition) []models.CrossAspect
}

// StrengthEngine computes composite strength scores per body.
type StrengthEngine interface {
	Score(chart *models.Chart) map[models.Body]models.StrengthScore
}

// PeriodEngine builds and queries the planetary-period tree.
type PeriodEngine interface {
	BuildTree(ctx context.Context, subject models.Subject) (*models.Period, error)
	Query(tree *models.Period, at time.Time) (models.PeriodPath, error)
}

// PredictiveEngine derives symbolic and event-timed charts.
type PredictiveEngine interface {
	Progress(ctx context.Context, natal *models.Chart, target time.Time, technique models.ProgressionTechnique) (*models.ProgressedChart, error)
	ReturnChart(ctx context.Context, natal *models.Chart, body models.Body, targetYear int) (*models.Chart, error)
	TransitScan(ctx context.Context, natal *models.Chart, from, to time.Time) ([]models.TransitEvent, error)
}

// CompatEngine compares two charts.
type CompatEngine interface {
	Compare(ctx context.Context, a, b *models.Chart) (*models.CompatReport, error)
	CompositeChart(a, b *models.Chart) []models.CompositePoint
	MidpointChart(ctx context.Context, a, b models.Subject, hs models.HouseSystem) (*models.Chart, error)
}
