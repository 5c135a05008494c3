package usecase

import (
	"fmt"

	"AstroCalc/internal/domain/models"
	cachesvc "AstroCalc/internal/service/cache"
	"AstroCalc/internal/services/varga"
)

// PipelineKind routes a descriptor to its computation pipeline.
type PipelineKind string

const (
	PipelineNatal      PipelineKind = "natal"
	PipelineDivisional PipelineKind = "divisional"
	PipelineAspects    PipelineKind = "aspects"
	PipelinePatterns   PipelineKind = "patterns"
	PipelineStrength   PipelineKind = "strength"
	PipelinePeriods    PipelineKind = "periods"
	PipelinePeriodPath PipelineKind = "period-path"
	PipelineProgress   PipelineKind = "progression"
	PipelineReturn     PipelineKind = "return"
	PipelineTransits   PipelineKind = "transits"
	PipelineSynastry   PipelineKind = "synastry"
	PipelineComposite  PipelineKind = "composite"
	PipelineMidpoint   PipelineKind = "midpoint"
)

// Descriptor declares one invokable analysis: its pipeline, required
// inputs and cache tier.
type Descriptor struct {
	ID           string
	Kind         PipelineKind
	NeedsPartner bool
	NeedsAsOf    bool
	Tier         cachesvc.Tier

	// pipeline-specific parameters
	Factor     int                         // divisional charts
	Technique  models.ProgressionTechnique // progressions
	ReturnBody models.Body                 // return charts
}

// Catalog enumerates every analysis the dispatcher serves. Divisional
// entries are generated from the varga factor list.
var Catalog = buildCatalog()

func buildCatalog() []Descriptor {
	out := []Descriptor{
		{ID: "natal-chart", Kind: PipelineNatal, Tier: cachesvc.TierStatic},
		{ID: "natal-aspects", Kind: PipelineAspects, Tier: cachesvc.TierStatic},
		{ID: "natal-patterns", Kind: PipelinePatterns, Tier: cachesvc.TierStatic},
		{ID: "strength", Kind: PipelineStrength, Tier: cachesvc.TierStatic},
		{ID: "dasha-tree", Kind: PipelinePeriods, Tier: cachesvc.TierStatic},
		{ID: "dasha-path", Kind: PipelinePeriodPath, NeedsAsOf: true, Tier: cachesvc.TierSlow},

		{ID: "progression-secondary", Kind: PipelineProgress, NeedsAsOf: true, Tier: cachesvc.TierSlow,
			Technique: models.SecondaryProgression},
		{ID: "progression-solar-arc", Kind: PipelineProgress, NeedsAsOf: true, Tier: cachesvc.TierSlow,
			Technique: models.SolarArcDirection},
		{ID: "solar-return", Kind: PipelineReturn, NeedsAsOf: true, Tier: cachesvc.TierSlow,
			ReturnBody: models.Sun},
		{ID: "lunar-return", Kind: PipelineReturn, NeedsAsOf: true, Tier: cachesvc.TierSlow,
			ReturnBody: models.Moon},
		{ID: "transit-scan", Kind: PipelineTransits, NeedsAsOf: true, Tier: cachesvc.TierFast},

		{ID: "synastry", Kind: PipelineSynastry, NeedsPartner: true, Tier: cachesvc.TierStatic},
		{ID: "composite-chart", Kind: PipelineComposite, NeedsPartner: true, Tier: cachesvc.TierStatic},
		{ID: "midpoint-chart", Kind: PipelineMidpoint, NeedsPartner: true, Tier: cachesvc.TierStatic},
	}
	for _, f := range varga.SupportedFactors() {
		if f == 1 {
			continue // D1 is the natal chart itself
		}
		out = append(out, Descriptor{
			ID:     fmt.Sprintf("varga-d%d", f),
			Kind:   PipelineDivisional,
			Tier:   cachesvc.TierStatic,
			Factor: f,
		})
	}
	return out
}

var catalogByID = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(Catalog))
	for _, d := range Catalog {
		m[d.ID] = d
	}
	return m
}()

// Lookup resolves an analysis id to its descriptor.
func Lookup(id string) (Descriptor, bool) {
	d, ok := catalogByID[id]
	return d, ok
}

// AnalysisIDs lists every catalog id in declaration order.
func AnalysisIDs() []string {
	out := make([]string, 0, len(Catalog))
	for _, d := range Catalog {
		out = append(out, d.ID)
	}
	return out
}
