package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	domservice "AstroCalc/internal/domain/service"
	cachesvc "AstroCalc/internal/service/cache"
	"AstroCalc/internal/services/dasha"
	applogger "AstroCalc/pkg/logger"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultTransitDays = 30
	maxTransitDays     = 366
)

// Dispatcher routes an AnalysisRequest to its computation pipeline,
// consulting the result cache before running any engine. Every
// pipeline is deterministic, so a cached hit is indistinguishable
// from a fresh run.
type Dispatcher struct {
	builder    domservice.ChartBuilder
	varga      domservice.DivisionalEngine
	aspects    domservice.AspectEngine
	strength   domservice.StrengthEngine
	periods    domservice.PeriodEngine
	predictive domservice.PredictiveEngine
	compat     domservice.CompatEngine

	cache   *cachesvc.ResultCache
	metrics domrepo.Metrics
	l       *applogger.Logger

	houses  models.HouseSystem
	timeout time.Duration
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithResultCache enables result memoization.
func WithResultCache(rc *cachesvc.ResultCache) DispatcherOption {
	return func(d *Dispatcher) { d.cache = rc }
}

// WithMetrics records invocation counts, errors and latency.
func WithMetrics(m domrepo.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithDispatchLogger injects a structured logger.
func WithDispatchLogger(l *applogger.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.l = l }
}

// WithHouseSystem overrides the default house system for pipelines
// that build charts.
func WithHouseSystem(hs models.HouseSystem) DispatcherOption {
	return func(d *Dispatcher) { d.houses = hs }
}

// Engines bundles the computation engines a Dispatcher drives.
type Engines struct {
	Builder    domservice.ChartBuilder
	Varga      domservice.DivisionalEngine
	Aspects    domservice.AspectEngine
	Strength   domservice.StrengthEngine
	Periods    domservice.PeriodEngine
	Predictive domservice.PredictiveEngine
	Compat     domservice.CompatEngine
}

func NewDispatcher(e Engines, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		builder:    e.Builder,
		varga:      e.Varga,
		aspects:    e.Aspects,
		strength:   e.Strength,
		periods:    e.Periods,
		predictive: e.Predictive,
		compat:     e.Compat,
		houses:     models.Placidus,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Invoke runs one named analysis. Unknown ids map to
// ErrUnsupportedParameter; missing inputs to InputValidationError;
// anything unexpected from a pipeline is wrapped in AnalysisError.
func (d *Dispatcher) Invoke(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	desc, ok := Lookup(req.AnalysisID)
	if !ok {
		return nil, fmt.Errorf("analysis %q: %w", req.AnalysisID, models.ErrUnsupportedParameter)
	}
	if fields := missingFields(desc, req); len(fields) > 0 {
		return nil, &models.InputValidationError{Fields: fields}
	}

	if d.metrics != nil {
		d.metrics.RecordAnalysis(req.AnalysisID)
		start := time.Now()
		defer func() {
			d.metrics.RecordLatency(req.AnalysisID, time.Since(start).Seconds())
		}()
	}

	key := cachesvc.Key(req)
	if d.cache != nil {
		var cached models.AnalysisResult
		if d.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	res, err := d.run(ctx, desc, req)
	if err != nil {
		if d.metrics != nil {
			d.metrics.RecordError(req.AnalysisID)
		}
		if isTaxonomyError(err) {
			return nil, err
		}
		return nil, &models.AnalysisError{AnalysisID: req.AnalysisID, Err: err}
	}

	if d.cache != nil {
		d.cache.Set(ctx, key, res, desc.Tier)
	}
	if d.l != nil {
		d.l.Debug("analysis served",
			applogger.String("analysis", req.AnalysisID),
			applogger.String("subject", req.Subject.Fingerprint()))
	}
	return res, nil
}

func missingFields(desc Descriptor, req models.AnalysisRequest) []string {
	var fields []string
	if req.Subject.BirthUTC.IsZero() {
		fields = append(fields, "subject.birth_utc")
	}
	if desc.NeedsPartner && req.Partner == nil {
		fields = append(fields, "partner")
	}
	if desc.NeedsAsOf && req.AsOf == nil {
		fields = append(fields, "as_of")
	}
	return fields
}

// isTaxonomyError reports whether err already belongs to the error
// taxonomy and should pass through unwrapped.
func isTaxonomyError(err error) bool {
	var ive *models.InputValidationError
	if errors.As(err, &ive) {
		return true
	}
	for _, sentinel := range []error{
		models.ErrEphemerisUnavailable,
		models.ErrGeocodingUnresolved,
		models.ErrInvalidLatitude,
		models.ErrUnsupportedParameter,
		models.ErrOutOfRangeInstant,
		models.ErrNoConvergence,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) houseSystem(req models.AnalysisRequest) (models.HouseSystem, error) {
	if v, ok := req.Params["house_system"]; ok {
		hs := models.HouseSystem(v)
		if !models.IsValidHouseSystem(hs) {
			return "", fmt.Errorf("house system %q: %w", v, models.ErrUnsupportedParameter)
		}
		return hs, nil
	}
	return d.houses, nil
}

func (d *Dispatcher) natalChart(ctx context.Context, req models.AnalysisRequest) (*models.Chart, error) {
	hs, err := d.houseSystem(req)
	if err != nil {
		return nil, err
	}
	return d.builder.Build(ctx, req.Subject, req.Subject.BirthUTC, hs)
}

func (d *Dispatcher) run(ctx context.Context, desc Descriptor, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	res := &models.AnalysisResult{AnalysisID: req.AnalysisID}

	switch desc.Kind {
	case PipelineNatal:
		chart, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		res.Payload = chart
		res.Narrative = chartNarrative(chart)

	case PipelineDivisional:
		chart, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		div, err := d.varga.Derive(chart, desc.Factor)
		if err != nil {
			return nil, err
		}
		res.Payload = div

	case PipelineAspects:
		chart, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		res.Payload = d.aspects.FindAspects(chart.Points())

	case PipelinePatterns:
		chart, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		res.Payload = d.aspects.FindPatterns(chart.Points())

	case PipelineStrength:
		chart, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		scores := d.strength.Score(chart)
		res.Payload = scores
		res.Narrative = strengthNarrative(scores)

	case PipelinePeriods:
		tree, err := d.periods.BuildTree(ctx, req.Subject)
		if err != nil {
			return nil, err
		}
		res.Payload = tree

	case PipelinePeriodPath:
		tree, err := d.periods.BuildTree(ctx, req.Subject)
		if err != nil {
			return nil, err
		}
		path, err := d.periods.Query(tree, *req.AsOf)
		if err != nil {
			return nil, err
		}
		res.Payload = path
		res.Narrative = periodNarrative(path)

	case PipelineProgress:
		chart, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		prog, err := d.predictive.Progress(ctx, chart, *req.AsOf, desc.Technique)
		if err != nil {
			return nil, err
		}
		res.Payload = prog

	case PipelineReturn:
		chart, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		ret, err := d.predictive.ReturnChart(ctx, chart, desc.ReturnBody, req.AsOf.Year())
		if err != nil {
			return nil, err
		}
		res.Payload = ret

	case PipelineTransits:
		chart, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		days := defaultTransitDays
		if v, ok := req.Params["window_days"]; ok {
			n, convErr := strconv.Atoi(v)
			if convErr != nil || n <= 0 || n > maxTransitDays {
				return nil, &models.InputValidationError{Fields: []string{"params.window_days"}}
			}
			days = n
		}
		from := req.AsOf.UTC()
		events, err := d.predictive.TransitScan(ctx, chart, from, from.AddDate(0, 0, days))
		if err != nil {
			return nil, err
		}
		res.Payload = events

	case PipelineSynastry:
		a, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		b, err := d.partnerChart(ctx, req)
		if err != nil {
			return nil, err
		}
		report, err := d.compat.Compare(ctx, a, b)
		if err != nil {
			return nil, err
		}
		res.Payload = report
		res.Narrative = fmt.Sprintf("Compatibility score %.0f of %.0f.", report.Score, models.MaxCompatScore)

	case PipelineComposite:
		a, err := d.natalChart(ctx, req)
		if err != nil {
			return nil, err
		}
		b, err := d.partnerChart(ctx, req)
		if err != nil {
			return nil, err
		}
		res.Payload = d.compat.CompositeChart(a, b)

	case PipelineMidpoint:
		hs, err := d.houseSystem(req)
		if err != nil {
			return nil, err
		}
		chart, err := d.compat.MidpointChart(ctx, req.Subject, *req.Partner, hs)
		if err != nil {
			return nil, err
		}
		res.Payload = chart

	default:
		return nil, fmt.Errorf("pipeline %q: %w", desc.Kind, models.ErrUnsupportedParameter)
	}

	return res, nil
}

func (d *Dispatcher) partnerChart(ctx context.Context, req models.AnalysisRequest) (*models.Chart, error) {
	hs, err := d.houseSystem(req)
	if err != nil {
		return nil, err
	}
	return d.builder.Build(ctx, *req.Partner, req.Partner.BirthUTC, hs)
}

func chartNarrative(c *models.Chart) string {
	sun, _ := c.Position(models.Sun)
	moon, _ := c.Position(models.Moon)
	s := fmt.Sprintf("Ascendant in %s; Sun in %s, house %d; Moon in %s, house %d",
		models.SignNames[int(c.Asc/30)%12],
		models.SignNames[sun.Sign()], sun.House,
		models.SignNames[moon.Sign()], moon.House)
	if c.Zodiac == models.Sidereal {
		_, name, _ := dasha.Nakshatra(moon.Longitude)
		s += fmt.Sprintf("; Moon in %s nakshatra", name)
	}
	return s + "."
}

func strengthNarrative(scores map[models.Body]models.StrengthScore) string {
	var best models.Body
	bestTotal := -1.0
	for b, s := range scores {
		if s.Total > bestTotal || (s.Total == bestTotal && b < best) {
			best, bestTotal = b, s.Total
		}
	}
	if bestTotal < 0 {
		return ""
	}
	return fmt.Sprintf("Strongest body: %s (%.2f of 6).", best, bestTotal)
}

func periodNarrative(path models.PeriodPath) string {
	if len(path) == 0 {
		return ""
	}
	rulers := path.Rulers()
	s := "Running period: " + string(rulers[0])
	for _, r := range rulers[1:] {
		s += " / " + string(r)
	}
	return s + "."
}
