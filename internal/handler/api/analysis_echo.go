package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	models "AstroCalc/internal/domain/models"
	svcmetrics "AstroCalc/internal/service/metrics"
	"AstroCalc/internal/service/ratelimit"
	"AstroCalc/internal/usecase"
	xhttp "AstroCalc/pkg/http"
	xlogger "AstroCalc/pkg/logger"
	"AstroCalc/pkg/util"

	"github.com/labstack/echo/v4"
)

// Per-client budget for the computation endpoints. Comprehensive
// reports cost several analyses, so the bucket refills slowly.
const (
	rateBurst     = 20
	rateRefillSec = 5
)

// AnalysisEchoHandler exposes the analysis catalog over HTTP.
type AnalysisEchoHandler struct {
	logger  *xlogger.Logger
	disp    *usecase.Dispatcher
	report  *usecase.ComprehensiveUseCase
	limiter *ratelimit.Limiter
	health  func(c echo.Context) error
}

// HandlerOption configures an AnalysisEchoHandler.
type HandlerOption func(*AnalysisEchoHandler)

// WithHealthCheck adds a dependency probe to the health endpoint.
func WithHealthCheck(check func(ctx echo.Context) error) HandlerOption {
	return func(h *AnalysisEchoHandler) { h.health = check }
}

func NewAnalysisEchoHandler(logger *xlogger.Logger, disp *usecase.Dispatcher, report *usecase.ComprehensiveUseCase, opts ...HandlerOption) *AnalysisEchoHandler {
	svcmetrics.Register()
	h := &AnalysisEchoHandler{
		logger:  logger,
		disp:    disp,
		report:  report,
		limiter: ratelimit.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api", h.rateLimit)
	g.GET("/analyses", h.Analyses)
	g.POST("/analysis", h.Analyze)
	g.POST("/chart", h.Chart)
	g.POST("/comprehensive", h.Comprehensive)
}

func (h *AnalysisEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.limiter.Allow(c.RealIP(), rateBurst, rateRefillSec) {
			return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

// Health reports process liveness, plus backend reachability when a
// probe is configured.
func (h *AnalysisEchoHandler) Health(c echo.Context) error {
	if h.health != nil {
		if err := h.health(c); err != nil {
			h.logger.Warn("health probe failed", xlogger.Error(err))
			return xhttp.DataResponse(c, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Analyses lists every analysis id the dispatcher serves.
func (h *AnalysisEchoHandler) Analyses(c echo.Context) error {
	return xhttp.SuccessResponse(c, usecase.AnalysisIDs())
}

func (h *AnalysisEchoHandler) Analyze(c echo.Context) error {
	start := time.Now()
	req := &models.AnalysisHTTPRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	dreq, appErr := h.resolveRequest(req)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	res, err := h.disp.Invoke(c.Request().Context(), *dreq)
	svcmetrics.AnalysisLatency.WithLabelValues("analysis").Observe(time.Since(start).Seconds())
	if err != nil {
		svcmetrics.AnalysisErrors.WithLabelValues("analysis").Inc()
		h.logger.Error("analysis usecase error",
			xlogger.String("analysis", req.AnalysisID),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapAnalysisError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Chart is shorthand for the natal-chart analysis with an explicit
// house system.
func (h *AnalysisEchoHandler) Chart(c echo.Context) error {
	start := time.Now()
	req := &models.ChartHTTPRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	subject, appErr := resolveSubject(req.Subject)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	res, err := h.disp.Invoke(c.Request().Context(), models.AnalysisRequest{
		AnalysisID: "natal-chart",
		Subject:    subject,
		Params:     map[string]string{"house_system": req.HouseSystem},
	})
	svcmetrics.AnalysisLatency.WithLabelValues("chart").Observe(time.Since(start).Seconds())
	if err != nil {
		svcmetrics.AnalysisErrors.WithLabelValues("chart").Inc()
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapAnalysisError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Comprehensive(c echo.Context) error {
	start := time.Now()
	req := &models.ComprehensiveHTTPRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	subject, appErr := resolveSubject(req.Subject)
	if appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	res, err := h.report.Report(c.Request().Context(), subject, req.Analyses)
	svcmetrics.AnalysisLatency.WithLabelValues("comprehensive").Observe(time.Since(start).Seconds())
	if err != nil {
		svcmetrics.AnalysisErrors.WithLabelValues("comprehensive").Inc()
		h.logger.Error("comprehensive usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapAnalysisError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) resolveRequest(req *models.AnalysisHTTPRequest) (*models.AnalysisRequest, *xhttp.AppError) {
	subject, appErr := resolveSubject(req.Subject)
	if appErr != nil {
		return nil, appErr
	}
	out := &models.AnalysisRequest{
		AnalysisID: req.AnalysisID,
		Subject:    subject,
		Params:     req.Params,
	}
	if req.Partner != nil {
		partner, appErr := resolveSubject(*req.Partner)
		if appErr != nil {
			return nil, appErr
		}
		out.Partner = &partner
	}
	if req.AsOf != "" {
		t, ok := util.ParseTime(req.AsOf)
		if !ok {
			return nil, xhttp.BadRequestError("as_of is not a recognized timestamp").
				WithParam("as_of", req.AsOf)
		}
		out.AsOf = &t
	}
	return out, nil
}

func resolveSubject(in models.SubjectInput) (models.Subject, *xhttp.AppError) {
	birth, ok := util.ParseTime(in.Birth)
	if !ok {
		return models.Subject{}, xhttp.BadRequestError("birth is not a recognized timestamp").
			WithParam("birth", in.Birth)
	}
	return models.NewSubject(in.Name, birth, in.TZOffsetMin, in.Latitude, in.Longitude, in.ElevationM), nil
}

// mapAnalysisError translates the engine error taxonomy into HTTP
// statuses: bad inputs are the caller's fault, exhausted searches are
// unprocessable, a dead ephemeris backend is a 503.
func mapAnalysisError(err error) *xhttp.AppError {
	var ive *models.InputValidationError
	if errors.As(err, &ive) {
		return xhttp.NewAppError("validation", "", ive.Error(), http.StatusBadRequest).WithError(err)
	}
	switch {
	case errors.Is(err, models.ErrUnsupportedParameter),
		errors.Is(err, models.ErrInvalidLatitude),
		errors.Is(err, models.ErrGeocodingUnresolved):
		return xhttp.NewAppError("bad_parameter", "", err.Error(), http.StatusBadRequest).WithError(err)
	case errors.Is(err, models.ErrOutOfRangeInstant),
		errors.Is(err, models.ErrNoConvergence):
		return xhttp.NewAppError("unprocessable", "", err.Error(), http.StatusUnprocessableEntity).WithError(err)
	case errors.Is(err, models.ErrEphemerisUnavailable):
		return xhttp.NewAppError("ephemeris_unavailable", "", err.Error(), http.StatusServiceUnavailable).WithError(err)
	}
	var ae *models.AnalysisError
	if errors.As(err, &ae) {
		return xhttp.NewAppError("analysis_failed", "", fmt.Sprintf("analysis %s failed", ae.AnalysisID),
			http.StatusInternalServerError).WithError(err)
	}
	return xhttp.InternalError("Something went wrong").WithError(err)
}
