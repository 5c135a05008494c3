package di

import (
	"context"
	"fmt"
	"time"

	"AstroCalc/internal/domain/models"
	domrepo "AstroCalc/internal/domain/repository"
	"AstroCalc/internal/handler/api"
	internalrepo "AstroCalc/internal/repository"
	cachesvc "AstroCalc/internal/service/cache"
	"AstroCalc/internal/services/aspect"
	"AstroCalc/internal/services/chart"
	"AstroCalc/internal/services/compat"
	"AstroCalc/internal/services/dasha"
	"AstroCalc/internal/services/ephemeris"
	"AstroCalc/internal/services/predictive"
	"AstroCalc/internal/services/strength"
	"AstroCalc/internal/services/varga"
	"AstroCalc/internal/usecase"
	pkgcache "AstroCalc/pkg/cache"
	pkgch "AstroCalc/pkg/clickhouse"
	"AstroCalc/pkg/config"
	applogger "AstroCalc/pkg/logger"
	"AstroCalc/pkg/metrics"
	"AstroCalc/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger from config. With
// aggregation enabled, repeated error records collapse into periodic
// summaries published back through the logger itself.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Logging.Aggregation.Enabled {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Logging.Aggregation.Interval,
			CountThreshold: cfg.Logging.Aggregation.Threshold,
			Topic:          cfg.Logging.Aggregation.Topic,
			Publisher:      l,
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when the
// ephemeris source needs one; builtin deployments skip it.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Ephemeris.Source != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.EphemerisSchema(cfg.Ephemeris.Table)); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideEphemerisSource selects the position source: the analytic
// builtin model, or ClickHouse tables with the builtin as fallback.
// Either way the gateway fronts it with date bounds and retry.
func ProvideEphemerisSource(cfg *config.Config, chClient *pkgch.Client, l *applogger.Logger) domrepo.EphemerisSource {
	builtin := ephemeris.NewBuiltinSource()
	var src domrepo.EphemerisSource = builtin
	if cfg.Ephemeris.Source == "clickhouse" && chClient != nil {
		src = internalrepo.NewCHEphemerisStore(chClient,
			internalrepo.WithTable(cfg.Ephemeris.Table),
			internalrepo.WithFallback(builtin),
			internalrepo.WithStoreLogger(l),
		)
	}
	return ephemeris.NewGateway(src,
		ephemeris.WithYearBounds(cfg.Ephemeris.MinYear, cfg.Ephemeris.MaxYear),
		ephemeris.WithRetryBackoff(cfg.Ephemeris.RetryBackoff),
		ephemeris.WithLogger(l),
	)
}

// ProvideEngines assembles every computation engine on the shared
// ephemeris source.
func ProvideEngines(cfg *config.Config, eph domrepo.EphemerisSource, l *applogger.Logger) usecase.Engines {
	builder := chart.NewBuilder(eph,
		chart.WithZodiac(models.Zodiac(cfg.Astro.Zodiac)),
		chart.WithLogger(l),
	)
	aspectOpts := []aspect.EngineOption{aspect.WithStelliumArc(cfg.Astro.StelliumArc)}
	if len(cfg.Astro.Orbs) > 0 {
		orbs := make(map[models.AspectType]float64, len(cfg.Astro.Orbs))
		for name, orb := range cfg.Astro.Orbs {
			orbs[models.AspectType(name)] = orb
		}
		aspectOpts = append(aspectOpts, aspect.WithOrbs(orbs))
	}
	aspects := aspect.NewEngine(aspectOpts...)
	return usecase.Engines{
		Builder:    builder,
		Varga:      varga.NewEngine(),
		Aspects:    aspects,
		Strength:   strength.NewEngine(aspects),
		Periods:    dasha.NewEngine(eph),
		Predictive: predictive.NewEngine(eph, aspects, builder),
		Compat:     compat.NewEngine(aspects, builder),
	}
}

// ProvideResultCache builds the analysis result cache. Redis fronts a
// small in-process LRU when enabled; memory only otherwise.
func ProvideResultCache(cfg *config.Config, m domrepo.Metrics) (*cachesvc.ResultCache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	var backend pkgcache.Service = pkgcache.NewMemoryCache()
	if cfg.Cache.Redis.Enabled {
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix("astrocalc"),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		backend = pkgcache.NewLayeredCache(rc)
	}

	opts := []cachesvc.Option{cachesvc.WithMetrics(m)}
	if cfg.Cache.TTL.Fast > 0 {
		opts = append(opts, cachesvc.WithTTL(cachesvc.TierFast, cfg.Cache.TTL.Fast))
	}
	if cfg.Cache.TTL.Slow > 0 {
		opts = append(opts, cachesvc.WithTTL(cachesvc.TierSlow, cfg.Cache.TTL.Slow))
	}
	if cfg.Cache.TTL.Static > 0 {
		opts = append(opts, cachesvc.WithTTL(cachesvc.TierStatic, cfg.Cache.TTL.Static))
	}
	return cachesvc.NewResultCache(backend, opts...), nil
}

// ProvideDispatcher wires the engines, cache and metrics into the
// analysis dispatcher.
func ProvideDispatcher(
	cfg *config.Config,
	engines usecase.Engines,
	rc *cachesvc.ResultCache,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.Dispatcher {
	opts := []usecase.DispatcherOption{
		usecase.WithMetrics(m),
		usecase.WithDispatchLogger(l),
		usecase.WithHouseSystem(models.HouseSystem(cfg.Astro.HouseSystem)),
	}
	if rc != nil {
		opts = append(opts, usecase.WithResultCache(rc))
	}
	return usecase.NewDispatcher(engines, opts...)
}

// ProvideComprehensive creates the multi-analysis report use case.
func ProvideComprehensive(disp *usecase.Dispatcher) *usecase.ComprehensiveUseCase {
	return usecase.NewComprehensiveUseCase(disp)
}

// ProvideHTTPHandler creates the Echo handler for the analysis API,
// probing ClickHouse from the health endpoint when it is in play.
func ProvideHTTPHandler(l *applogger.Logger, disp *usecase.Dispatcher, report *usecase.ComprehensiveUseCase, chClient *pkgch.Client) *api.AnalysisEchoHandler {
	var opts []api.HandlerOption
	if chClient != nil {
		opts = append(opts, api.WithHealthCheck(func(c echo.Context) error {
			return chClient.Health(c.Request().Context())
		}))
	}
	return api.NewAnalysisEchoHandler(l, disp, report, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler *api.AnalysisEchoHandler,
	chClient *pkgch.Client,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, chClient, l)
}
