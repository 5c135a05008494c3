//go:build wireinject
// +build wireinject

package di

import (
	"AstroCalc/pkg/config"
	"AstroCalc/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,

		// Ephemeris and computation engines
		ProvideEphemerisSource,
		ProvideEngines,

		// Result cache and use cases
		ProvideResultCache,
		ProvideDispatcher,
		ProvideComprehensive,

		// HTTP surface
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
