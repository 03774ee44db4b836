//go:build wireinject
// +build wireinject

package di

import (
	"RiskDash/internal/handler/api"
	"RiskDash/internal/usecase"
	"RiskDash/pkg/config"
	"RiskDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideLogCollector,
		ProvideMetrics,
		ProvideClickHouseClient,
		ProvideCache,

		// Repositories and clients
		ProvideSnapshotStore,
		ProvideBackend,
		ProvideResolver,
		ProvideAnalysisHistory,
		ProvideAnalysisSink,
		ProvideConvention,
		ProvideRateLimiter,

		// Use cases
		ProvideAssetViewService,
		ProvideAnalysisSessions,
		ProvideSearchService,
		usecase.NewLatestAnalysisService,
		usecase.NewWatchlistService,
		usecase.NewMarketService,
		usecase.NewAdminLogsService,
		ProvideAssetUpdatesHandler,
		ProvideKafkaConsumer,

		// HTTP
		api.NewDashboardHandler,
		api.NewAnalysisHandler,
		api.NewPresentationHandler,
		ProvideHTTPServer,

		ProvideApp,
	)
	return &server.App{}, nil
}
