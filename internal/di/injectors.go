//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"kgsite/internal"
	"kgsite/internal/controllers"
	"kgsite/internal/persistence"
	"kgsite/internal/providers"
	"kgsite/internal/structures"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewStorageProvider,
	providers.NewEventsProvider,
	providers.NewHTTPClientProvider,
	providers.NewConsentFactory,
	providers.NewSeedStoreProvider,
	persistence.NewScheduler,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		coreSet,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		controllers.NewHealthController,
		controllers.NewAnalyticsController,
		controllers.NewConsentController,
		controllers.NewIntakeController,
		controllers.NewStubController,
		internal.NewControllers,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitToolkit(cfg *structures.CliFlags) (*internal.Toolkit, func(), error) {

	wire.Build(
		coreSet,
		providers.NewNoopMetrics,
		internal.NewToolkit,
	)

	return nil, nil, nil
}
