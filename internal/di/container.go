// Package di provides dependency injection configuration for the WebVault server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/webvault/webvault-server/internal/config"
	"github.com/webvault/webvault-server/internal/di/providers"
	"github.com/webvault/webvault-server/internal/logger"
	"github.com/webvault/webvault-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideBlobStore)

	// Business services
	do.Provide(injector, providers.ProvideFolderService)
	do.Provide(injector, providers.ProvidePageService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideShowcaseService)
	do.Provide(injector, providers.ProvideDashboardService)
	do.Provide(injector, providers.ProvideSettingsService)
	do.Provide(injector, providers.ProvideAuthService)

	// Server
	do.Provide(injector, providers.ProvideShowcaseLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.BlobStoreHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.FolderService](injector)
	_ = do.MustInvoke[*service.PageService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.ShowcaseService](injector)
	_ = do.MustInvoke[*service.DashboardService](injector)
	_ = do.MustInvoke[*service.SettingsService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)

	// Server
	_ = do.MustInvoke[*providers.ShowcaseLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
