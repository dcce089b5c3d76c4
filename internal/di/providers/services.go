package providers

import (
	"github.com/samber/do/v2"

	"github.com/webvault/webvault-server/internal/logger"
	"github.com/webvault/webvault-server/internal/service"
)

// ProvideFolderService provides the folder lifecycle service.
func ProvideFolderService(i do.Injector) (*service.FolderService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFolderService(storeHandle.Store, log.Logger), nil
}

// ProvidePageService provides the page archiving service.
func ProvidePageService(i do.Injector) (*service.PageService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	blobHandle := do.MustInvoke[*BlobStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPageService(storeHandle.Store, blobHandle.Store, log.Logger), nil
}

// ProvideTagService provides the tag association service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideShowcaseService provides the public showcase service.
func ProvideShowcaseService(i do.Injector) (*service.ShowcaseService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShowcaseService(storeHandle.Store, log.Logger), nil
}

// ProvideDashboardService provides the dashboard aggregation service.
func ProvideDashboardService(i do.Injector) (*service.DashboardService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDashboardService(storeHandle.Store, log.Logger), nil
}

// ProvideSettingsService provides the server settings service.
func ProvideSettingsService(i do.Injector) (*service.SettingsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSettingsService(storeHandle.Store, log.Logger), nil
}

// ProvideAuthService provides the admin token verification service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, log.Logger), nil
}
