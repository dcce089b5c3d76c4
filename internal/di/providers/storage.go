package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/webvault/webvault-server/internal/blob"
	"github.com/webvault/webvault-server/internal/config"
	"github.com/webvault/webvault-server/internal/logger"
)

// BlobStoreHandle wraps the blob store with shutdown capability.
type BlobStoreHandle struct {
	*blob.Store
}

// Shutdown implements do.Shutdownable.
func (h *BlobStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideBlobStore provides the Badger-backed blob store for archived page
// content and screenshots.
func ProvideBlobStore(i do.Injector) (*BlobStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	blobPath := cfg.Data.BlobPath()
	blobs, err := blob.Open(blobPath, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}

	log.Info("Blob store initialized", "path", blobPath)

	return &BlobStoreHandle{Store: blobs}, nil
}
