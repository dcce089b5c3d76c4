// Package blob provides the key-addressed blob store for archived page
// content and screenshots, backed by Badger. Keys are opaque strings; the
// relational store references blobs by key and owns nothing else about them.
package blob

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/webvault/webvault-server/internal/store"
)

const (
	// opTimeout bounds every single blob operation.
	opTimeout = 5 * time.Second

	// maxRetries is the bounded retry budget per operation; backoff between
	// attempts starts at retryBase and grows fibonacci.
	maxRetries = 3
	retryBase  = 50 * time.Millisecond
)

// Store wraps a Badger database holding blob content keyed by opaque ids.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) the blob store at the given directory.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // Blobs are the archive itself; don't lose them on crash

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	if logger != nil {
		logger.Info("blob store opened", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withRetry runs fn under the per-operation timeout and retry budget.
// Exhausting the budget surfaces store.ErrStorageUnavailable.
func (s *Store) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	backoff := retry.WithMaxRetries(maxRetries, retry.NewFibonacci(retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("blob operation failed", "op", op, "error", err)
		return store.ErrStorageUnavailable.WithCause(fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// Put stores content under a fresh key and returns the key.
// Keys are never reused, so Put cannot overwrite existing content.
func (s *Store) Put(ctx context.Context, data []byte) (string, error) {
	key := uuid.NewString()

	err := s.withRetry(ctx, "put", func(context.Context) error {
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(key), data)
		})
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Get retrieves content by key. A missing key reports absence, not an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	var data []byte
	var found bool

	err := s.withRetry(ctx, "get", func(context.Context) error {
		return s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				found = false
				return nil
			}
			if err != nil {
				return err
			}
			data, err = item.ValueCopy(nil)
			found = err == nil
			return err
		})
	})
	if err != nil {
		return nil, false, err
	}
	return data, found, nil
}

// Delete removes the given keys, best effort. Deleting a key that does not
// exist is not an error, which keeps purge idempotent and re-runnable.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if key == "" {
			continue
		}
		key := key
		err := s.withRetry(ctx, "delete", func(context.Context) error {
			return s.db.Update(func(txn *badger.Txn) error {
				return txn.Delete([]byte(key))
			})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DataURI returns the blob as a base64 data URI for inline display.
// Absent keys (or an empty key) report absence rather than an error.
func (s *Store) DataURI(ctx context.Context, key, mimeType string) (string, bool, error) {
	data, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return "", false, err
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), true, nil
}
