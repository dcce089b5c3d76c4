package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/webvault/webvault-server/internal/auth"
	"github.com/webvault/webvault-server/internal/store"
)

// VerifyStatus is the outcome of an admin token check.
type VerifyStatus string

const (
	// VerifyAccepted means the token matched the stored hash.
	VerifyAccepted VerifyStatus = "accepted"
	// VerifyBootstrapped means no token existed yet and this one was stored.
	VerifyBootstrapped VerifyStatus = "bootstrapped"
	// VerifyRejected means the token did not match, or was too short.
	VerifyRejected VerifyStatus = "rejected"
)

// AuthService verifies the single admin token. The server has exactly one
// credential; the first token presented after a fresh install becomes it.
type AuthService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store store.Store, logger *slog.Logger) *AuthService {
	return &AuthService{store: store, logger: logger}
}

// Verify checks a presented token against the stored argon2id hash. When no
// hash is stored yet, the token is hashed and stored instead, bootstrapping
// the credential. Two concurrent bootstrap attempts race on a first-write-wins
// insert; the loser re-verifies against whichever hash won.
func (s *AuthService) Verify(ctx context.Context, token string) (VerifyStatus, error) {
	if len(token) < auth.MinTokenLength {
		return VerifyRejected, nil
	}

	hash, err := s.store.GetAdminTokenHash(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return s.bootstrap(ctx, token)
	}
	if err != nil {
		return VerifyRejected, err
	}

	if !auth.VerifyToken(hash, token) {
		return VerifyRejected, nil
	}
	return VerifyAccepted, nil
}

func (s *AuthService) bootstrap(ctx context.Context, token string) (VerifyStatus, error) {
	hash, err := auth.HashToken(token)
	if err != nil {
		return VerifyRejected, err
	}

	err = s.store.SetAdminTokenHash(ctx, hash)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost the bootstrap race; check against the winning hash.
		stored, getErr := s.store.GetAdminTokenHash(ctx)
		if getErr != nil {
			return VerifyRejected, getErr
		}
		if auth.VerifyToken(stored, token) {
			return VerifyAccepted, nil
		}
		return VerifyRejected, nil
	}
	if err != nil {
		return VerifyRejected, err
	}

	s.logger.Info("admin token bootstrapped")
	return VerifyBootstrapped, nil
}
