package providers

import (
	"github.com/samber/do/v2"

	"github.com/webvault/webvault-server/internal/config"
	"github.com/webvault/webvault-server/internal/logger"
	"github.com/webvault/webvault-server/internal/ratelimit"
)

// ShowcaseLimiterHandle wraps the showcase rate limiter with shutdown capability.
type ShowcaseLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *ShowcaseLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideShowcaseLimiter provides the per-client rate limiter for the
// unauthenticated showcase endpoints.
func ProvideShowcaseLimiter(i do.Injector) (*ShowcaseLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	limiter := ratelimit.New(cfg.RateLimit.ShowcaseRPS, cfg.RateLimit.ShowcaseBurst)

	log.Info("Showcase rate limiter configured",
		"rps", cfg.RateLimit.ShowcaseRPS,
		"burst", cfg.RateLimit.ShowcaseBurst,
	)

	return &ShowcaseLimiterHandle{KeyedRateLimiter: limiter}, nil
}
