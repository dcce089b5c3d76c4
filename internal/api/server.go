// Package api provides the HTTP API server and handlers for the WebVault application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/webvault/webvault-server/internal/http/response"
	"github.com/webvault/webvault-server/internal/ratelimit"
	"github.com/webvault/webvault-server/internal/service"
	"github.com/webvault/webvault-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	folderService    *service.FolderService
	pageService      *service.PageService
	tagService       *service.TagService
	showcaseService  *service.ShowcaseService
	dashboardService *service.DashboardService
	settingsService  *service.SettingsService
	authService      *service.AuthService

	showcaseLimiter *ratelimit.KeyedRateLimiter
	validator       *validation.Validator
	maxUploadBytes  int64
	router          *chi.Mux
	logger          *slog.Logger
}

// Options configures a Server beyond its service dependencies.
type Options struct {
	ShowcaseLimiter *ratelimit.KeyedRateLimiter
	MaxUploadMB     int
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	folderService *service.FolderService,
	pageService *service.PageService,
	tagService *service.TagService,
	showcaseService *service.ShowcaseService,
	dashboardService *service.DashboardService,
	settingsService *service.SettingsService,
	authService *service.AuthService,
	opts Options,
	logger *slog.Logger,
) *Server {
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 32
	}

	s := &Server{
		folderService:    folderService,
		pageService:      pageService,
		tagService:       tagService,
		showcaseService:  showcaseService,
		dashboardService: dashboardService,
		settingsService:  settingsService,
		authService:      authService,
		showcaseLimiter:  opts.ShowcaseLimiter,
		validator:        validation.New(),
		maxUploadBytes:   int64(opts.MaxUploadMB) << 20,
		router:           chi.NewRouter(),
		logger:           logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Token verification (public; bootstraps the credential on first use).
		r.Post("/auth/verify", s.handleVerifyToken)

		// Public showcase surface, rate limited per client.
		r.Route("/showcase", func(r chi.Router) {
			if s.showcaseLimiter != nil {
				r.Use(RateLimitMiddleware(s.showcaseLimiter, s.logger))
			}
			r.Get("/", s.handleListShowcase)
			r.Get("/{id}", s.handleGetShowcasePage)
			r.Get("/{id}/next", s.handleNextShowcasePage)
			r.Get("/{id}/content", s.handleShowcaseContent)
		})

		// Everything below requires the admin token.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/folders", func(r chi.Router) {
				r.Post("/", s.handleCreateFolder)
				r.Get("/", s.handleListFolders)
				r.Get("/{id}", s.handleGetFolder)
				r.Patch("/{id}", s.handleRenameFolder)
				r.Delete("/{id}", s.handleSoftDeleteFolder)
				r.Post("/{id}/restore", s.handleRestoreFolder)
			})

			r.Route("/pages", func(r chi.Router) {
				r.Post("/", s.handleCreatePage)
				r.Get("/", s.handleListPages)
				r.Get("/by-url", s.handleGetPagesByURL)
				r.Get("/{id}", s.handleGetPage)
				r.Put("/{id}", s.handleUpdatePage)
				r.Delete("/{id}", s.handleSoftDeletePage)
				r.Post("/{id}/restore", s.handleRestorePage)
				r.Get("/{id}/content", s.handlePageContent)
				r.Get("/{id}/screenshot", s.handlePageScreenshot)
				r.Post("/{id}/showcase", s.handleSetShowcased)
			})

			r.Route("/recycle-bin", func(r chi.Router) {
				r.Get("/", s.handleListRecycleBin)
				r.Delete("/", s.handlePurge)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Post("/", s.handleCreateTag)
				r.Get("/", s.handleListTags)
				r.Get("/{id}", s.handleGetTag)
				r.Patch("/{id}", s.handleUpdateTag)
				r.Delete("/{id}", s.handleDeleteTag)
				r.Post("/bindings", s.handleApplyTagBindings)
			})

			r.Get("/dashboard", s.handleDashboard)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/show-recent", s.handleGetShowRecent)
				r.Put("/show-recent", s.handleSetShowRecent)
				r.Get("/ai-tag", s.handleGetAITagConfig)
				r.Put("/ai-tag", s.handleSetAITagConfig)
			})
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
