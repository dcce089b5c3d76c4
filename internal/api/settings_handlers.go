package api

import (
	"net/http"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/http/response"
)

type setShowRecentRequest struct {
	Value bool `json:"value"`
}

type aiTagConfigRequest struct {
	TagLanguage   string   `json:"tag_language" validate:"required,max=10"`
	Type          string   `json:"type" validate:"required,oneof=cloudflare openai"`
	Model         string   `json:"model" validate:"omitempty,max=100"`
	PreferredTags []string `json:"preferred_tags" validate:"omitempty,max=50"`
}

// handleGetShowRecent returns the recent-pages dashboard toggle.
func (s *Server) handleGetShowRecent(w http.ResponseWriter, r *http.Request) {
	value, err := s.settingsService.ShouldShowRecent(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]bool{"value": value}, s.logger)
}

// handleSetShowRecent sets the recent-pages dashboard toggle.
func (s *Server) handleSetShowRecent(w http.ResponseWriter, r *http.Request) {
	var req setShowRecentRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.settingsService.SetShouldShowRecent(r.Context(), req.Value); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleGetAITagConfig returns the AI tagging configuration.
func (s *Server) handleGetAITagConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settingsService.AITagConfig(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, cfg, s.logger)
}

// handleSetAITagConfig replaces the AI tagging configuration.
func (s *Server) handleSetAITagConfig(w http.ResponseWriter, r *http.Request) {
	var req aiTagConfigRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	cfg := &domain.AITagConfig{
		TagLanguage:   req.TagLanguage,
		Type:          req.Type,
		Model:         req.Model,
		PreferredTags: req.PreferredTags,
	}
	if cfg.PreferredTags == nil {
		cfg.PreferredTags = []string{}
	}

	if err := s.settingsService.SetAITagConfig(r.Context(), cfg); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
