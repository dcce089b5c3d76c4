package api

import (
	"net/http"

	"github.com/webvault/webvault-server/internal/http/response"
)

// The showcase surface is public: it serves only pages explicitly flagged for
// showcase, and never exposes soft-deleted content.

// handleListShowcase returns one window of showcased pages.
func (s *Server) handleListShowcase(w http.ResponseWriter, r *http.Request) {
	params := parsePageParams(r)

	result, err := s.showcaseService.List(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleGetShowcasePage returns one showcased page.
func (s *Server) handleGetShowcasePage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	page, err := s.showcaseService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, page, s.logger)
}

// handleNextShowcasePage returns the showcased page after the given id,
// wrapping around at the end.
func (s *Server) handleNextShowcasePage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	page, err := s.showcaseService.Next(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, page, s.logger)
}

// handleShowcaseContent serves the archived HTML of a showcased page. The
// page must be showcased; archived content of private pages stays private.
func (s *Server) handleShowcaseContent(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if _, err := s.showcaseService.Get(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	data, err := s.pageService.Content(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("Failed to write showcase content", "error", err, "page_id", id)
	}
}
