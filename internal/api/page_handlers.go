package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/http/response"
	"github.com/webvault/webvault-server/internal/service"
	"github.com/webvault/webvault-server/internal/store"
)

type createPageRequest struct {
	Title       string `json:"title" validate:"omitempty,max=500"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PageURL     string `json:"page_url" validate:"required,url"`
	FolderID    int64  `json:"folder_id" validate:"required,gt=0"`
	IsShowcased bool   `json:"is_showcased"`

	// Content and Screenshot are base64 so the archive fits in one JSON
	// document, matching what the capture extension sends.
	Content    string `json:"content" validate:"required"`
	Screenshot string `json:"screenshot" validate:"omitempty"`
}

type updatePageRequest struct {
	Title       string              `json:"title" validate:"required,max=500"`
	Description string              `json:"description" validate:"omitempty,max=2000"`
	PageURL     string              `json:"page_url" validate:"required,url"`
	FolderID    int64               `json:"folder_id" validate:"required,gt=0"`
	IsShowcased bool                `json:"is_showcased"`
	BindTags    []domain.TagBinding `json:"bind_tags"`
	UnbindTags  []domain.TagBinding `json:"unbind_tags"`
}

type setShowcasedRequest struct {
	Showcased bool `json:"showcased"`
}

// handleCreatePage archives a new page.
func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req createPageRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		response.BadRequest(w, "content must be base64", s.logger)
		return
	}

	var screenshot []byte
	if req.Screenshot != "" {
		screenshot, err = base64.StdEncoding.DecodeString(req.Screenshot)
		if err != nil {
			response.BadRequest(w, "screenshot must be base64", s.logger)
			return
		}
	}

	page, err := s.pageService.Create(r.Context(), service.CreatePageInput{
		Title:       req.Title,
		Description: req.Description,
		PageURL:     req.PageURL,
		FolderID:    req.FolderID,
		IsShowcased: req.IsShowcased,
		Content:     content,
		Screenshot:  screenshot,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, page, s.logger)
}

// handleListPages returns one window of live pages.
// Query: page, size, folder_id, keyword, prefix, tag_id.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	params := parsePageParams(r)

	filter := domain.PageFilter{
		Keyword: r.URL.Query().Get("keyword"),
		Prefix:  r.URL.Query().Get("prefix") == "true",
	}
	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.FolderID = id
		}
	}
	if raw := r.URL.Query().Get("tag_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.TagID = id
		}
	}

	result, err := s.pageService.List(r.Context(), filter, params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleGetPagesByURL returns live pages archived from a source URL.
func (s *Server) handleGetPagesByURL(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		response.BadRequest(w, "url query parameter is required", s.logger)
		return
	}

	pages, err := s.pageService.QueryByURL(r.Context(), pageURL)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, pages, s.logger)
}

// handleGetPage returns one page by id.
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	page, err := s.pageService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, page, s.logger)
}

// handleUpdatePage rewrites a page's fields and applies its tag batch.
func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req updatePageRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	err = s.pageService.Update(r.Context(), service.UpdatePageInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		PageURL:     req.PageURL,
		FolderID:    req.FolderID,
		IsShowcased: req.IsShowcased,
		BindTags:    req.BindTags,
		UnbindTags:  req.UnbindTags,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleSoftDeletePage moves a page to the recycle bin.
func (s *Server) handleSoftDeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.pageService.SoftDelete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleRestorePage brings a soft-deleted page back.
func (s *Server) handleRestorePage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.pageService.Restore(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handlePageContent serves the archived HTML snapshot.
func (s *Server) handlePageContent(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	data, err := s.pageService.Content(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("Failed to write page content", "error", err, "page_id", id)
	}
}

// handlePageScreenshot serves the screenshot as an inline data URI.
func (s *Server) handlePageScreenshot(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	uri, found, err := s.pageService.ScreenshotDataURI(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if !found {
		response.NotFound(w, "page has no screenshot", s.logger)
		return
	}

	response.Success(w, map[string]string{"data_uri": uri}, s.logger)
}

// handleSetShowcased toggles a page's showcase flag.
func (s *Server) handleSetShowcased(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req setShowcasedRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.showcaseService.SetShowcased(r.Context(), id, req.Showcased); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleListRecycleBin returns the soft-deleted pages and folders.
func (s *Server) handleListRecycleBin(w http.ResponseWriter, r *http.Request) {
	pages, err := s.pageService.ListDeleted(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	folders, err := s.folderService.ListDeleted(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"pages":   pages,
		"folders": folders,
	}, s.logger)
}

// handlePurge permanently removes every soft-deleted page and its blobs.
func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	result, err := s.pageService.Purge(r.Context())
	if err != nil {
		var storeErr *store.Error
		// A partial purge still reports its result alongside the failure.
		if result != nil && errors.As(err, &storeErr) {
			response.JSON(w, storeErr.HTTPCode(), result, s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}
