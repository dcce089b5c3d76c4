package api

import (
	"net/http"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/http/response"
)

type createTagRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"omitempty,max=20"`
}

type updateTagRequest struct {
	Name  string `json:"name" validate:"omitempty,max=50"`
	Color string `json:"color" validate:"omitempty,max=20"`
}

type tagBindingsRequest struct {
	Bind   []domain.TagBinding `json:"bind"`
	Unbind []domain.TagBinding `json:"unbind"`
}

// handleCreateTag creates a new tag.
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	tag, err := s.tagService.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, tag, s.logger)
}

// handleListTags returns every tag with its derived page-id set.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tagService.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, tags, s.logger)
}

// handleGetTag returns one tag by id.
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	tag, err := s.tagService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, tag, s.logger)
}

// handleUpdateTag renames or recolors a tag.
func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req updateTagRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.tagService.Update(r.Context(), id, req.Name, req.Color); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleDeleteTag removes a tag and all its associations.
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.tagService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleApplyTagBindings applies a batch of binds and unbinds.
func (s *Server) handleApplyTagBindings(w http.ResponseWriter, r *http.Request) {
	var req tagBindingsRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if len(req.Bind) == 0 && len(req.Unbind) == 0 {
		response.BadRequest(w, "at least one bind or unbind is required", s.logger)
		return
	}

	if err := s.tagService.Apply(r.Context(), req.Bind, req.Unbind); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
