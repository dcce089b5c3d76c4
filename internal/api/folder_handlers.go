package api

import (
	"net/http"

	"github.com/webvault/webvault-server/internal/http/response"
)

type createFolderRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type renameFolderRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// handleCreateFolder creates a new folder.
func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	folder, err := s.folderService.Create(r.Context(), req.Name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, folder, s.logger)
}

// handleListFolders returns all live folders.
func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.folderService.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, folders, s.logger)
}

// handleGetFolder returns one folder by id.
func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	folder, err := s.folderService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, folder, s.logger)
}

// handleRenameFolder renames a live folder.
func (s *Server) handleRenameFolder(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req renameFolderRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.folderService.Rename(r.Context(), id, req.Name); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleSoftDeleteFolder moves a folder and its live pages to the recycle bin.
func (s *Server) handleSoftDeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	pages, err := s.folderService.SoftDelete(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]int{"pages_moved": pages}, s.logger)
}

// handleRestoreFolder brings a soft-deleted folder back.
func (s *Server) handleRestoreFolder(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.folderService.Restore(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
