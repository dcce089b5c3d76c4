package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/webvault/webvault-server/internal/store"
)

// urlParamInt64 parses a numeric URL parameter.
func urlParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, store.ErrInvalidInput.WithMessage(name + " is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, store.ErrInvalidInput.WithMessage(name + " must be a positive integer")
	}
	return id, nil
}

// parsePageParams parses 1-based pagination from the query string.
func parsePageParams(r *http.Request) store.PageParams {
	params := store.PageParams{}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			params.Page = page
		}
	}
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil {
			params.Size = size
		}
	}

	params.Validate()
	return params
}

// decodeBody unmarshals a JSON request body into dst and validates it.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		return store.ErrInvalidInput.WithMessage("invalid JSON body").WithCause(err)
	}
	return s.validator.Validate(dst)
}
