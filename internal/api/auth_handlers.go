package api

import (
	"net/http"

	"github.com/webvault/webvault-server/internal/http/response"
	"github.com/webvault/webvault-server/internal/service"
)

type verifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// handleVerifyToken checks the admin token. On a fresh install the first
// token presented becomes the credential.
func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	status, err := s.authService.Verify(r.Context(), req.Token)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if status == service.VerifyRejected {
		response.Unauthorized(w, "Invalid token", s.logger)
		return
	}

	response.Success(w, map[string]string{"status": string(status)}, s.logger)
}
