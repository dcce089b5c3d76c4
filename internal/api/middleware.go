package api

import (
	"net/http"
	"strings"

	"github.com/webvault/webvault-server/internal/http/response"
	"github.com/webvault/webvault-server/internal/service"
)

// requireAuth validates the admin bearer token. There is a single credential
// for the whole server; the middleware does not attach any identity, passing
// the check is the identity.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format", s.logger)
			return
		}

		status, err := s.authService.Verify(r.Context(), parts[1])
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		if status == service.VerifyRejected {
			response.Unauthorized(w, "Invalid token", s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}
