package api

import (
	"net/http"

	"github.com/webvault/webvault-server/internal/http/response"
)

// handleDashboard returns the aggregate home view snapshot.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboardService.Home(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, stats, s.logger)
}
