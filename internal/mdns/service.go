// Package mdns provides mDNS/Zeroconf service advertisement for WebVault server discovery.
package mdns

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/hashicorp/mdns"

	"github.com/webvault/webvault-server/internal/id"
)

const (
	// ServiceType is the mDNS service type for WebVault servers.
	ServiceType = "_webvault._tcp"

	// APIVersion is the current API version advertised in TXT records.
	APIVersion = "v1"

	// ServerVersion is the current server version advertised in TXT records.
	ServerVersion = "1.0.0"
)

// Service manages mDNS advertisement for the WebVault server.
// It allows local network discovery of the server without manual configuration.
type Service struct {
	server *mdns.Server
	logger *slog.Logger

	// instanceID distinguishes this server from others on the network that
	// share a display name. Stable across Start/Stop within one process.
	instanceID string

	mu sync.Mutex
}

// NewService creates a new mDNS service.
func NewService(logger *slog.Logger) *Service {
	instanceID, err := id.Generate("srv")
	if err != nil {
		logger.Warn("mDNS instance id generation failed", "error", err)
	}

	return &Service{
		logger:     logger,
		instanceID: instanceID,
	}
}

// Start begins advertising the server via mDNS.
// It should be called after the HTTP server is running.
//
// Errors are typically non-fatal (e.g., multicast not supported in Docker).
func (s *Service) Start(name string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop existing server if running (for restart scenarios)
	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
	}

	host, err := os.Hostname()
	if err != nil {
		host = "webvault-server"
	}

	txtRecords := []string{
		fmt.Sprintf("name=%s", name),
		fmt.Sprintf("version=%s", ServerVersion),
		fmt.Sprintf("api=%s", APIVersion),
	}
	if s.instanceID != "" {
		txtRecords = append(txtRecords, fmt.Sprintf("id=%s", s.instanceID))
	}

	service, err := mdns.NewMDNSService(
		host,        // Instance name (hostname)
		ServiceType, // Service type (_webvault._tcp)
		"",          // Domain (empty = .local)
		"",          // Host (empty = use system hostname)
		port,        // Port
		nil,         // IPs (nil = all interfaces)
		txtRecords,  // TXT records
	)
	if err != nil {
		return fmt.Errorf("create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{
		Zone: service,
	})
	if err != nil {
		return fmt.Errorf("start mDNS server: %w", err)
	}

	s.server = server

	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"port", port,
		"name", name,
	)

	return nil
}

// Stop stops mDNS advertising.
// Safe to call multiple times or if not started.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
		s.logger.Info("mDNS advertisement stopped")
	}
}
