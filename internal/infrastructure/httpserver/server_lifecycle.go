package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Start serves until Shutdown. TLS is enabled when both certificate files are
// configured; the same timeouts apply either way. A graceful shutdown returns nil.
func (s *Server) Start() error {
	s.logMetricFamilies()

	addr := net.JoinHostPort(s.config.Host, s.config.Port)
	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	if s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(s.config.TLSCertFile, s.config.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("load TLS key pair: %w", err)
		}
		server.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
		s.logger.Infof("Starting HTTPS server on %s", addr)
	} else {
		s.logger.Infof("Starting HTTP server on %s", addr)
		if s.config.Environment == "production" {
			s.logger.Warn("Running in HTTP mode - TLS certificates not configured")
		}
	}

	if err := s.echo.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
