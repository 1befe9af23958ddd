package httpserver

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

const bytesPerMiB = 1024 * 1024

type processMemory struct {
	HeapAllocMiB uint64 `json:"heap_alloc_mb"`
	HeapSysMiB   uint64 `json:"heap_sys_mb"`
	SysMiB       uint64 `json:"sys_mb"`
	NumGC        uint32 `json:"num_gc"`
}

type healthResponse struct {
	Status       string             `json:"status"`
	Timestamp    string             `json:"timestamp"`
	Service      string             `json:"service"`
	Memory       processMemory      `json:"memory"`
	Host         *memory.Reading    `json:"host_memory,omitempty"`
	Cache        *memory.CacheStats `json:"cache,omitempty"`
	Pool         *memory.PoolStats  `json:"pool,omitempty"`
	Dependencies map[string]string  `json:"dependencies"`
}

// Health check handler
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	overall := "healthy"
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		if err := hc.Check(ctx); err != nil {
			deps[hc.Name()] = "unhealthy"
			overall = "degraded"
			if s.logger != nil {
				s.logger.WithError(err).WithField("dependency", hc.Name()).Warn("health check failed")
			}
		} else {
			deps[hc.Name()] = "healthy"
		}
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	health := healthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "study-assistant-api",
		Memory: processMemory{
			HeapAllocMiB: ms.HeapAlloc / bytesPerMiB,
			HeapSysMiB:   ms.HeapSys / bytesPerMiB,
			SysMiB:       ms.Sys / bytesPerMiB,
			NumGC:        ms.NumGC,
		},
		Dependencies: deps,
	}
	if s.guard != nil {
		r := s.guard.Last()
		health.Host = &r
	}
	if s.cache != nil {
		st := s.cache.Stats()
		health.Cache = &st
	}
	if s.pool != nil {
		st := s.pool.Stats()
		health.Pool = &st
	}

	code := http.StatusOK
	if overall != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}
