package httpserver

import (
	"net/http"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// newMetricsHandler exposes g in the Prometheus text format. A failing collector is
// logged and skipped so one broken gauge does not hide the rest.
func newMetricsHandler(g prometheus.Gatherer, logger *logrus.Logger) http.Handler {
	opts := promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}
	if logger != nil {
		opts.ErrorLog = logger
	}
	return promhttp.HandlerFor(g, opts)
}

// logMetricFamilies lists what /metrics will serve.
func (s *Server) logMetricFamilies() {
	if s.logger == nil {
		return
	}
	families, err := s.gatherer.Gather()
	if err != nil {
		s.logger.WithError(err).Warn("Gathering metrics failed")
	}
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	sort.Strings(names)
	s.logger.WithField("families", len(names)).Info("Prometheus metrics registered")
	s.logger.WithField("names", names).Debug("Available Prometheus metrics")
}
