package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	customMiddleware "github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/middleware"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/observability"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	BodyLimit      string
	AllowedOrigins []string
	Environment    string
}

type ServerDeps struct {
	AuthService        ports.AuthService
	ReminderService    ports.ReminderService
	SummaryService     ports.SummaryService
	UserService        ports.UserService
	RateLimiterService ports.RateLimiterService
	RateLimit          customMiddleware.RateLimitSettings

	Cache         ports.Cache
	Pool          ports.ResourcePool
	PressureGuard ports.PressureGuard
	Instrumenter  *observability.Instrumenter
	Metrics       *observability.Metrics
	// Gatherer backs /metrics; nil serves the default registry.
	Gatherer       prometheus.Gatherer
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	authSvc        ports.AuthService
	reminderSvc    ports.ReminderService
	summarySvc     ports.SummaryService
	userService    ports.UserService
	cache          ports.Cache
	pool           ports.ResourcePool
	guard          ports.PressureGuard
	gatherer       prometheus.Gatherer
	metricsHandler http.Handler
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		authSvc:        deps.AuthService,
		reminderSvc:    deps.ReminderService,
		summarySvc:     deps.SummaryService,
		userService:    deps.UserService,
		cache:          deps.Cache,
		pool:           deps.Pool,
		guard:          deps.PressureGuard,
		gatherer:       gatherer,
		metricsHandler: newMetricsHandler(gatherer, logger),
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(customMiddleware.Deps{
			AuthService:   deps.AuthService,
			RateLimiter:   deps.RateLimiterService,
			RateLimit:     deps.RateLimit,
			Instrumenter:  deps.Instrumenter,
			PressureGuard: deps.PressureGuard,
			Metrics:       deps.Metrics,
		}, logger),
	}

	e.HTTPErrorHandler = server.httpErrorHandler
	server.setupMiddleware()
	server.setupRoutes()

	return server
}
