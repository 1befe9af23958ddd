package httpserver

import "github.com/labstack/echo/v4"

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", echo.WrapHandler(s.metricsHandler))

	api := s.echo.Group("/api")
	api.Use(s.middleware.RateLimit.Handler())
	api.Use(s.middleware.JWT.OptionalJWT())

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.POST("/logout", s.logout)
	auth.GET("/me", s.me)

	reminders := api.Group("/reminders")
	reminders.GET("", s.listReminders)
	reminders.GET("/export", s.exportReminders)
	reminders.GET("/:id", s.getReminder)
	reminders.POST("", s.createReminder)
	reminders.PUT("/:id", s.updateReminder)
	reminders.DELETE("/:id", s.deleteReminder)
	reminders.PATCH("/:id/complete", s.completeReminder)

	summaries := api.Group("/summaries")
	summaries.POST("/generate", s.generateSummary)
	summaries.POST("/upload", s.uploadSummary)
	summaries.GET("", s.listSummaries)
	summaries.GET("/:id", s.getSummary)

	users := api.Group("/users")
	users.GET("/:id", s.getUser)
	users.PUT("/:id", s.updateUser)
	users.GET("/:id/stats", s.getUserStats)
}
