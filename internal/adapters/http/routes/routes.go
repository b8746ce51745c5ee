package routes

import (
	"resqall/internal/adapters/http/handlers"
	"resqall/internal/adapters/http/middleware"
	"resqall/internal/config"
	"resqall/internal/core/screens"
	"resqall/internal/core/services"
	"resqall/internal/core/session"
	"resqall/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps holds everything the web routes are built from
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Manager   *session.Manager
	Router    *screens.Router
	Auth      *services.AuthService
	Dashboard *services.DashboardService
	Slots     handlers.SlotCounter
	DB        *gorm.DB
}

// Setup configures all routes for the web application
func Setup(app *fiber.App, deps Deps) {
	healthHandler := handlers.NewHealthHandler(deps.Config, deps.Slots, deps.DB, deps.Logger)
	authHandler := handlers.NewAuthHandler(deps.Auth)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)
	screenHandler := handlers.NewScreenHandler(deps.Router, deps.Auth, deps.Dashboard, deps.Logger)

	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	sessions := middleware.Session(deps.Manager, deps.Config)

	apiV1 := app.Group("/api/v1", sessions)
	setupAPIV1Routes(apiV1, healthHandler, authHandler, dashboardHandler)

	web := app.Group("", sessions, middleware.NoCacheHeaders())
	setupScreenRoutes(web, deps.Router, screenHandler)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	router.Get("/info", healthHandler.APIInfo)

	auth := router.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.RequireIdentity(), authHandler.Me)

	protected := router.Group("", middleware.RequireIdentity())
	protected.Get("/dashboard", dashboardHandler.GetDashboard)
	protected.Get("/navigation", dashboardHandler.GetNavigation)
	protected.Get("/reports", middleware.AdminOnly(), dashboardHandler.GetReports)

	router.All("/*", func(c *fiber.Ctx) error {
		return response.Error(c, fiber.StatusNotFound, "Not found")
	})
}

// setupScreenRoutes mounts every gated screen plus a catch-all that lets the
// gate redirect unknown paths
func setupScreenRoutes(router fiber.Router, gate *screens.Router, screenHandler *handlers.ScreenHandler) {
	router.Post("/login", middleware.AuthRateLimiter(), screenHandler.Login)
	router.Post("/register", middleware.AuthRateLimiter(), screenHandler.Register)
	router.Post("/logout", screenHandler.Logout)

	for _, route := range gate.Routes() {
		router.Get(route.Path, screenHandler.Show)
	}
	router.Get("/*", screenHandler.Show)
}

// SetupStub configures the standalone stub API
func SetupStub(app *fiber.App, cfg *config.Config, logger *zap.Logger) {
	app.Use(middleware.RequestLogger(logger))

	healthHandler := handlers.NewHealthHandler(cfg, nil, nil, logger)
	app.Get("/", healthHandler.Root)
}
