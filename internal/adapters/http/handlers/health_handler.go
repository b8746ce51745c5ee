package handlers

import (
	"resqall/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BackendStatus is the stub API's root response body
const BackendStatus = "Backend is running"

// SlotCounter reports how many session slots are persisted
type SlotCounter interface {
	Len() (int, error)
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg    *config.Config
	slots  SlotCounter
	db     *gorm.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler. db is nil when reports are
// served from fixtures.
func NewHealthHandler(cfg *config.Config, slots SlotCounter, db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		cfg:    cfg,
		slots:  slots,
		db:     db,
		logger: logger,
	}
}

// Root handles the stub API root
// @Summary Root endpoint
// @Description Returns a plain-text liveness message
// @Tags Health
// @Produce plain
// @Success 200 {string} string "Backend is running"
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString(BackendStatus)
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check session store and report store health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	status := fiber.StatusOK
	checks := fiber.Map{"api": "healthy"}

	if n, err := h.slots.Len(); err != nil {
		h.logger.Error("Session store health check failed", zap.Error(err))
		checks["sessions"] = "unhealthy"
		status = fiber.StatusServiceUnavailable
	} else {
		checks["sessions"] = "healthy"
		checks["session_slots"] = n
	}

	switch {
	case h.cfg.ReportStore == config.ReportStoreFixture:
		checks["reports"] = "fixture"
	case config.HealthCheck(h.db) != nil:
		checks["reports"] = "unhealthy"
		status = fiber.StatusServiceUnavailable
	default:
		checks["reports"] = "healthy"
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"mode":   h.cfg.AppMode,
		"checks": checks,
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Description Returns API v1 information
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /info [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "ResQAll API v1",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
	})
}
