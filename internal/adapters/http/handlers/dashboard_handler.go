package handlers

import (
	"resqall/internal/adapters/http/middleware"
	"resqall/internal/core/screens"
	"resqall/internal/core/services"
	"resqall/internal/pkg/pagination"
	"resqall/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the dashboard variant for the current identity
// @Summary Dashboard
// @Description Get the dashboard variant and its data for the current identity
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.NotSignedIn(c)
	}

	data, err := h.dashboardService.Build(c.Context(), identity)
	if err != nil {
		return response.Fail(c, err, "Failed to get dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", fiber.Map{
		"variant":   data.Variant,
		"dashboard": data,
	})
}

// GetNavigation returns the sidebar links for the current identity
// @Summary Navigation
// @Description Get the sidebar links visible to the current identity
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /navigation [get]
func (h *DashboardHandler) GetNavigation(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.NotSignedIn(c)
	}

	return response.Success(c, "Navigation retrieved successfully", screens.Navigation(identity))
}

// GetReports returns reports newest first
// @Summary Master log
// @Description List every report, newest first (Admin only)
// @Tags Reports
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /reports [get]
func (h *DashboardHandler) GetReports(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	reports, total, err := h.dashboardService.Reports(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Fail(c, err, "Failed to get reports")
	}

	return response.Success(c, "Reports retrieved successfully", pagination.NewResponse(reports, params, total))
}
