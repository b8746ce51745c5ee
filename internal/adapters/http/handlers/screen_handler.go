package handlers

import (
	"errors"
	"strings"

	"resqall/internal/adapters/http/middleware"
	"resqall/internal/adapters/http/views"
	"resqall/internal/core/domain"
	"resqall/internal/core/screens"
	"resqall/internal/core/services"
	"resqall/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ScreenHandler serves the HTML screens behind the route gate
type ScreenHandler struct {
	router           *screens.Router
	authService      *services.AuthService
	dashboardService *services.DashboardService
	logger           *zap.Logger
}

// NewScreenHandler creates a new screen handler
func NewScreenHandler(
	router *screens.Router,
	authService *services.AuthService,
	dashboardService *services.DashboardService,
	logger *zap.Logger,
) *ScreenHandler {
	return &ScreenHandler{
		router:           router,
		authService:      authService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// loginForm carries what the login screen echoes back after a failed submit
type loginForm struct {
	Username    string
	Email       string
	IsVolunteer bool
}

// Show resolves the request path through the gate and renders the screen
func (h *ScreenHandler) Show(c *fiber.Ctx) error {
	var current *domain.Identity
	if identity, ok := middleware.GetSession(c).Current(); ok {
		current = &identity
	}

	decision := h.router.Resolve(c.Path(), current)
	if decision.IsRedirect() {
		return c.Redirect(decision.Redirect, fiber.StatusFound)
	}

	if decision.Screen == screens.ScreenLogin {
		return h.renderLogin(c, fiber.StatusOK, decision.Title, c.Query("mode") == "register", "", loginForm{})
	}

	identity := *current
	data := fiber.Map{
		"Title":    decision.Title,
		"Path":     c.Path(),
		"Identity": identity,
		"Nav":      screens.Navigation(identity),
	}

	switch decision.Screen {
	case screens.ScreenDashboard:
		dash, err := h.dashboardService.Build(c.Context(), identity)
		if err != nil {
			h.logger.Error("Failed to build dashboard", zap.Error(err))
			return fiber.ErrInternalServerError
		}
		data["Dashboard"] = dash
		data["Variant"] = dash.Variant.String()
		return c.Render("dashboard", data, views.Layout)

	case screens.ScreenProfile:
		return c.Render("profile", data, views.Layout)

	case screens.ScreenTasks:
		tasks, err := h.dashboardService.Tasks(c.Context(), identity)
		if err != nil {
			h.logger.Error("Failed to list tasks", zap.Error(err))
			return fiber.ErrInternalServerError
		}
		data["Tasks"] = tasks
		return c.Render("tasks", data, views.Layout)

	case screens.ScreenAdminVolunteers:
		volunteers, err := h.dashboardService.Volunteers(c.Context())
		if err != nil {
			h.logger.Error("Failed to list volunteers", zap.Error(err))
			return fiber.ErrInternalServerError
		}
		data["Volunteers"] = volunteers
		return c.Render("volunteers", data, views.Layout)

	case screens.ScreenAdminReports:
		params := pagination.GetParams(c)
		reports, total, err := h.dashboardService.Reports(c.Context(), params.Offset, params.Limit)
		if err != nil {
			h.logger.Error("Failed to list reports", zap.Error(err))
			return fiber.ErrInternalServerError
		}
		data["Reports"] = reports
		data["Meta"] = pagination.GetMeta(params, total)
		return c.Render("reports", data, views.Layout)
	}

	return c.Redirect(screens.PathDashboard, fiber.StatusFound)
}

// Login handles the sign-in form
func (h *ScreenHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}
	input.Email = strings.TrimSpace(input.Email)

	if _, err := h.authService.Login(c.Context(), middleware.GetSession(c), &input); err != nil {
		form := loginForm{Email: input.Email}
		if errors.Is(err, domain.ErrLookupFailure) {
			return h.renderLogin(c, fiber.StatusUnauthorized, h.loginTitle(), false, domain.LookupFailureMessage, form)
		}
		return fiber.ErrInternalServerError
	}

	return c.Redirect(screens.PathDashboard, fiber.StatusSeeOther)
}

// Register handles the registration form
func (h *ScreenHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.ErrBadRequest
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if _, err := h.authService.Register(c.Context(), middleware.GetSession(c), &input); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			form := loginForm{Username: input.Username, Email: input.Email, IsVolunteer: input.IsVolunteer}
			return h.renderLogin(c, fiber.StatusBadRequest, h.loginTitle(), true, verr.Message, form)
		}
		return fiber.ErrInternalServerError
	}

	return c.Redirect(screens.PathDashboard, fiber.StatusSeeOther)
}

// Logout signs out and returns to the login screen
func (h *ScreenHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.GetSession(c)); err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Redirect(screens.PathLogin, fiber.StatusSeeOther)
}

func (h *ScreenHandler) renderLogin(c *fiber.Ctx, status int, title string, register bool, message string, form loginForm) error {
	data := fiber.Map{
		"Title":    title,
		"Path":     screens.PathLogin,
		"Register": register,
		"Error":    message,
		"Form":     form,
	}
	if identity, ok := middleware.GetSession(c).Current(); ok {
		data["Identity"] = identity
	}

	return c.Status(status).Render("login", data, views.Layout)
}

func (h *ScreenHandler) loginTitle() string {
	return h.router.Resolve(screens.PathLogin, nil).Title
}
