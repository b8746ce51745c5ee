package handlers

import (
	"strings"

	"resqall/internal/adapters/http/middleware"
	"resqall/internal/core/services"
	"resqall/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles sign-in by email
// @Summary Login
// @Description Sign in as a known identity. The password is collected but not verified.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.InvalidBody(c)
	}
	input.Email = strings.TrimSpace(input.Email)

	identity, err := h.authService.Login(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		return response.Fail(c, err, "Login failed")
	}

	return response.Success(c, "Login successful", identity)
}

// Register handles registration
// @Summary Register
// @Description Create a new identity and sign in as it
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.InvalidBody(c)
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	identity, err := h.authService.Register(c.Context(), middleware.GetSession(c), &input)
	if err != nil {
		return response.Fail(c, err, "Registration failed")
	}

	return response.Created(c, "Registration successful", identity)
}

// Logout clears the current identity
// @Summary Logout
// @Description Sign out of the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.GetSession(c)); err != nil {
		return response.Fail(c, err, "Logout failed")
	}

	return response.Success(c, "Logout successful", nil)
}

// Me returns the current identity
// @Summary Current identity
// @Description Get the identity of the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.NotSignedIn(c)
	}

	return response.Success(c, "Identity retrieved successfully", identity)
}
