package response

import (
	"errors"

	"resqall/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Messages shared by the API envelopes
const (
	NotSignedInMessage = "Not signed in"
	InvalidBodyMessage = "Invalid request body"
	ForbiddenMessage   = "You don't have permission to access this resource"
)

// Response is the envelope every API endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 carrying the identity a registration signed in as
func Created(c *fiber.Ctx, message string, identity domain.Identity) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    identity,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// InvalidBody rejects a request whose body could not be parsed
func InvalidBody(c *fiber.Ctx) error {
	return Error(c, fiber.StatusBadRequest, InvalidBodyMessage)
}

// NotSignedIn rejects a request whose session has no current identity
func NotSignedIn(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, NotSignedInMessage)
}

// Fail maps a session or directory error onto its envelope. Lookup
// failures answer 401 with the inline message the login screen shows,
// validation errors answer 400 with their own message, and anything
// else is a 500 carrying fallback.
func Fail(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, domain.ErrLookupFailure) {
		return Error(c, fiber.StatusUnauthorized, domain.LookupFailureMessage)
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return Error(c, fiber.StatusBadRequest, verr.Message)
	}

	return Error(c, fiber.StatusInternalServerError, fallback)
}

// Redirected sends a 403 carrying the path the client should go to instead.
// API callers get the same soft-fail the HTML screens perform with a 302.
func Redirected(c *fiber.Ctx, location string) error {
	return c.Status(fiber.StatusForbidden).JSON(Response{
		Success: false,
		Error:   ForbiddenMessage,
		Data:    fiber.Map{"redirect": location},
	})
}
