package middleware

import (
	"time"

	"resqall/internal/config"
	"resqall/internal/core/domain"
	"resqall/internal/core/screens"
	"resqall/internal/core/session"
	"resqall/internal/pkg/jwt"
	"resqall/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the signed client id
const SessionCookie = "resqall_session"

const (
	localsSession  = "session"
	localsClientID = "clientID"
	localsIdentity = "identity"
)

// Session resolves the client's session store.
// A missing, tampered or expired cookie gets a fresh client id, which starts
// the client on an empty slot.
func Session(manager *session.Manager, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clientID string

		if token := c.Cookies(SessionCookie); token != "" {
			if claims, err := jwt.ValidateSessionToken(token, cfg.Session.Secret); err == nil {
				clientID = claims.ClientID()
			}
		}

		if clientID == "" {
			clientID = uuid.NewString()
			token, err := jwt.GenerateSessionToken(clientID, cfg.Session.Secret, cfg.Session.Days)
			if err != nil {
				return err
			}

			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				Domain:   cfg.Cookie.Domain,
				Expires:  time.Now().Add(time.Duration(cfg.Session.Days) * 24 * time.Hour),
				Secure:   cfg.Cookie.Secure,
				HTTPOnly: true,
				SameSite: cfg.Cookie.SameSite,
			})
		}

		c.Locals(localsClientID, clientID)
		c.Locals(localsSession, manager.Open(clientID))
		return c.Next()
	}
}

// GetSession returns the store installed by Session
func GetSession(c *fiber.Ctx) *session.Store {
	store, _ := c.Locals(localsSession).(*session.Store)
	return store
}

// GetClientID returns the client id installed by Session
func GetClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsClientID).(string)
	return id
}

// RequireIdentity rejects API requests without a current identity
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := GetSession(c)
		if store == nil {
			return response.NotSignedIn(c)
		}

		identity, ok := store.Current()
		if !ok {
			return response.NotSignedIn(c)
		}

		c.Locals(localsIdentity, identity)
		return c.Next()
	}
}

// GetIdentity returns the identity installed by RequireIdentity
func GetIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(localsIdentity).(domain.Identity)
	return identity, ok
}

// RoleMiddleware creates role-based authorization middleware.
// Must run after RequireIdentity.
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return response.NotSignedIn(c)
		}

		for _, role := range allowedRoles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return response.Redirected(c, screens.PathDashboard)
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}
