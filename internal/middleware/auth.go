// Package middleware provides authentication and request logging middleware.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionUserKey is the session key under which the authenticated user's ID is stored.
const SessionUserKey = "user_id"

// AuthRequired enforces an authenticated session for protected routes.
// Anonymous visitors are redirected to the login page rather than shown an error.
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}

		uid, ok := sess.Get(SessionUserKey).(uint)
		if !ok || uid == 0 {
			return c.Redirect("/login", fiber.StatusFound)
		}

		setUserID(c, uid)
		return c.Next()
	}
}

// setUserID records the identity in locals and in the request context, so
// both handlers and the context-aware logger see it.
func setUserID(c *fiber.Ctx, uid uint) {
	c.Locals("userID", uid)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, uid))
}

// LoadUser resolves the session identity without gating the route. Handlers
// for public pages use it to distinguish anonymous visitors from members.
func LoadUser(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sess, err := store.Get(c); err == nil {
			if uid, ok := sess.Get(SessionUserKey).(uint); ok && uid != 0 {
				setUserID(c, uid)
			}
		}
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID, or 0 for anonymous requests.
func CurrentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
