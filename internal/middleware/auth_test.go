package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionApp(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()
	store := session.New()
	app := fiber.New()
	app.Get("/seed", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		require.NoError(t, err)
		sess.Set(SessionUserKey, uint(7))
		return sess.Save()
	})
	return app, store
}

// seedSession logs user 7 in and returns the session cookie to replay.
func seedSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/seed", nil))
	require.NoError(t, err)
	cookie := resp.Header.Get("Set-Cookie")
	require.NotEmpty(t, cookie)
	return strings.Split(cookie, ";")[0]
}

// identityHandler reports the user ID as seen through locals and through the
// request context, which the structured logger reads.
func identityHandler(c *fiber.Ctx) error {
	ctxUID, _ := c.UserContext().Value(UserIDKey).(uint)
	return c.SendString(fmt.Sprintf("locals=%d ctx=%d", CurrentUserID(c), ctxUID))
}

func TestAuthRequired(t *testing.T) {
	app, store := newSessionApp(t)
	app.Get("/private", AuthRequired(store), identityHandler)

	t.Run("anonymous visitor is redirected to login", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/private", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("session identity reaches locals and request context", func(t *testing.T) {
		cookie := seedSession(t, app)

		req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
		req.Header.Set("Cookie", cookie)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "locals=7 ctx=7", readBody(t, resp))
	})
}

func TestLoadUser(t *testing.T) {
	app, store := newSessionApp(t)
	app.Get("/public", LoadUser(store), identityHandler)

	t.Run("anonymous visitor passes through with no identity", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/public", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "locals=0 ctx=0", readBody(t, resp))
	})

	t.Run("member identity is resolved without gating", func(t *testing.T) {
		cookie := seedSession(t, app)

		req := httptest.NewRequest(fiber.MethodGet, "/public", nil)
		req.Header.Set("Cookie", cookie)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "locals=7 ctx=7", readBody(t, resp))
	})
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
