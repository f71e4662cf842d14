package server

import (
	"io"

	"microblog/internal/middleware"
	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

const flashKey = "flash"

// flash stores a one-shot message in the session; popFlash consumes it.
func (s *Server) flash(c *fiber.Ctx, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return
	}
	sess.Set(flashKey, message)
	if err := sess.Save(); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "failed to save flash message")
	}
}

func (s *Server) popFlash(c *fiber.Ctx) string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return ""
	}
	msg, _ := sess.Get(flashKey).(string)
	if msg != "" {
		sess.Delete(flashKey)
		_ = sess.Save()
	}
	return msg
}

// redirectWithFlash is the uniform failure/success surface: a flash message
// plus a redirect to a known-good page.
func (s *Server) redirectWithFlash(c *fiber.Ctx, message, location string) error {
	s.flash(c, message)
	return c.Redirect(location, fiber.StatusFound)
}

// fail maps a domain error onto the page contract: NotFound becomes a plain
// 404, everything else becomes a flash message plus redirect.
func (s *Server) fail(c *fiber.Ctx, err error, location string) error {
	if models.ErrorCode(err) == models.CodeNotFound {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}
	return s.redirectWithFlash(c, models.UserMessage(err), location)
}

// currentUser loads the authenticated user's row, or nil for anonymous requests.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	uid := middleware.CurrentUserID(c)
	if uid == 0 {
		return nil
	}
	user, err := s.userService.GetUser(c.UserContext(), uid)
	if err != nil {
		return nil
	}
	return user
}

// formFileBytes reads an optional multipart file field. Absence of the field
// is not an error; the caller proceeds without a file.
func formFileBytes(c *fiber.Ctx, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}
