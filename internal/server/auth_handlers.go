package server

import (
	"microblog/internal/middleware"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterPage handles GET /register
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	if middleware.CurrentUserID(c) != 0 {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("register", fiber.Map{
		"Flash": s.popFlash(c),
	})
}

// Register handles POST /register
func (s *Server) Register(c *fiber.Ctx) error {
	in := service.RegisterInput{
		Username:        c.FormValue("username"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirm_password"),
	}

	if _, err := s.authService.Register(c.UserContext(), in); err != nil {
		return s.fail(c, err, "/register")
	}
	return s.redirectWithFlash(c, "Registration successful! You can now log in.", "/login")
}

// LoginPage handles GET /login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	if middleware.CurrentUserID(c) != 0 {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("login", fiber.Map{
		"Flash": s.popFlash(c),
	})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	user, err := s.authService.Login(c.UserContext(), c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return s.fail(c, err, "/login")
	}

	sess, err := s.sessions.Get(c)
	if err != nil {
		return s.redirectWithFlash(c, "Could not establish a session", "/login")
	}
	sess.Set(middleware.SessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		return s.redirectWithFlash(c, "Could not establish a session", "/login")
	}

	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles GET /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if sess, err := s.sessions.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/login", fiber.StatusFound)
}
