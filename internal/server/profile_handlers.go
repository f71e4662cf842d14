package server

import (
	"microblog/internal/middleware"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Profile handles GET /profile/:username, the public profile page.
func (s *Server) Profile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, posts, err := s.userService.GetProfile(c.UserContext(), username)
	if err != nil {
		return s.fail(c, err, "/")
	}

	return c.Render("profile", fiber.Map{
		"Flash":       s.popFlash(c),
		"CurrentUser": s.currentUser(c),
		"User":        user,
		"Posts":       posts,
		"PostCount":   len(posts),
	})
}

// EditProfilePage handles GET /profile, the self-service edit form.
func (s *Server) EditProfilePage(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	return c.Render("edit_profile", fiber.Map{
		"Flash":       s.popFlash(c),
		"CurrentUser": user,
		"User":        user,
	})
}

// UpdateProfile handles POST /profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	avatarName, avatarData, err := formFileBytes(c, "avatar")
	if err != nil {
		return s.redirectWithFlash(c, "Could not read the uploaded file", "/profile")
	}

	in := service.UpdateProfileInput{
		UserID:     middleware.CurrentUserID(c),
		Username:   c.FormValue("username"),
		Email:      c.FormValue("email"),
		AvatarName: avatarName,
		AvatarData: avatarData,
	}
	if _, err := s.userService.UpdateProfile(c.UserContext(), in); err != nil {
		return s.fail(c, err, "/profile")
	}

	return s.redirectWithFlash(c, "Profile updated!", "/profile")
}
