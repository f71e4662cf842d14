package server

import (
	"github.com/gofiber/fiber/v2"
)

// Index handles GET /, the full feed shown to logged-in users, newest first.
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postService.ListAllPosts(c.UserContext())
	if err != nil {
		return s.fail(c, err, "/login")
	}

	return c.Render("index", fiber.Map{
		"Flash":       s.popFlash(c),
		"CurrentUser": s.currentUser(c),
		"Posts":       posts,
	})
}

// News handles GET /news, the paginated feed. Pages are 1-indexed; a page
// past the end renders empty rather than erroring.
func (s *Server) News(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	posts, totalPages, err := s.postService.ListFeed(c.UserContext(), page)
	if err != nil {
		return s.fail(c, err, "/news")
	}
	if page < 1 {
		page = 1
	}

	return c.Render("news", fiber.Map{
		"Flash":       s.popFlash(c),
		"CurrentUser": s.currentUser(c),
		"Posts":       posts,
		"Page":        page,
		"TotalPages":  totalPages,
		"HasPrev":     page > 1,
		"HasNext":     page < totalPages,
		"PrevPage":    page - 1,
		"NextPage":    page + 1,
	})
}
