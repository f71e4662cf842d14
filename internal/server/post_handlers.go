package server

import (
	"microblog/internal/middleware"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePostPage handles GET /create
func (s *Server) CreatePostPage(c *fiber.Ctx) error {
	return c.Render("create_post", fiber.Map{
		"Flash":       s.popFlash(c),
		"CurrentUser": s.currentUser(c),
	})
}

// CreatePost handles POST /create
func (s *Server) CreatePost(c *fiber.Ctx) error {
	imageName, imageData, err := formFileBytes(c, "image")
	if err != nil {
		return s.redirectWithFlash(c, "Could not read the uploaded file", "/create")
	}

	in := service.CreatePostInput{
		UserID:    middleware.CurrentUserID(c),
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		ImageName: imageName,
		ImageData: imageData,
	}
	if _, err := s.postService.CreatePost(c.UserContext(), in); err != nil {
		return s.fail(c, err, "/create")
	}

	return s.redirectWithFlash(c, "Post created!", "/")
}

// EditPostPage handles GET /edit/:id
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}

	post, err := s.postService.GetPost(c.UserContext(), uint(id))
	if err != nil {
		return s.fail(c, err, "/")
	}
	if post.UserID != middleware.CurrentUserID(c) {
		return s.redirectWithFlash(c, "You can only edit your own posts", "/")
	}

	return c.Render("edit_post", fiber.Map{
		"Flash":       s.popFlash(c),
		"CurrentUser": s.currentUser(c),
		"Post":        post,
	})
}

// UpdatePost handles POST /edit/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}

	imageName, imageData, err := formFileBytes(c, "image")
	if err != nil {
		return s.redirectWithFlash(c, "Could not read the uploaded file", "/")
	}

	in := service.UpdatePostInput{
		UserID:    middleware.CurrentUserID(c),
		PostID:    uint(id),
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		ImageName: imageName,
		ImageData: imageData,
	}
	if _, err := s.postService.UpdatePost(c.UserContext(), in); err != nil {
		return s.fail(c, err, "/")
	}

	return s.redirectWithFlash(c, "Post updated!", "/")
}

// DeletePost handles POST /delete/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}

	in := service.DeletePostInput{
		UserID: middleware.CurrentUserID(c),
		PostID: uint(id),
	}
	if err := s.postService.DeletePost(c.UserContext(), in); err != nil {
		return s.fail(c, err, "/")
	}

	return s.redirectWithFlash(c, "Post deleted!", "/")
}
