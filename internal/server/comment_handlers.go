package server

import (
	"microblog/internal/middleware"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /post/:id/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}

	in := service.CreateCommentInput{
		UserID:  middleware.CurrentUserID(c),
		PostID:  uint(postID),
		Content: c.FormValue("content"),
	}
	if _, err := s.commentService.CreateComment(c.UserContext(), in); err != nil {
		return s.fail(c, err, "/")
	}

	return s.redirectWithFlash(c, "Comment added!", "/")
}

// DeleteComment handles POST /comment/:id/delete
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Not Found")
	}

	in := service.DeleteCommentInput{
		UserID:    middleware.CurrentUserID(c),
		CommentID: uint(commentID),
	}
	if err := s.commentService.DeleteComment(c.UserContext(), in); err != nil {
		return s.fail(c, err, "/")
	}

	return s.redirectWithFlash(c, "Comment deleted!", "/")
}
