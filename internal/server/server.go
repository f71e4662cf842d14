// Package server wires the HTTP surface: session handling, flash messages
// and the page handlers.
package server

import (
	"context"
	"fmt"
	"time"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/middleware"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	sessions       *session.Store
	media          *storage.Store
	authService    *service.AuthService
	postService    *service.PostService
	commentService *service.CommentService
	userService    *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	media, err := storage.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("media store init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, media), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish the DB themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, media *storage.Store) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	srv := &Server{
		config: cfg,
		db:     db,
		media:  media,
		sessions: session.New(session.Config{
			KeyLookup:      "cookie:microblog_session",
			Expiration:     30 * 24 * time.Hour,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
	}
	srv.authService = service.NewAuthService(userRepo)
	srv.postService = service.NewPostService(postRepo, media)
	srv.commentService = service.NewCommentService(commentRepo, postRepo)
	srv.userService = service.NewUserService(userRepo, postRepo, media)
	return srv
}

// SetupMiddleware attaches the shared middleware stack to the app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(fiberrecover.New())
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: s.config.SessionKey(),
	}))
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())

	prom := fiberprometheus.New("microblog")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
}

// SetupRoutes registers the page routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	loadUser := middleware.LoadUser(s.sessions)
	authRequired := middleware.AuthRequired(s.sessions)

	app.Static("/uploads", s.media.Root())

	app.Get("/register", loadUser, s.RegisterPage)
	app.Post("/register", s.Register)
	app.Get("/login", loadUser, s.LoginPage)
	app.Post("/login", s.Login)
	app.Get("/logout", authRequired, s.Logout)

	app.Get("/", authRequired, s.Index)
	app.Get("/news", loadUser, s.News)

	app.Get("/create", authRequired, s.CreatePostPage)
	app.Post("/create", authRequired, s.CreatePost)
	app.Get("/edit/:id", authRequired, s.EditPostPage)
	app.Post("/edit/:id", authRequired, s.UpdatePost)
	app.Post("/delete/:id", authRequired, s.DeletePost)

	app.Post("/post/:id/comment", authRequired, s.CreateComment)
	app.Post("/comment/:id/delete", authRequired, s.DeleteComment)

	app.Get("/profile/:username", loadUser, s.Profile)
	app.Get("/profile", authRequired, s.EditProfilePage)
	app.Post("/profile", authRequired, s.UpdateProfile)
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(context.Context) error {
	if client := cache.GetClient(); client != nil {
		if err := client.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
