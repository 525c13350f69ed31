// Package server contains the HTTP handlers for the application's endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	middleware.InitMiddleware(cfg)

	return &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		userRepo:    repository.NewUserRepository(db),
		groupRepo:   repository.NewGroupRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		followRepo:  repository.NewFollowRepository(db),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())

	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.Tracing())
	}

	prometheus := fiberprometheus.New("quill")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Get("/login", s.LoginForm)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public feeds
	app.Get("/", s.Index)
	app.Get("/group/:slug", s.GroupFeed)

	// Static informational pages
	about := app.Group("/about")
	about.Get("/author", s.AboutAuthor)
	about.Get("/tech", s.AboutTech)

	// Health check
	app.Get("/healthz", s.HealthCheck)

	// Following feed and follow management. The follow/unfollow routes
	// must be registered before the generic profile route.
	app.Get("/follow", middleware.LoginRequired, s.FollowIndex)
	app.Get("/profile/:username/follow", middleware.LoginRequired, s.ProfileFollow)
	app.Get("/profile/:username/unfollow", middleware.LoginRequired, s.ProfileUnfollow)
	app.Get("/profile/:username", s.Profile)

	// Post creation
	app.Get("/create", middleware.LoginRequired, s.CreatePostForm)
	app.Post("/create", middleware.LoginRequired,
		middleware.RateLimit(s.redis, 10, time.Minute, "create_post"), s.CreatePost)

	// Post detail, edit and comments; action routes before the generic one
	app.Get("/posts/:id/edit", middleware.LoginRequired, s.EditPostForm)
	app.Post("/posts/:id/edit", middleware.LoginRequired, s.EditPost)
	app.Post("/posts/:id/comment", middleware.LoginRequired,
		middleware.RateLimit(s.redis, 15, time.Minute, "add_comment"), s.AddComment)
	app.Get("/posts/:id", s.PostDetail)

	// Everything else renders the dedicated not-found page
	app.Use(s.NotFound)
}

// NotFound handles unknown routes with the dedicated not-found page payload.
func (s *Server) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"template": "core/404",
		"error":    "Page not found",
		"path":     c.Path(),
	})
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown gracefully releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	return nil
}
