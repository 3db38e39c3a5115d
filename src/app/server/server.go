// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"jokebox/src/app/http/handler"
	"jokebox/src/app/middleware"
	"jokebox/src/core/ports"
	"jokebox/src/core/usecase"
	"jokebox/src/infra/config"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	authService *usecase.AuthService

	// Handlers
	healthHandler *handler.HealthHandler
	authHandler   *handler.AuthHandler
	jokeHandler   *handler.JokeHandler
	feedHandler   *handler.FeedHandler
}

// New creates a new Server with all dependencies wired up.
// Repository, token service, and feed are taken as ports so tests can
// substitute in-memory fakes.
func New(cfg *config.Config, log *slog.Logger, repo ports.CollectionRepository, tokens ports.TokenService, feed ports.JokeFeed) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(repo, log)
	authService := usecase.NewAuthService(repo, tokens, log)
	jokeService := usecase.NewJokeService(repo, log)
	feedService := usecase.NewFeedService(repo, feed, log)

	s := &Server{
		cfg:           cfg,
		log:           log,
		router:        router,
		authService:   authService,
		healthHandler: handler.NewHealthHandler(healthService),
		authHandler:   handler.NewAuthHandler(authService),
		jokeHandler:   handler.NewJokeHandler(jokeService),
		feedHandler:   handler.NewFeedHandler(feedService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	// Authentication (no session required)
	s.router.POST("/auth/register", s.authHandler.Register)
	s.router.POST("/auth/login", s.authHandler.Login)

	// Everything below requires a valid session token.
	protected := s.router.Group("/")
	protected.Use(middleware.Auth(s.authService))
	{
		// Joke collection
		protected.GET("/jokes", s.jokeHandler.List)
		protected.POST("/jokes", s.jokeHandler.Create)
		protected.GET("/jokes/:id", s.jokeHandler.Get)
		protected.PUT("/jokes/:id", s.jokeHandler.Update)
		protected.DELETE("/jokes/:id", s.jokeHandler.Delete)

		// External feed
		protected.GET("/categories", s.feedHandler.Categories)
		protected.GET("/random", s.feedHandler.Random)
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
