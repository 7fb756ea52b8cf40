// Entry point of the forum backend. Initializes configuration, the database
// pool, services and handlers, sets up the HTTP router and middleware, and
// starts the server with graceful shutdown.
//
// @title Forum API
// @version 1.0
// @description Forum backend: registration/login with bearer tokens, posts, likes, comments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
	"github.com/user/forum-go/comments"
	"github.com/user/forum-go/config"
	"github.com/user/forum-go/db"
	"github.com/user/forum-go/likes"
	"github.com/user/forum-go/posts"
	"github.com/user/forum-go/users"
)

func main() {
	// .env is a development convenience; in production variables are set directly.
	if err := godotenv.Load(); err != nil {
		logrus.Warnf(".env file not found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if cfg.Server.MigrationsPath != "" {
		if err := db.RunMigrations(cfg.DB, cfg.Server.MigrationsPath); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Wire services and handlers. Dependencies are injected explicitly so the
	// signing secret and hashing cost live only in the components that need them.
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	issuer := auth.NewTokenIssuer(*cfg.Auth)

	authService := auth.NewAuthService(pool, hasher, issuer, logger)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(pool)
	userHandlers := users.NewUserHandlers(userService)

	postService := posts.NewPostService(pool, logger)
	postHandler := posts.NewPostHandler(postService)

	likeService := likes.NewLikeService(pool, logger)
	likeHandler := likes.NewLikeHandler(likeService)

	commentService := comments.NewCommentService(pool, logger)
	commentHandler := comments.NewCommentHandler(commentService)

	r := chi.NewRouter()

	// Global middleware. Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Get("/posts", postHandler.List)
		r.Get("/posts/{id}", postHandler.Get)
		r.Get("/posts/{id}/comments", commentHandler.ListForPost)

		// Routes requiring a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(issuer))

			r.Get("/me", userHandlers.HandleMe())
			r.Post("/posts", postHandler.Create)
			r.Post("/posts/{id}/like", likeHandler.Toggle)
			r.Get("/posts/{id}/liked", likeHandler.Status)
			r.Post("/posts/{id}/comments", commentHandler.Add)
			r.Delete("/comments/{id}", commentHandler.Delete)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleAdmin))
				r.Delete("/posts/{id}", postHandler.Delete)
			})
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped gracefully")
}

// requestLogger logs every request with its status, size and duration.
func requestLogger(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("request handled")
		})
	}
}

// recoverer converts panics into a generic 500 response. Nothing about the
// panic reaches the caller; details go to the log only.
func recoverer(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.WithFields(logrus.Fields{
						"panic":      rvr,
						"method":     r.Method,
						"path":       r.URL.Path,
						"request_id": middleware.GetReqID(r.Context()),
					}).Error("panic recovered")
					appErr := apperror.NewInternalError("internal server error", nil)
					auth.WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
