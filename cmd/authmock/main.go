package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nimasrn/marketplace/internal/auth"
	"github.com/nimasrn/marketplace/pkg/redis"
)

// IssueSessionRequest represents a request to mint a session for a user.
type IssueSessionRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// IssueSessionResponse carries the opaque token the API accepts as a bearer
// credential or session cookie.
type IssueSessionResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Handler struct holds the session store and routes
type Handler struct {
	sessions *auth.SessionStore
	ttl      time.Duration
}

func NewHandler(sessions *auth.SessionStore, ttl time.Duration) *Handler {
	return &Handler{sessions: sessions, ttl: ttl}
}

// IssueSession mints a session token for the given user id. This stands in
// for the real identity provider during local development.
func (h *Handler) IssueSession(c *gin.Context) {
	var req IssueSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	token, err := h.sessions.Issue(req.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to issue session")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue session",
		})
		return
	}

	now := time.Now()
	log.Info().
		Str("user_id", req.UserID).
		Time("expires_at", now.Add(h.ttl)).
		Msg("Session issued")

	c.JSON(http.StatusCreated, IssueSessionResponse{
		Token:     token,
		UserID:    req.UserID,
		IssuedAt:  now,
		ExpiresAt: now.Add(h.ttl),
	})
}

// RevokeSession deletes a session token, logging the caller out everywhere.
func (h *Handler) RevokeSession(c *gin.Context) {
	token := c.Param("token")

	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "token is required",
		})
		return
	}

	if err := h.sessions.Revoke(token); err != nil {
		log.Error().Err(err).Msg("Failed to revoke session")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to revoke session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "revoked",
	})
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	// Add request logging middleware
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/sessions", handler.IssueSession)
		v1.DELETE("/sessions/:token", handler.RevokeSession)
		v1.GET("/health", handler.HealthCheck)
	}

	// Root health check
	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Get configuration from environment
	port := getEnv("PORT", "8082")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := getEnv("REDIS_PASSWORD", "")
	sessionPrefix := getEnv("SESSION_KEY_PREFIX", "session")
	sessionTTL := getEnvDuration("SESSION_TTL", 24*time.Hour)

	log.Info().
		Str("port", port).
		Str("redis_addr", redisAddr).
		Dur("session_ttl", sessionTTL).
		Msg("Starting Mock Identity Provider")

	rdb, err := redis.NewRedisAdapter("authmock", "", &redis.Options{
		Addrs:      []string{redisAddr},
		ClientName: "authmock",
		Password:   redisPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}

	sessions := auth.NewSessionStore(rdb, sessionPrefix, sessionTTL)
	handler := NewHandler(sessions, sessionTTL)
	router := SetupRouter(handler)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
