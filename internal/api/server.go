// Package api exposes the services as a JSON API over gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/interfaces"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Server serves the JSON API.
type Server struct {
	services     *interfaces.Services
	tokens       *auth.TokenIssuer
	signInSecret string
	engine       *gin.Engine
	http         *http.Server
}

// Config holds the dependencies of a Server.
type Config struct {
	Addr     string
	Services *interfaces.Services
	Tokens   *auth.TokenIssuer

	// SignInSecret authenticates the upstream login service on /auth/signin.
	SignInSecret string
}

// NewServer creates a Server with every route registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Services == nil {
		return nil, errors.New("services cannot be nil")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token issuer cannot be nil")
	}
	if cfg.SignInSecret == "" {
		return nil, errors.New("sign-in secret cannot be empty")
	}

	s := &Server{services: cfg.Services, tokens: cfg.Tokens, signInSecret: cfg.SignInSecret}
	s.engine = s.router()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/auth/signin", s.requireSignInSecret(), s.signIn)

	authed := r.Group("/")
	authed.Use(s.requireUser())
	{
		authed.GET("/me", s.getMe)
		authed.PUT("/me", s.updateMe)

		authed.POST("/drink-logs", s.createDrinkLog)
		authed.GET("/drink-logs", s.listDrinkLogs)
		authed.PATCH("/drink-logs/:id", s.updateDrinkLog)
		authed.DELETE("/drink-logs/:id", s.deleteDrinkLog)

		authed.GET("/goals", s.listGoals)
		authed.POST("/goals", s.createGoal)
		authed.GET("/goals/progress", s.goalProgress)
		authed.GET("/goals/type/:type", s.goalByType)
		authed.PATCH("/goals/:id", s.updateGoal)
		authed.POST("/goals/:id/deactivate", s.deactivateGoal)

		authed.GET("/stats/weekly", s.weeklyStats)
		authed.GET("/stats/monthly", s.monthlyStats)

		authed.POST("/consultations/chat", s.chat)
		authed.GET("/consultations", s.listConsultations)
		authed.DELETE("/consultations/:id", s.deleteConsultation)
	}
	return r
}
