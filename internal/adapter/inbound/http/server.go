package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/market-scout/marketscout/internal/app/service"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/inbound/query"
	"github.com/market-scout/marketscout/internal/port/outbound/cache"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CacheTTL        time.Duration
}

// Handlers bundles the command and query handlers the routes dispatch to.
type Handlers struct {
	RegisterUser         command.RegisterUserHandler
	VerifyEmail          command.VerifyEmailHandler
	Login                command.LoginHandler
	RefreshTokens        command.RefreshTokensHandler
	Logout               command.LogoutHandler
	LogoutAll            command.LogoutAllHandler
	RequestPasswordReset command.RequestPasswordResetHandler
	ResetPassword        command.ResetPasswordHandler
	CreateMarket         command.CreateMarketHandler
	RecordReview         command.RecordReviewHandler

	ListMarkets        query.ListMarketsHandler
	GetLeaderboard     query.GetLeaderboardHandler
	GetMarketSentiment query.GetMarketSentimentHandler
}

// Server wraps the HTTP server.
type Server struct {
	config        ServerConfig
	httpServer    *http.Server
	handlers      Handlers
	tokens        *service.TokenService
	responseCache cache.ResponseCache
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewServer creates a new HTTP server.
func NewServer(
	config ServerConfig,
	handlers Handlers,
	tokens *service.TokenService,
	responseCache cache.ResponseCache,
	logger *zap.Logger,
) *Server {
	s := &Server{
		config:        config,
		handlers:      handlers,
		tokens:        tokens,
		responseCache: responseCache,
		cacheTTL:      config.CacheTTL,
		logger:        logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      mux,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("GET /auth/verify_email", s.handleVerifyEmail)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /auth/logout", s.requireAuth(s.handleLogout))
	mux.HandleFunc("POST /auth/logout_all", s.requireAuth(s.handleLogoutAll))
	mux.HandleFunc("POST /auth/request_password_reset", s.handleRequestPasswordReset)
	mux.HandleFunc("POST /auth/reset_password", s.handleResetPassword)

	// Market listings and sentiment summaries read the same for every
	// caller, and the shared entry is what the write paths invalidate.
	mux.HandleFunc("GET /markets", s.cached(s.handleListMarkets, cacheOptions{}))
	mux.HandleFunc("POST /markets", s.requireAuth(s.handleCreateMarket))
	mux.HandleFunc("GET /markets/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /markets/{id}/sentiment", s.cached(s.handleMarketSentiment, cacheOptions{}))
	mux.HandleFunc("POST /markets/{id}/reviews", s.requireAuth(s.handleRecordReview))
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("http server starting", zap.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve on %s: %w", s.httpServer.Addr, err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.logger.Info("http server stopped gracefully")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
