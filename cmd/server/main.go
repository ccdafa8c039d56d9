package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	natsclient "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpserver "github.com/market-scout/marketscout/internal/adapter/inbound/http"
	natsadapter "github.com/market-scout/marketscout/internal/adapter/outbound/nats"
	"github.com/market-scout/marketscout/internal/adapter/outbound/postgres"
	rediscache "github.com/market-scout/marketscout/internal/adapter/outbound/redis"
	sentimentadapter "github.com/market-scout/marketscout/internal/adapter/outbound/sentiment"
	"github.com/market-scout/marketscout/internal/app/command"
	"github.com/market-scout/marketscout/internal/app/query"
	"github.com/market-scout/marketscout/internal/app/service"
	"github.com/market-scout/marketscout/internal/app/worker"
	"github.com/market-scout/marketscout/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting marketscout service",
		zap.String("address", cfg.Server.Address()),
	)

	pool, err := connectPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	redisClient, err := connectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	natsConn, err := connectNATS(cfg.NATS, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to nats: %w", err)
	}
	defer natsConn.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	marketRepo := postgres.NewMarketRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)

	// Redis-backed stores
	tokenStore := rediscache.NewTokenStore(redisClient, cfg.Redis.Namespace)
	leaderboardStore := rediscache.NewLeaderboardStore(redisClient, cfg.Redis.Namespace)
	responseCache := rediscache.NewResponseCache(redisClient, cfg.Redis.Namespace)

	// Event publisher
	eventPublisher := natsadapter.NewEventPublisher(natsConn, cfg.NATS.SubjectPrefix)

	// Services
	tokenService, err := service.NewTokenService(service.TokenConfig{
		Issuer:               cfg.Token.Issuer,
		Audience:             cfg.Token.Audience,
		AccessTokenDuration:  cfg.Token.AccessDuration,
		RefreshTokenDuration: cfg.Token.RefreshDuration,
		SigningKey:           []byte(cfg.Token.SigningKey),
	}, tokenStore, eventPublisher, logger)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	leaderboardService := service.NewLeaderboardService(
		leaderboardStore,
		marketRepo,
		reviewRepo,
		eventPublisher,
		service.ScoreWeights{
			AvgRating:    cfg.Leaderboard.RatingWeight,
			AvgSentiment: cfg.Leaderboard.SentimentWeight,
			ReviewCount:  cfg.Leaderboard.VolumeWeight,
		},
		logger,
	)

	scorer := sentimentadapter.NewLexiconScorer()

	// Command and query handlers
	handlers := httpserver.Handlers{
		RegisterUser:         command.NewRegisterUserHandler(userRepo, tokenService, eventPublisher),
		VerifyEmail:          command.NewVerifyEmailHandler(userRepo, tokenService),
		Login:                command.NewLoginHandler(userRepo, tokenService),
		RefreshTokens:        command.NewRefreshTokensHandler(tokenService),
		Logout:               command.NewLogoutHandler(tokenService, eventPublisher),
		LogoutAll:            command.NewLogoutAllHandler(tokenService, eventPublisher),
		RequestPasswordReset: command.NewRequestPasswordResetHandler(userRepo, tokenService),
		ResetPassword:        command.NewResetPasswordHandler(userRepo, tokenService),
		CreateMarket:         command.NewCreateMarketHandler(marketRepo, responseCache, eventPublisher, logger),
		RecordReview: command.NewRecordReviewHandler(
			marketRepo,
			reviewRepo,
			scorer,
			leaderboardService,
			responseCache,
			eventPublisher,
			logger,
		),
		ListMarkets:        query.NewListMarketsHandler(marketRepo),
		GetLeaderboard:     query.NewGetLeaderboardHandler(leaderboardService),
		GetMarketSentiment: query.NewGetMarketSentimentHandler(reviewRepo),
	}

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:            cfg.Server.Host,
			Port:            cfg.Server.Port,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			CacheTTL:        cfg.Cache.ResponseTTL,
		},
		handlers,
		tokenService,
		responseCache,
		logger,
	)

	// Background leaderboard repair
	rebuildWorker := worker.NewRebuildWorker(leaderboardService, cfg.Leaderboard.RebuildInterval, logger)
	go rebuildWorker.Run(ctx)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("marketscout service started", zap.String("address", cfg.Server.Address()))

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()

		if err := server.Stop(context.Background()); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}

		logger.Info("marketscout service stopped gracefully")
		return nil
	}
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
	)

	return pool, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("connected to redis", zap.String("address", cfg.Address()))

	return client, nil
}

func connectNATS(cfg config.NATSConfig, logger *zap.Logger) (*natsclient.Conn, error) {
	conn, err := natsclient.Connect(cfg.URL,
		natsclient.MaxReconnects(cfg.MaxReconnects),
		natsclient.ReconnectWait(cfg.ReconnectWait),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	logger.Info("connected to nats", zap.String("url", cfg.URL))

	return conn, nil
}
