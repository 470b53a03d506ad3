package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"screenspeak/database"
	"screenspeak/internal/cache"
	"screenspeak/internal/config"
	"screenspeak/internal/http-api/handler"
	"screenspeak/internal/http-api/middleware"
	"screenspeak/internal/http-api/repository"
	"screenspeak/internal/http-api/router"
	"screenspeak/internal/http-api/service"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Setup structured logging
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.ConnectGorm(startCtx, cfg, logger)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	searchDB, err := database.ConnectSearch(startCtx, cfg)
	if err != nil {
		log.Fatalf("search database: %v", err)
	}
	defer searchDB.Close()

	// The cache is optional; without Redis every rating is read from Postgres.
	var redisClient *redis.Client
	if cfg.CacheEnabled() {
		redisClient, err = cache.NewRedisClient(startCtx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis unavailable, rating cache disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	ratingCache := cache.NewRatingCache(redisClient, cfg.CacheExpiry())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	searchRepo := repository.NewSearchRepository(searchDB)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	movieService := service.NewMovieService(movieRepo, reviewRepo, favoriteRepo, ratingCache)
	reviewService := service.NewReviewService(reviewRepo, movieRepo, hashtagRepo, ratingCache)
	voteService := service.NewVoteService(reactionRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, movieRepo)
	searchService := service.NewSearchService(searchRepo)
	dashboardService := service.NewDashboardService(movieRepo, hashtagRepo, movieService)
	accountService := service.NewAccountService(userRepo, reviewRepo, ratingCache)

	limiter := middleware.NewUserRateLimiter(cfg.VoteRateLimit, cfg.VoteRateBurst)

	r := router.New(cfg, authService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Movie:   handler.NewMovieHandler(movieService, reviewService, favoriteService),
		Review:  handler.NewReviewHandler(reviewService, voteService),
		Browse:  handler.NewBrowseHandler(dashboardService, searchService),
		Account: handler.NewAccountHandler(accountService, reviewService, favoriteService),
	}, limiter, sqlDB.Ping)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepLimiter(ctx, limiter)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", srv.Addr, "env", cfg.GoEnv, "cache", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
		os.Exit(1)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return
	}
	logger.Info("server_stopped_gracefully")
}

func sweepLimiter(ctx context.Context, limiter *middleware.UserRateLimiter) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(); n > 0 {
				slog.Debug("rate limiter swept", "users", n)
			}
		}
	}
}
