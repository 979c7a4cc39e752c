package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/drink-helper/internal/api"
	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/bot"
	"github.com/vladimiradmaev/drink-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/drink-helper/internal/bot/state"
	"github.com/vladimiradmaev/drink-helper/internal/cache"
	"github.com/vladimiradmaev/drink-helper/internal/common/clock"
	"github.com/vladimiradmaev/drink-helper/internal/config"
	"github.com/vladimiradmaev/drink-helper/internal/database"
	"github.com/vladimiradmaev/drink-helper/internal/interfaces"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"github.com/vladimiradmaev/drink-helper/internal/repository"
	"github.com/vladimiradmaev/drink-helper/internal/services"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init()
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		_ = logger.Init()
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	logger.Info("Starting Drink Helper...")
	if envErr != nil {
		logger.Debug("No .env file loaded", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connection established and migrations completed")

	systemClock := &clock.DefaultClock{}

	var (
		cacheStore   cache.Store
		stateManager state.StateManager
	)
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
		})
		defer redisClient.Close()

		redisStore, err := cache.NewRedisStore(&cache.RedisConfig{RedisClient: redisClient})
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", "error", err)
		}
		redisState, err := state.NewRedisManager(redisClient)
		if err != nil {
			logger.Fatal("Failed to initialize Redis state manager", "error", err)
		}
		cacheStore, stateManager = redisStore, redisState
		logger.Info("Using Redis for cache and bot state", "addr", cfg.Redis.Addr())
	} else {
		cacheStore, stateManager = cache.NewMemoryStore(systemClock), state.NewManager()
		logger.Info("Redis not configured, using in-memory cache and bot state")
	}
	queryCache := cache.New(cache.Config{Store: cacheStore, TTL: cfg.CacheTTL})

	aiService, err := services.NewAIService(ctx, cfg.AI)
	if err != nil {
		logger.Fatal("Failed to initialize AI service", "error", err)
	}
	defer aiService.Close()

	repos := repository.NewRepositories(db)
	statsService := services.NewStatsService(repos.DrinkLogs, queryCache, systemClock)
	svcs := &interfaces.Services{
		Users:         services.NewUserService(repos.Users, queryCache),
		DrinkLogs:     services.NewDrinkLogService(repos.DrinkLogs, queryCache),
		Goals:         services.NewGoalService(repos.Goals, repos.DrinkLogs, queryCache, systemClock),
		Stats:         statsService,
		Consultations: services.NewConsultationService(repos.Consultations, repos.Users, statsService, aiService, queryCache),
	}
	logger.Info("Services initialized successfully")

	var wg sync.WaitGroup

	if cfg.TelegramToken != "" {
		telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{
			UserService:         svcs.Users,
			DrinkLogService:     svcs.DrinkLogs,
			GoalService:         svcs.Goals,
			StatsService:        svcs.Stats,
			ConsultationService: svcs.Consultations,
			Clock:               systemClock,
		}, stateManager)
		if err != nil {
			logger.Fatal("Failed to create bot", "error", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := telegramBot.Start(ctx); err != nil {
				logger.Error("Bot stopped with error", "error", err)
				stop()
			}
		}()
	}

	if cfg.HTTP.Addr != "" {
		tokens, err := auth.NewTokenIssuer(&auth.TokenIssuerConfig{
			Secret: cfg.HTTP.JWTSecret,
			TTL:    cfg.HTTP.TokenTTL,
			Clock:  systemClock,
		})
		if err != nil {
			logger.Fatal("Failed to create token issuer", "error", err)
		}
		server, err := api.NewServer(api.Config{
			Addr:         cfg.HTTP.Addr,
			Services:     svcs,
			Tokens:       tokens,
			SignInSecret: cfg.HTTP.SignInSecret,
		})
		if err != nil {
			logger.Fatal("Failed to create API server", "error", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("API server listening", "addr", cfg.HTTP.Addr)
			if err := server.Start(ctx); err != nil {
				logger.Error("API server stopped with error", "error", err)
				stop()
			}
		}()
	}

	logger.Info("Drink Helper is running. Press Ctrl+C to stop.")
	wg.Wait()
	logger.Info("Drink Helper stopped")
}
