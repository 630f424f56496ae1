package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	handlerHttp "github.com/Prakash9019/my-cricket-reg-app/internal/handler/http"
	redisclient "github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/cache"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/clock"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/config"
	database "github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/database"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/jwt"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/logger"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/metrics"
	passwordservice "github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/password_service"
	randomgenerator "github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/random_generator"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/repository/mongodb"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/store"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/uuidgen"
	"github.com/Prakash9019/my-cricket-reg-app/internal/infrastructure/validator"
	"github.com/Prakash9019/my-cricket-reg-app/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	appLogger := logger.NewSlogLogger(appConfig.LogLevel, appConfig.LogFormat)
	if err := appConfig.Validate(); err != nil {
		appLogger.Fatalf("invalid configuration: %v", err)
	}

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(appConfig.MongoURI, appConfig.MongoConnectTimeout)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	db := mongoClient.Client.Database(appConfig.MongoDBName)
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), appConfig.MongoConnectTimeout)
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		cancelIndex()
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}
	cancelIndex()

	// Dependency Injection: Repositories
	playerRepo := mongodb.NewMongoPlayerRepository(db.Collection(database.PlayersCollection))
	sequenceRepo := mongodb.NewSequenceRepository(db.Collection(database.CountersCollection))

	// Dependency Injection: Services
	appClock := clock.New()
	validator.RegisterCustomValidators(appClock)
	appValidator := validator.NewValidator(appClock)
	hasher := passwordservice.NewHasher(appConfig.BcryptCost)
	uuidGenerator := uuidgen.NewGenerator()
	randomGenerator := randomgenerator.NewRandomGenerator()
	jwtManager := jwt.NewJWTManager(appConfig.JWTSecret, appConfig.AccessTokenExpiry)
	jwtService := jwt.NewJWTService(jwtManager)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Dependency Injection: Usecases
	identifiers := usecase.NewIdentifierService(sequenceRepo, playerRepo, randomGenerator, appConfig)
	playerUsecase := usecase.NewPlayerUsecase(
		playerRepo, identifiers, hasher, uuidGenerator, appClock,
		jwtService, appValidator, appLogger, appMetrics,
	)

	// Optional Dependency Injection: Redis cache
	if appConfig.RedisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(context.Background(), appConfig.RedisURL)
		if err != nil {
			appLogger.Warnf("Redis unavailable, serving stats without cache: %v", err)
		} else {
			defer redisclient.Close(rdb)
			playerUsecase.SetStatsCache(store.NewStatsCacheStore(rdb, appConfig.StatsCacheTTL))
		}
	}

	// Setup API routes
	router := gin.New()
	router.Use(gin.Recovery())
	appRouter := handlerHttp.NewRouter(playerUsecase, jwtService, appClock.Now(), handlerHttp.RouterOptions{
		AllowedOrigins:     appConfig.CORSAllowedOrigins,
		RateLimitPerSecond: appConfig.RateLimitPerSecond,
		TrustProxyHeaders:  appConfig.TrustProxyHeaders,
		Logger:             appLogger.Slog(),
		RequestDuration:    appMetrics.HTTPDuration,
		MetricsGatherer:    registry,
	})
	appRouter.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Infof("Server running on port %s", appConfig.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		appLogger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	case <-ctx.Done():
		appLogger.Infof("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Errorf("shutdown error: %v", err)
		}
	}
	appLogger.Infof("server stopped")
}
