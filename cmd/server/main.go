package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/a7delivery/backend/internal/application/identity"
	orderapp "github.com/a7delivery/backend/internal/application/order"
	settingsapp "github.com/a7delivery/backend/internal/application/settings"
	"github.com/a7delivery/backend/internal/infrastructure/auth"
	"github.com/a7delivery/backend/internal/infrastructure/config"
	"github.com/a7delivery/backend/internal/infrastructure/logger"
	"github.com/a7delivery/backend/internal/infrastructure/persistence"
	"github.com/a7delivery/backend/internal/infrastructure/shopify"
	"github.com/a7delivery/backend/internal/infrastructure/zrexpress"
	"github.com/a7delivery/backend/internal/interfaces/http/handler"
	"github.com/a7delivery/backend/internal/interfaces/http/middleware"
	"github.com/a7delivery/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting A7delivery backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: redis when configured, in-process fallback otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(
			fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			cfg.Redis.Password,
			cfg.Redis.DB,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Using in-memory token blacklist; tokens survive neither restarts nor multiple replicas")
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Upstream adapters
	sourcePlatform := shopify.NewAdapter(shopify.Config{
		APIVersion:   cfg.Upstream.SourceAPIVersion,
		FetchTimeout: cfg.Upstream.SyncTimeout,
		ProbeTimeout: cfg.Upstream.ProbeTimeout,
	})
	deliveryGateway := zrexpress.NewAdapter(zrexpress.Config{
		BaseURL:         cfg.Upstream.DeliveryBaseURL,
		DispatchTimeout: cfg.Upstream.DispatchTimeout,
		ProbeTimeout:    cfg.Upstream.ProbeTimeout,
	})

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, orderRepo, settingsRepo, blacklist, log)
	orderService := orderapp.NewOrderService(orderRepo)
	syncService := orderapp.NewSyncService(orderRepo, settingsRepo, sourcePlatform, log)
	dispatchService := orderapp.NewDispatchService(orderRepo, settingsRepo, deliveryGateway, log)
	settingsService := settingsapp.NewSettingsService(settingsRepo, sourcePlatform, deliveryGateway, log)

	// Ensure the admin account exists before serving traffic
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.BootstrapAdmin(bootstrapCtx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		cancelBootstrap()
		log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}
	cancelBootstrap()

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      []string{"/health", "/api/v1/auth/login"},
		Logger:         log,
	}))

	systemHandler := handler.NewSystemHandler(db, version)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine)
	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewOrderHandler(orderService, syncService, dispatchService)).
		Register(handler.NewSettingsHandler(settingsService)).
		Register(handler.NewUserHandler(userService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
