package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/backsoul/mathquiz/pkg/cache"
	"github.com/backsoul/mathquiz/pkg/config"
	"github.com/backsoul/mathquiz/pkg/handlers"
	applogger "github.com/backsoul/mathquiz/pkg/logger"
	"github.com/backsoul/mathquiz/pkg/metrics"
	"github.com/backsoul/mathquiz/pkg/redis"
	"github.com/backsoul/mathquiz/pkg/services"
	"github.com/backsoul/mathquiz/pkg/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := applogger.New(cfg.Env, cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("🚀 Iniciando servidor Love Maths", zap.String("env", cfg.Env))

	store, closeStore, err := initStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("❌ Error inicializando almacenamiento", zap.Error(err))
	}
	defer closeStore()

	metrics.Init()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	limiter := handlers.NewSessionLimiter(cfg.Limit.RPS, cfg.Limit.Burst)
	go limiter.Cleanup(ctx, time.Minute, cfg.Session.TTL)

	sessionService := services.NewSessionService(store, cfg.Session.TTL, nil, logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, hub, limiter, logger)
	router := handlers.NewRouter(sessionHandler, logger)

	server := &fasthttp.Server{
		Handler:      router.Handler(),
		Name:         cfg.Server.Name,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		logger.Info("🔄 Deteniendo servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("Error deteniendo el servidor", zap.Error(err))
		}
	}()

	logger.Info("🎮 Servidor iniciado",
		zap.String("addr", cfg.Server.Addr),
		zap.String("store", cfg.Store.Driver),
	)
	logger.Info("📱 Juego: http://localhost" + cfg.Server.Addr)
	logger.Info("🔧 API Health: http://localhost" + cfg.Server.Addr + "/api/health")
	logger.Info("📊 Métricas: http://localhost" + cfg.Server.Addr + "/metrics")

	if err := server.ListenAndServe(cfg.Server.Addr); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Error al iniciar el servidor", zap.Error(err))
	}

	logger.Info("👋 Servidor detenido")
}

func initStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.SessionStore, func(), error) {
	if cfg.Store.Driver == "memory" {
		logger.Info("🧠 Sesiones en memoria")

		store := cache.NewCache()
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if removed := store.Sweep(); removed > 0 {
						logger.Debug("🧹 Sesiones caducadas eliminadas", zap.Int("count", removed))
					}
				}
			}
		}()
		return store, func() {}, nil
	}

	logger.Info("🔌 Conectando a Redis...", zap.String("addr", cfg.Redis.Addr))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := redis.NewRedisClient(pingCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		return nil, nil, err
	}

	return client, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Error cerrando Redis", zap.Error(err))
		}
	}, nil
}
