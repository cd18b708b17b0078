package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lalith-99/issuechat/internal/api"
	"github.com/lalith-99/issuechat/internal/cache"
	"github.com/lalith-99/issuechat/internal/config"
	"github.com/lalith-99/issuechat/internal/db"
	"github.com/lalith-99/issuechat/internal/observ"
	"github.com/lalith-99/issuechat/internal/repository"
	"github.com/lalith-99/issuechat/internal/repository/memory"
	"github.com/lalith-99/issuechat/internal/repository/postgres"
	"github.com/lalith-99/issuechat/internal/service"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type stores struct {
	channels repository.ChannelRepository
	rooms    repository.RoomRepository
	messages repository.MessageRepository
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Config and logger
	// ---------------------------------------------------------------
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Signal-aware root context: cancelled on SIGINT/SIGTERM, which starts
	// the graceful shutdown below.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]api.Checker{}

	// ---------------------------------------------------------------
	// 2. Stores. DATABASE_URL=memory runs without Postgres (local dev,
	// demos); the data is gone on restart.
	// ---------------------------------------------------------------
	var st stores
	if cfg.UseMemoryStore() {
		logger.Warn("using in-memory store, data will not survive a restart")
		mem := memory.New()
		st = stores{
			channels: memory.NewChannelStore(mem),
			rooms:    memory.NewRoomStore(mem),
			messages: memory.NewMessageStore(mem),
		}
	} else {
		database, err := db.New(ctx, cfg.DatabaseURL, db.PoolOptions{
			MaxConns: int32(cfg.DBMaxConns),
			MinConns: int32(cfg.DBMinConns),
		}, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer database.Close()
		checks["postgres"] = database

		pool := database.Pool()
		st = stores{
			channels: postgres.NewChannelStore(pool),
			rooms:    postgres.NewRoomStore(pool),
			messages: postgres.NewMessageStore(pool),
		}
	}

	// ---------------------------------------------------------------
	// 3. Poll watermark. Optional: without Redis every poll hits the store.
	// ---------------------------------------------------------------
	var marks service.Watermark = cache.Nop{}
	if cfg.RedisURL != "" {
		wm, err := cache.New(ctx, cfg.RedisURL, cfg.WatermarkTTL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer wm.Close()
		checks["redis"] = wm
		marks = wm
	}

	// ---------------------------------------------------------------
	// 4. Services and handlers
	// ---------------------------------------------------------------
	messageSvc := service.NewMessageService(st.channels, st.messages, marks, cfg.Location(), logger)
	channelSvc := service.NewChannelService(st.channels, st.rooms)

	router := api.NewRouter(logger, api.Routes(api.Handlers{
		Messages:  api.NewMessageHandler(messageSvc, logger),
		Channels:  api.NewChannelHandler(channelSvc, logger),
		Health:    api.NewHealthHandler(checks, logger),
		JWTSecret: cfg.JWTSecret,
	}))

	// Browser clients poll from the web frontend's origin.
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	// ---------------------------------------------------------------
	// 5. Serve until signalled
	// ---------------------------------------------------------------
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting issuechat",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.Bool("memory_store", cfg.UseMemoryStore()),
			zap.Bool("watermark", cfg.RedisURL != ""),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
