package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b-it-bots/datahub/internal/adapter/handler"
	"github.com/b-it-bots/datahub/internal/adapter/storage"
	"github.com/b-it-bots/datahub/internal/port"
)

func serveCmd() *cobra.Command {
	var (
		addr        string
		seedPath    string
		storageKind string
		redisAddr   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the data hub server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, seedPath, storageKind, redisAddr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":5000", "listen address")
	cmd.Flags().StringVar(&seedPath, "seed", "config/test_data.json", "seed JSON file")
	cmd.Flags().StringVar(&storageKind, "storage", "memory", "inventory backend: memory or redis")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address for --storage redis")
	return cmd
}

func runServe(addr, seedPath, storageKind, redisAddr string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	seed, err := storage.LoadSeed(seedPath)
	if err != nil {
		return err
	}

	// Orders and robot telemetry always live in process memory; only the
	// inventory backend is selectable.
	mem := storage.NewMemoryAdapter()
	mem.ApplySeed(seed)

	var store port.InventoryStore = mem
	if storageKind == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()

		redisStore := storage.NewRedisAdapter(rdb)
		if err := redisStore.ApplySeed(ctx, seed); err != nil {
			return err
		}
		store = redisStore
		logger.Info("using redis inventory backend", zap.String("addr", redisAddr))
	} else if storageKind != "memory" {
		return fmt.Errorf("unknown storage backend: %q", storageKind)
	}

	if seed.Items == nil {
		logger.Warn("seed file has no inventoryItems key, inventory requests will fail",
			zap.String("seed", seedPath))
	}

	h := handler.NewHTTPHandler(store, mem, mem, logger)
	server := &http.Server{
		Addr:    addr,
		Handler: handler.NewRouter(h, logger),
	}

	go func() {
		logger.Info("hub listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
