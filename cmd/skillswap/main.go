package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YusovID/skillswap-service/internal/config"
	"github.com/YusovID/skillswap-service/internal/repository"
	"github.com/YusovID/skillswap-service/internal/repository/memory"
	"github.com/YusovID/skillswap-service/internal/repository/postgres"
	"github.com/YusovID/skillswap-service/internal/repository/redis"
	"github.com/YusovID/skillswap-service/internal/session"
	"github.com/YusovID/skillswap-service/internal/store"
	myhttp "github.com/YusovID/skillswap-service/internal/transport/http"
	"github.com/YusovID/skillswap-service/pkg/logger/sl"
	"github.com/YusovID/skillswap-service/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting skillswap-service",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
	)

	kv, closeKV, err := openKeyValueStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeKV()

	ids, err := store.NewSnowflakeGenerator(cfg.Storage.NodeID)
	if err != nil {
		return fmt.Errorf("failed to init id generator: %v", err)
	}

	opts := []store.Option{
		store.WithIDGenerator(ids),
		store.WithKeyPrefix(cfg.Storage.KeyPrefix),
	}
	if !cfg.Storage.Seed {
		opts = append(opts, store.WithSeed(nil))
	}

	st, err := store.New(ctx, kv, log, opts...)
	if err != nil {
		return fmt.Errorf("failed to load state: %v", err)
	}

	sessions := session.NewManager(kv, st, log, cfg.Storage.KeyPrefix)

	srv := myhttp.NewServer(log, st, sessions)
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

// openKeyValueStore connects the backend selected by storage.driver and
// returns a func that releases it.
func openKeyValueStore(cfg *config.Config, log *slog.Logger) (repository.KeyValueStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		rdb, err := redis.NewClient(cfg.Redis, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init redis: %v", err)
		}

		return redis.NewKVRepository(rdb, log), func() {
			if err := rdb.Close(); err != nil {
				log.Error("redis close failed", sl.Err(err))
			}
		}, nil

	case config.DriverPostgres:
		db, err := postgres.NewDB(cfg.Postgres, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init db: %v", err)
		}

		return postgres.NewKVRepository(db, log), func() {
			if err := db.Close(); err != nil {
				log.Error("db close failed", sl.Err(err))
			}
		}, nil

	default:
		log.Warn("using in-memory storage, state is lost on exit")

		return memory.NewKVRepository(), func() {}, nil
	}
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
