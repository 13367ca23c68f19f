package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/database"
	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/logging"
	"github.com/iliyamo/room-booking/internal/middleware"
	"github.com/iliyamo/room-booking/internal/queue"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/router"
	"github.com/iliyamo/room-booking/internal/service"
	"github.com/iliyamo/room-booking/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger, err := logging.New(cfg.IsProd())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	rooms, err := config.LoadRooms(cfg.RoomsFile)
	if err != nil {
		return err
	}

	// Redis is optional unless it is the storage driver.
	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		if cfg.StoreDriver == config.DriverRedis {
			return fmt.Errorf("redis: %w", err)
		}
		logger.Info("redis unavailable, cache and rate limit disabled", zap.Error(err))
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}

	blobs, closeBlobs, err := openBlobStore(ctx, cfg, rdb)
	if err != nil {
		return err
	}
	defer closeBlobs()

	st, err := store.Open(ctx, repository.NewBookingBlob(blobs, cfg.StoreKey),
		store.WithRooms(rooms),
		store.WithStrictLoad(cfg.StrictLoad),
		store.WithLogger(logger.Named("store")),
	)
	if err != nil {
		return err
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.Events.Enabled {
		pub = &service.AMQPPublisher{URL: cfg.Events.URL, Queue: cfg.Events.Queue, Log: logger.Named("events")}
		if cfg.Events.Consume {
			consumer := &queue.Consumer{URL: cfg.Events.URL, Queue: cfg.Events.Queue, LogDir: cfg.Events.LogDir, Log: logger.Named("consumer")}
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("booking consumer exited", zap.Error(err))
				}
			}()
		}
	}
	svc := service.NewBookings(st, pub, cfg.Grid, logger.Named("bookings"))

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger.Named("http")))
	router.RegisterRoutes(e)
	router.RegisterBookings(e, handler.NewBookingHandler(svc, logger.Named("handler")),
		middleware.NewRedisCache(cfg.Cache, rdb, st.Revision),
		middleware.NewTokenBucket(cfg.Limit, rdb),
	)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", cfg.StoreDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openBlobStore selects the persistence backend named by STORE_DRIVER.
func openBlobStore(ctx context.Context, cfg config.Config, rdb *redis.Client) (repository.BlobStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return repository.NewMemoryBlobStore(), func() {}, nil
	case config.DriverRedis:
		return repository.NewRedisBlobStore(rdb, cfg.Redis.Prefix), func() {}, nil
	case config.DriverMySQL:
		db, err := database.Open(ctx, database.Options{
			User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("mysql: %w", err)
		}
		blobs := repository.NewMySQLBlobStore(db)
		if err := blobs.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("mysql schema: %w", err)
		}
		return blobs, func() { _ = db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", repository.ErrNoBackend, cfg.StoreDriver)
}
