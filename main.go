package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"notesmanager/config"
	"notesmanager/logging"
	"notesmanager/repository"
	"notesmanager/services"
	"notesmanager/usecase"
	"notesmanager/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type userStore interface {
	usecase.UserStore
	Ping(ctx context.Context) error
}

type storage struct {
	users userStore
	notes usecase.NoteStore
	close func(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	logger, err := logging.Init(os.Stdout, cfg.App.LogLevel, cfg.App.Pretty)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.App.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.Issuer)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(context.Background()); err != nil {
			logger.Warn("close storage", slog.Any("error", err))
		}
	}()

	rdb, err := openRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	router := setupRouter(routerDeps{
		cfg:    cfg,
		logger: logger,
		tokens: tokens,
		users:  store.users,
		store:  store.users,
		notes:  usecase.NewNotesService(store.notes),
		admin:  usecase.NewAdminService(store.users, store.notes),
		auth:   usecase.NewAuthService(store.users, tokens, cfg.Admin),
		redis:  rdb,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStorage(ctx context.Context, cfg config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		slog.Warn("using in-memory storage, data is lost on exit")
		mem := repository.NewMemoryStore()
		return &storage{
			users: mem.Users(),
			notes: mem.Notes(),
			close: func(context.Context) error { return nil },
		}, nil
	}

	client, err := utils.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Mongo.Database)
	if err := repository.SetupIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	slog.Info("connected to mongodb", slog.String("db", cfg.Mongo.Database))

	return &storage{
		users: repository.NewUserRepo(db),
		notes: repository.NewNotesRepo(db),
		close: client.Disconnect,
	}, nil
}

// openRedis returns nil when no URL is configured; the auth rate limiter
// is then a pass-through.
func openRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		slog.Info("REDIS_URL not set, rate limiting disabled")
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, rate limiter will fail open", slog.Any("error", err))
	}
	return rdb, nil
}
