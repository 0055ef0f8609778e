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

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"resumeBuilder/internal/api"
	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/completion"
	"resumeBuilder/internal/config"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/editor"
	"resumeBuilder/internal/generator"
	"resumeBuilder/internal/notify"
	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/session"
	"resumeBuilder/internal/storage"
)

// 生成请求的 pending 标记在上游超时后自动过期。
const pendingMargin = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	var (
		store   editor.Store
		tracker generator.Tracker
	)
	switch cfg.Session.Backend {
	case config.SessionBackendMemory:
		memStore := session.NewMemoryStore(cfg.Session.TTL)
		memTracker := generator.NewMemoryTracker()
		go sweepSessions(ctx, memStore, memTracker, logger)
		store = memStore
		tracker = memTracker
	default:
		store = session.NewRedisStore(redisClient, cfg.Session.TTL)
		tracker = generator.NewRedisTracker(redisClient, cfg.Completion.Timeout+pendingMargin, cfg.Session.TTL)
	}
	logger.Info("session store ready", slog.String("backend", cfg.Session.Backend))

	// 配置了 COMPLETION_PROXY_URL 时走独立代理，否则在进程内调用上游并挂载 /v1/generate。
	var (
		completer     generator.Completer
		completionSvc *completion.Service
	)
	if cfg.Completion.ProxyURL != "" {
		completer = generator.NewHTTPCompleter(cfg.Completion.ProxyURL, cfg.Completion.Timeout)
		logger.Info("using completion proxy", slog.String("url", cfg.Completion.ProxyURL))
	} else {
		svc, err := completion.NewServiceFromConfig(ctx, cfg.Completion, logger)
		if err != nil {
			log.Fatalf("init completion service: %v", err)
		}
		completer, completionSvc = svc, svc
		logger.Info("using in-process completion", slog.String("provider", cfg.Completion.Provider))
	}

	gen := generator.New(completer, tracker, notify.NewRedisPublisher(redisClient), logger)
	editorService := editor.NewService(store, resume.UUIDGenerator{}, gen, logger)

	authService, err := auth.NewAuthService(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	db, err := database.InitDatabase(cfg.Database, gormlogger.Warn)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	logger.Info("database ready",
		slog.String("host", cfg.Database.Host),
		slog.String("db", cfg.Database.Name),
	)

	storageClient, err := storage.NewClient(ctx, cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("close asynq client failed", slog.Any("error", err))
		}
	}()

	router := api.NewRouter(logger, cfg.API.AllowedOrigins)
	api.RegisterRoutes(router, api.Deps{
		Editor:         editorService,
		Auth:           authService,
		Snapshots:      database.NewSnapshotRepository(db),
		Exports:        database.NewExportRepository(db),
		Queue:          asynqClient,
		Storage:        storageClient,
		ExportMaxRetry: cfg.Worker.MaxRetry,
		Redis:          redisClient,
		Completion:     completionSvc,
		AllowedOrigins: cfg.API.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("api server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("api server stopped")
}

// sweepSessions 定期清理过期会话与过期的生成结果。
func sweepSessions(ctx context.Context, store *session.MemoryStore, tracker *generator.MemoryTracker, log *slog.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				log.Debug("expired sessions removed", slog.Int("count", n))
			}
			if n := tracker.Sweep(); n > 0 {
				log.Debug("expired generation states removed", slog.Int("count", n))
			}
		}
	}
}
