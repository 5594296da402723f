package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pot/sparkhub/internal/cache"
	"github.com/pot/sparkhub/internal/config"
	"github.com/pot/sparkhub/internal/filestore"
	"github.com/pot/sparkhub/internal/handlers"
	"github.com/pot/sparkhub/internal/notify"
	"github.com/pot/sparkhub/internal/pg"
	"github.com/pot/sparkhub/internal/repo"
	"github.com/pot/sparkhub/internal/scheduler"
	"github.com/pot/sparkhub/internal/service"
	"github.com/pot/sparkhub/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	cache *cache.Redis
	sched *scheduler.Manager

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, cfg.RedisPassword)
	if err != nil {
		zap.L().Error("redis connect failed: ", zap.Error(err))
		return fmt.Errorf("can't connect to redis: %w", err)
	}

	fileStore, err := filestore.NewS3(ctx, filestore.S3Options{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		zap.L().Error("s3 client init failed: ", zap.Error(err))
		return fmt.Errorf("can't init s3 client: %w", err)
	}

	conn := pg.New(pool)
	a.cfg = cfg
	a.cache = redisCache
	a.repo = repo.New(conn, txManager)
	notifier := notify.New(a.repo.Notifications)
	a.srv = service.New(a.repo, txManager, redisCache, notifier, fileStore, cfg.CacheTTL)
	a.api = handlers.New(a.srv)

	expiryJob := scheduler.NewExpiryJob(a.repo.Projects, redisCache, notifier, txManager)
	a.sched, err = scheduler.NewManager(expiryJob, cfg.SweepInterval)
	if err != nil {
		return fmt.Errorf("can't create scheduler: %w", err)
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	if err = a.startScheduler(ctx); err != nil {
		return fmt.Errorf("can't start scheduler: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startScheduler(ctx context.Context) error {
	if err := a.sched.Start(); err != nil {
		return err
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		a.sched.Stop()
		if err := a.cache.Close(); err != nil {
			zap.L().Error("can't close redis client", zap.Error(err))
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
