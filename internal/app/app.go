package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/audit"
	"github.com/GlebRadaev/scratchmart/internal/config"
	"github.com/GlebRadaev/scratchmart/internal/handlers"
	"github.com/GlebRadaev/scratchmart/internal/pg"
	"github.com/GlebRadaev/scratchmart/internal/prize"
	"github.com/GlebRadaev/scratchmart/internal/repo"
	"github.com/GlebRadaev/scratchmart/internal/service"
	"github.com/GlebRadaev/scratchmart/pkg/auth"
	"github.com/GlebRadaev/scratchmart/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	pool  *pgxpool.Pool
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	audit *audit.Service

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
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}

	if err = logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	table, err := prize.LoadFile(cfg.PrizeTablePath, cfg.JackpotThreshold)
	if err != nil {
		zap.L().Error("prize table rejected", zap.String("path", cfg.PrizeTablePath), zap.Error(err))
		return fmt.Errorf("can't load prize table: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.pool = pool
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool, pg.WithRetries(cfg.TxMaxRetries))
	conn := pg.New(pool)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(cfg, service.Deps{
		Repos:       a.repo,
		TXManager:   txManager,
		PrizeTable:  table,
		HashService: auth.NewHashService(0),
		JWTService:  jwtService,
	})
	a.api = handlers.New(a.srv, jwtService)
	a.audit = audit.New(cfg, a.repo.LedgerRepo)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	if err = a.audit.Start(ctx); err != nil {
		return fmt.Errorf("can't start ledger audit: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully",
		zap.Int("prize_tiers", len(table.Tiers())),
		zap.Int64("scratch_cost", cfg.ScratchCost),
		zap.String("timezone", cfg.Timezone))
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	cfgpool.MaxConns = cfg.DBMaxConns
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
		if a.pool != nil {
			a.pool.Close()
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server", zap.String("address", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
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
