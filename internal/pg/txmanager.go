package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

//go:generate mockgen -source=txmanager.go -destination=mock_txmanager.go -package=pg

type TransactionalFn func(ctx context.Context) error

type TXManager interface {
	Begin(ctx context.Context, fn TransactionalFn) error
}

type Manager struct {
	pool       Pool
	opts       pgx.TxOptions
	maxRetries uint64
	baseDelay  time.Duration
}

type Option func(*Manager)

// WithRetries sets how many times a transaction failing with a concurrency conflict is replayed.
func WithRetries(n uint64) Option {
	return func(m *Manager) {
		m.maxRetries = n
	}
}

func WithBaseDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.baseDelay = d
	}
}

func NewTXManager(pool Pool, opts ...Option) *Manager {
	m := &Manager{
		pool:       pool,
		opts:       pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
		maxRetries: 3,
		baseDelay:  20 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin runs fn inside a transaction. A call made while a transaction is already
// carried by ctx joins it, so only the outermost call commits or retries.
func (m *Manager) Begin(ctx context.Context, fn TransactionalFn) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(m.maxRetries, retry.NewExponential(m.baseDelay))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := m.run(ctx, fn)
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			zap.L().Warn("transaction conflict, retrying", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
}

func (m *Manager) run(ctx context.Context, fn TransactionalFn) (err error) {
	tx, err := m.pool.BeginTx(ctx, m.opts)
	if err != nil {
		zap.L().Error("failed to begin transaction", zap.Error(err))
		return driverError(err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			zap.L().Error("failed to rollback transaction", zap.Error(rbErr))
		}
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err = fn(withTx(ctx, tx)); err != nil {
		return Classify(err)
	}

	done = true
	if err = tx.Commit(ctx); err != nil {
		zap.L().Error("failed to commit transaction", zap.Error(err))
		return driverError(err)
	}
	return nil
}
