package counterrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
)

var errCounterMissing = fmt.Errorf("%w: draw counter row is missing", domain.ErrConfiguration)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Increment bumps the global draw counter and returns the post-increment value.
// The row stays locked until the surrounding transaction ends.
func (r *Repository) Increment(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `UPDATE draw_counter SET value = value + 1 WHERE id = 1 RETURNING value`).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errCounterMissing
		}
		zap.L().Error("failed to increment draw counter", zap.Error(err))
		return 0, pg.Classify(err)
	}
	return n, nil
}

func (r *Repository) Current(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT value FROM draw_counter WHERE id = 1`).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errCounterMissing
		}
		zap.L().Error("failed to read draw counter", zap.Error(err))
		return 0, pg.Classify(err)
	}
	return n, nil
}
