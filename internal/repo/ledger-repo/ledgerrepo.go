package ledgerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// ApplyDelta changes the balance by amount and appends the matching history
// entry in one transaction. Sufficiency is the caller's concern.
func (r *Repository) ApplyDelta(ctx context.Context, userID, amount int64, reason string) (int64, error) {
	var balance int64
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, `UPDATE users SET points = points + $1 WHERE id = $2 RETURNING points`, amount, userID).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			zap.L().Error("failed to update balance", zap.Int64("user_id", userID), zap.Error(err))
			return pg.Classify(err)
		}

		query := `
			INSERT INTO points_history (user_id, delta, reason)
			VALUES ($1, $2, $3)
		`
		if _, err = r.db.Exec(ctx, query, userID, amount, reason); err != nil {
			zap.L().Error("failed to append history", zap.Int64("user_id", userID), zap.Error(err))
			return pg.Classify(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *Repository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT points FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		zap.L().Error("failed to get balance", zap.Error(err))
		return 0, pg.Classify(err)
	}
	return balance, nil
}

// History returns the latest limit entries, newest first.
func (r *Repository) History(ctx context.Context, userID int64, limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, user_id, delta, reason, created_at
		FROM points_history
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to get history", zap.Error(err))
		return nil, pg.Classify(err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Delta, &entry.Reason, &entry.CreatedAt); err != nil {
			zap.L().Error("failed to scan history row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.Classify(err)
	}
	return entries, nil
}

func (r *Repository) ListUserIDs(ctx context.Context, afterID int64, limit int) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM users WHERE id > $1 ORDER BY id LIMIT $2`, afterID, limit)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, pg.Classify(err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.Classify(err)
	}
	return ids, nil
}

// Reconcile reads the balance and the history sum in one statement so both
// come from the same snapshot.
func (r *Repository) Reconcile(ctx context.Context, userID int64) (domain.Reconciliation, error) {
	query := `
		SELECT u.points, COALESCE(SUM(h.delta), 0)::BIGINT
		FROM users u LEFT JOIN points_history h ON h.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id, u.points
	`
	rec := domain.Reconciliation{UserID: userID}
	err := r.db.QueryRow(ctx, query, userID).Scan(&rec.Balance, &rec.HistorySum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rec, domain.ErrUserNotFound
		}
		zap.L().Error("failed to reconcile", zap.Int64("user_id", userID), zap.Error(err))
		return rec, pg.Classify(err)
	}
	return rec, nil
}
