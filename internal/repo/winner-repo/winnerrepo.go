package winnerrepo

import (
	"context"
	"errors"
	"fmt"

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

// Assign gives the user the next winner number. The sequence row lock serialises
// concurrent winners, and a user that already holds a number is rejected with
// ErrAlreadyWinner, which also rolls the sequence back.
func (r *Repository) Assign(ctx context.Context, userID int64) (int64, error) {
	var number int64
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, `UPDATE winner_sequence SET last_no = last_no + 1 WHERE id = 1 RETURNING last_no`).Scan(&number)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: winner sequence row is missing", domain.ErrConfiguration)
			}
			zap.L().Error("failed to advance winner sequence", zap.Error(err))
			return pg.Classify(err)
		}

		query := `
			UPDATE users SET jackpot_won = TRUE, winner_no = $1
			WHERE id = $2 AND winner_no IS NULL
		`
		tag, err := r.db.Exec(ctx, query, number, userID)
		if err != nil {
			zap.L().Error("failed to record winner", zap.Int64("user_id", userID), zap.Error(err))
			return pg.Classify(err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrAlreadyWinner
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return number, nil
}

// List returns winners in ascending winner number order.
func (r *Repository) List(ctx context.Context, limit int) ([]domain.Winner, error) {
	query := `
		SELECT winner_no, id, name
		FROM users
		WHERE winner_no IS NOT NULL
		ORDER BY winner_no
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to list winners", zap.Error(err))
		return nil, pg.Classify(err)
	}
	defer rows.Close()

	winners := make([]domain.Winner, 0)
	for rows.Next() {
		var w domain.Winner
		if err := rows.Scan(&w.WinnerNumber, &w.UserID, &w.Name); err != nil {
			zap.L().Error("failed to scan winner row", zap.Error(err))
			return nil, err
		}
		winners = append(winners, w)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.Classify(err)
	}
	return winners, nil
}
