package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
)

const uniqueViolation = "23505"

const selectUser = `SELECT id, email, name, bio, password_hash, points, last_check_in, jackpot_won, winner_no, created_at FROM users`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Bio, &user.PasswordHash,
		&user.Points, &user.LastCheckIn, &user.JackpotWon, &user.WinnerNumber, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns nil without an error when no user has the email.
func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, selectUser+" WHERE email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, selectUser+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return user, nil
}

// GetForUpdate locks the user row until the surrounding transaction ends.
func (repo *Repository) GetForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, selectUser+" WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		zap.L().Error("can't lock user", zap.Int64("user_id", id), zap.Error(err))
		return nil, pg.Classify(err)
	}
	return user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, points, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash).Scan(&user.ID, &user.Points, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserAlreadyExists
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return user, nil
}

// SetLastCheckIn stores day as the last check-in date unless the user already
// checked in on that day or later.
func (repo *Repository) SetLastCheckIn(ctx context.Context, id int64, day time.Time) error {
	query := `
		UPDATE users SET last_check_in = $1
		WHERE id = $2 AND (last_check_in IS NULL OR last_check_in < $1)
	`
	tag, err := repo.db.Exec(ctx, query, day, id)
	if err != nil {
		zap.L().Error("can't update last check-in", zap.Int64("user_id", id), zap.Error(err))
		return pg.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyCheckedIn
	}
	return nil
}
