package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
)

const (
	updatePoints  = "UPDATE users SET points = points + $1 WHERE id = $2 RETURNING points"
	insertHistory = "INSERT INTO points_history (user_id, delta, reason) VALUES ($1, $2, $3)"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	t.Cleanup(mockDB.Close)

	return repo, mockDB, mockTxManager
}

func TestRepository_ApplyDelta(t *testing.T) {
	repo, mock, tx := NewMock(t)

	tests := []struct {
		name      string
		amount    int64
		reason    string
		mockSetup func()
		expectErr error
		result    int64
	}{
		{
			name:   "Debit with history entry",
			amount: -10,
			reason: domain.ReasonScratchCost,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(updatePoints)).
						WithArgs(int64(-10), int64(1)).
						WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(int64(0)))
					mock.ExpectExec(regexp.QuoteMeta(insertHistory)).
						WithArgs(int64(1), int64(-10), domain.ReasonScratchCost).
						WillReturnResult(pgxmock.NewResult("INSERT", 1))
					return fn(ctx)
				})
			},
			result: 0,
		},
		{
			name:   "Credit with history entry",
			amount: 10,
			reason: domain.ReasonDailyCheckIn,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(updatePoints)).
						WithArgs(int64(10), int64(1)).
						WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(int64(25)))
					mock.ExpectExec(regexp.QuoteMeta(insertHistory)).
						WithArgs(int64(1), int64(10), domain.ReasonDailyCheckIn).
						WillReturnResult(pgxmock.NewResult("INSERT", 1))
					return fn(ctx)
				})
			},
			result: 25,
		},
		{
			name:   "Unknown user",
			amount: 10,
			reason: domain.ReasonDailyCheckIn,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(updatePoints)).
						WithArgs(int64(10), int64(1)).
						WillReturnError(pgx.ErrNoRows)
					return fn(ctx)
				})
			},
			expectErr: domain.ErrUserNotFound,
		},
		{
			name:   "History insert fails",
			amount: 5,
			reason: "prize: half back",
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(updatePoints)).
						WithArgs(int64(5), int64(1)).
						WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(int64(5)))
					mock.ExpectExec(regexp.QuoteMeta(insertHistory)).
						WithArgs(int64(1), int64(5), "prize: half back").
						WillReturnError(&pgconn.PgError{Code: "53100"})
					return fn(ctx)
				})
			},
			expectErr: domain.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.ApplyDelta(context.Background(), 1, tt.amount, tt.reason)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, balance)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetBalance(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("SELECT points FROM users WHERE id = $1")

	mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(int64(42)))
	balance, err := repo.GetBalance(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), balance)

	mock.ExpectQuery(query).WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	_, err = repo.GetBalance(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_History(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta("SELECT id, user_id, delta, reason, created_at FROM points_history WHERE user_id = $1 ORDER BY id DESC LIMIT $2")
	columns := []string{"id", "user_id", "delta", "reason", "created_at"}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.HistoryEntry
	}{
		{
			name: "Entries newest first",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow(int64(2), int64(1), int64(5), "prize: half back", now).
					AddRow(int64(1), int64(1), int64(-10), "scratch cost", now)
				mock.ExpectQuery(query).WithArgs(int64(1), 20).WillReturnRows(rows)
			},
			result: []domain.HistoryEntry{
				{ID: 2, UserID: 1, Delta: 5, Reason: "prize: half back", CreatedAt: now},
				{ID: 1, UserID: 1, Delta: -10, Reason: "scratch cost", CreatedAt: now},
			},
		},
		{
			name: "No entries",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1), 20).WillReturnRows(pgxmock.NewRows(columns))
			},
			result: []domain.HistoryEntry{},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1), 20).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
		{
			name: "Scan row error",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).AddRow(int64(1), int64(1), "not a number", "scratch cost", now)
				mock.ExpectQuery(query).WithArgs(int64(1), 20).WillReturnRows(rows)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.History(context.Background(), 1, 20)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListUserIDs(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("SELECT id FROM users WHERE id > $1 ORDER BY id LIMIT $2")

	mock.ExpectQuery(query).WithArgs(int64(10), 3).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)).AddRow(int64(12)).AddRow(int64(15)))

	ids, err := repo.ListUserIDs(context.Background(), 10, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int64{11, 12, 15}, ids)

	mock.ExpectQuery(query).WithArgs(int64(15), 3).WillReturnError(&pgconn.PgError{Code: "08006"})
	_, err = repo.ListUserIDs(context.Background(), 15, 3)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reconcile(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("SELECT u.points, COALESCE(SUM(h.delta), 0)::BIGINT FROM users u LEFT JOIN points_history h ON h.user_id = u.id WHERE u.id = $1 GROUP BY u.id, u.points")

	tests := []struct {
		name       string
		mockSetup  func()
		expectErr  error
		consistent bool
	}{
		{
			name: "Balance matches history",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(4)).
					WillReturnRows(pgxmock.NewRows([]string{"points", "sum"}).AddRow(int64(30), int64(30)))
			},
			consistent: true,
		},
		{
			name: "Balance drifted",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(4)).
					WillReturnRows(pgxmock.NewRows([]string{"points", "sum"}).AddRow(int64(40), int64(30)))
			},
			consistent: false,
		},
		{
			name: "User deleted",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(4)).WillReturnError(pgx.ErrNoRows)
			},
			expectErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rec, err := repo.Reconcile(context.Background(), 4)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(4), rec.UserID)
				assert.Equal(t, tt.consistent, rec.Consistent())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
