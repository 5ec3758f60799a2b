package counterrepo

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_Increment(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("UPDATE draw_counter SET value = value + 1 WHERE id = 1 RETURNING value")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
		result    int64
	}{
		{
			name: "Returns post-increment value",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(int64(100)))
			},
			result: 100,
		},
		{
			name: "Missing counter row",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnError(pgx.ErrNoRows)
			},
			expectErr: domain.ErrConfiguration,
		},
		{
			name: "Deadlock",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnError(&pgconn.PgError{Code: "40P01"})
			},
			expectErr: domain.ErrConcurrencyConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			n, err := repo.Increment(context.Background())
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, n)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Current(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT value FROM draw_counter WHERE id = 1")

	mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(int64(97)))
	n, err := repo.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(97), n)

	mock.ExpectQuery(query).WillReturnError(pgx.ErrNoRows)
	_, err = repo.Current(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	assert.NoError(t, mock.ExpectationsWereMet())
}
