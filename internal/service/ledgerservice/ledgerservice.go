package ledgerservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type UserRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type LedgerRepo interface {
	History(ctx context.Context, userID int64, limit int) ([]domain.HistoryEntry, error)
}

type Service struct {
	userRepo   UserRepo
	ledgerRepo LedgerRepo
}

func New(userRepo UserRepo, ledgerRepo LedgerRepo) *Service {
	return &Service{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *Service) GetBalance(ctx context.Context, userID int64) (*domain.Account, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &domain.Account{
		UserID:       user.ID,
		Points:       user.Points,
		LastCheckIn:  user.LastCheckIn,
		JackpotWon:   user.JackpotWon,
		WinnerNumber: user.WinnerNumber,
	}, nil
}

// GetHistory returns the newest entries first. A non-positive limit means the
// default, and limits above MaxHistoryLimit are capped.
func (s *Service) GetHistory(ctx context.Context, userID int64, limit int) ([]domain.HistoryEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	entries, err := s.ledgerRepo.History(ctx, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch history", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}
