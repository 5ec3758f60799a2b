package checkinservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
)

//go:generate mockgen -source=checkinservice.go -destination=mock_checkinservice.go -package=checkinservice

type UserRepo interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.User, error)
	SetLastCheckIn(ctx context.Context, id int64, day time.Time) error
}

type LedgerRepo interface {
	ApplyDelta(ctx context.Context, userID, amount int64, reason string) (int64, error)
}

type Service struct {
	txManager  pg.TXManager
	userRepo   UserRepo
	ledgerRepo LedgerRepo
	reward     int64
	location   *time.Location
	now        func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(txManager pg.TXManager, userRepo UserRepo, ledgerRepo LedgerRepo, reward int64, location *time.Location, opts ...Option) *Service {
	s := &Service{
		txManager:  txManager,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		reward:     reward,
		location:   location,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn credits the daily reward once per calendar day of the service's location.
func (s *Service) CheckIn(ctx context.Context, userID int64) (*domain.CheckInResult, error) {
	today := civilDate(s.now().In(s.location))

	var balance int64
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.LastCheckIn != nil && !civilDate(*user.LastCheckIn).Before(today) {
			return domain.ErrAlreadyCheckedIn
		}
		if err = s.userRepo.SetLastCheckIn(ctx, userID, today); err != nil {
			return err
		}
		balance, err = s.ledgerRepo.ApplyDelta(ctx, userID, s.reward, domain.ReasonDailyCheckIn)
		return err
	})
	if err != nil {
		if !domain.IsUserFacing(err) {
			zap.L().Error("check-in failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	zap.L().Info("daily check-in", zap.Int64("user_id", userID), zap.Int64("balance", balance))
	return &domain.CheckInResult{NewBalance: balance, Reward: s.reward, Date: today}, nil
}

// civilDate keeps the wall-clock date of t as midnight UTC, the form DATE
// columns are read back in.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
