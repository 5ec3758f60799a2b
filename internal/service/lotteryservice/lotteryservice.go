package lotteryservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
	"github.com/GlebRadaev/scratchmart/internal/prize"
)

//go:generate mockgen -source=lotteryservice.go -destination=mock_lotteryservice.go -package=lotteryservice

const (
	DefaultWinnersLimit = 100
	MaxWinnersLimit     = 1000
)

type UserRepo interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.User, error)
}

type LedgerRepo interface {
	ApplyDelta(ctx context.Context, userID, amount int64, reason string) (int64, error)
}

type CounterRepo interface {
	Increment(ctx context.Context) (int64, error)
	Current(ctx context.Context) (int64, error)
}

type WinnerRepo interface {
	Assign(ctx context.Context, userID int64) (int64, error)
	List(ctx context.Context, limit int) ([]domain.Winner, error)
}

type Config struct {
	Cost             int64
	JackpotThreshold int64
	PityInterval     int64
}

type Service struct {
	txManager   pg.TXManager
	userRepo    UserRepo
	ledgerRepo  LedgerRepo
	counterRepo CounterRepo
	winnerRepo  WinnerRepo
	table       *prize.Table
	src         prize.RandomSource
	cfg         Config
}

type Option func(*Service)

func WithRandomSource(src prize.RandomSource) Option {
	return func(s *Service) {
		s.src = src
	}
}

func New(
	txManager pg.TXManager,
	userRepo UserRepo,
	ledgerRepo LedgerRepo,
	counterRepo CounterRepo,
	winnerRepo WinnerRepo,
	table *prize.Table,
	cfg Config,
	opts ...Option,
) *Service {
	s := &Service{
		txManager:   txManager,
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
		counterRepo: counterRepo,
		winnerRepo:  winnerRepo,
		table:       table,
		src:         prize.DefaultSource(),
		cfg:         cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scratch runs one draw for the user. Every step shares one transaction, so a
// failed draw leaves the balance, the history and the global counter untouched.
func (s *Service) Scratch(ctx context.Context, userID int64) (*domain.ScratchResult, error) {
	var result domain.ScratchResult
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		result = domain.ScratchResult{}

		user, err := s.userRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.Points < s.cfg.Cost {
			return domain.ErrInsufficientBalance
		}

		n, err := s.counterRepo.Increment(ctx)
		if err != nil {
			return err
		}

		var tier domain.PrizeTier
		if n%s.cfg.PityInterval == 0 {
			tier = s.table.Jackpot()
			result.Guaranteed = true
		} else if tier, err = s.table.Draw(s.src); err != nil {
			return err
		}

		result.WinnerNumber = user.WinnerNumber
		if tier.Reward >= s.cfg.JackpotThreshold && user.WinnerNumber == nil {
			number, err := s.winnerRepo.Assign(ctx, userID)
			if err != nil {
				return err
			}
			result.WinnerNumber = &number
			result.NewWinner = true
		}

		balance, err := s.ledgerRepo.ApplyDelta(ctx, userID, -s.cfg.Cost, domain.ReasonScratchCost)
		if err != nil {
			return err
		}
		if tier.Reward > 0 {
			if balance, err = s.ledgerRepo.ApplyDelta(ctx, userID, tier.Reward, domain.ReasonPrizePrefix+tier.Name); err != nil {
				return err
			}
		}

		result.PrizeName = tier.Name
		result.Reward = tier.Reward
		result.NewBalance = balance
		result.DrawCount = n
		return nil
	})
	if err != nil {
		if !domain.IsUserFacing(err) {
			zap.L().Error("scratch failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	fields := []zap.Field{
		zap.Int64("user_id", userID),
		zap.Int64("draw", result.DrawCount),
		zap.String("prize", result.PrizeName),
		zap.Int64("balance", result.NewBalance),
	}
	if result.NewWinner {
		zap.L().Info("jackpot winner", append(fields, zap.Int64("winner_no", *result.WinnerNumber))...)
	} else {
		zap.L().Debug("scratch", fields...)
	}
	return &result, nil
}

func (s *Service) Status(ctx context.Context) (*domain.LotteryStatus, error) {
	n, err := s.counterRepo.Current(ctx)
	if err != nil {
		zap.L().Error("failed to read draw counter", zap.Error(err))
		return nil, err
	}
	return &domain.LotteryStatus{
		DrawCount:         n,
		DrawsUntilJackpot: s.cfg.PityInterval - n%s.cfg.PityInterval,
		Cost:              s.cfg.Cost,
		Tiers:             s.table.Odds(),
	}, nil
}

func (s *Service) Winners(ctx context.Context, limit int) ([]domain.Winner, error) {
	switch {
	case limit <= 0:
		limit = DefaultWinnersLimit
	case limit > MaxWinnersLimit:
		limit = MaxWinnersLimit
	}
	winners, err := s.winnerRepo.List(ctx, limit)
	if err != nil {
		zap.L().Error("failed to list winners", zap.Error(err))
		return nil, err
	}
	return winners, nil
}
