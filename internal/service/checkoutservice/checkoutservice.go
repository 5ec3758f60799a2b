package checkoutservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
)

//go:generate mockgen -source=checkoutservice.go -destination=mock_checkoutservice.go -package=checkoutservice

const basisPoints = 10000

type UserRepo interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.User, error)
}

type OrderRepo interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
}

type LedgerRepo interface {
	ApplyDelta(ctx context.Context, userID, amount int64, reason string) (int64, error)
}

type Service struct {
	txManager  pg.TXManager
	userRepo   UserRepo
	orderRepo  OrderRepo
	ledgerRepo LedgerRepo
	rateBP     int64
}

// New takes the cashback rate in basis points (100 = 1%).
func New(txManager pg.TXManager, userRepo UserRepo, orderRepo OrderRepo, ledgerRepo LedgerRepo, rateBP int64) *Service {
	return &Service{
		txManager:  txManager,
		userRepo:   userRepo,
		orderRepo:  orderRepo,
		ledgerRepo: ledgerRepo,
		rateBP:     rateBP,
	}
}

// Cashback returns floor(total * rateBP / 10000) without overflowing for large totals.
func Cashback(total, rateBP int64) int64 {
	if total <= 0 || rateBP <= 0 {
		return 0
	}
	q, r := total/basisPoints, total%basisPoints
	return q*rateBP + r*rateBP/basisPoints
}

// Checkout records the order and credits its cashback in one transaction.
func (s *Service) Checkout(ctx context.Context, userID int64, req domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	reward := Cashback(req.TotalPrice, s.rateBP)

	var result domain.CheckoutResult
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		order, err := s.orderRepo.Create(ctx, &domain.Order{
			UserID:      userID,
			ProductName: req.ProductName,
			TotalPrice:  req.TotalPrice,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			return err
		}

		balance := user.Points
		if reward > 0 {
			if balance, err = s.ledgerRepo.ApplyDelta(ctx, userID, reward, domain.ReasonCheckoutCashback); err != nil {
				return err
			}
		}

		result = domain.CheckoutResult{OrderID: order.ID, Reward: reward, NewBalance: balance}
		return nil
	})
	if err != nil {
		if !domain.IsUserFacing(err) {
			zap.L().Error("checkout failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	zap.L().Info("order placed", zap.Int64("user_id", userID), zap.Int64("order_id", result.OrderID), zap.Int64("cashback", reward))
	return &result, nil
}

func (s *Service) Orders(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return orders, nil
}
