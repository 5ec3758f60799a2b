package checkoutservice

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/pg"
)

type mocks struct {
	tx     *pg.MockTXManager
	users  *MockUserRepo
	orders *MockOrderRepo
	ledger *MockLedgerRepo
}

func NewMock(t *testing.T, rateBP int64) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		tx:     pg.NewMockTXManager(ctrl),
		users:  NewMockUserRepo(ctrl),
		orders: NewMockOrderRepo(ctrl),
		ledger: NewMockLedgerRepo(ctrl),
	}
	return New(m.tx, m.users, m.orders, m.ledger, rateBP), m
}

func expectTx(m mocks) {
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

func TestCashback(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		rateBP   int64
		expected int64
	}{
		{name: "One percent of 1000", total: 1000, rateBP: 100, expected: 10},
		{name: "Floors fractional points", total: 199, rateBP: 100, expected: 1},
		{name: "Below one point", total: 99, rateBP: 100, expected: 0},
		{name: "Historical tenth of a percent", total: 1000, rateBP: 10, expected: 1},
		{name: "Zero rate", total: 1000, rateBP: 0, expected: 0},
		{name: "Zero total", total: 0, rateBP: 100, expected: 0},
		{name: "Negative total", total: -500, rateBP: 100, expected: 0},
		{name: "Large total does not overflow", total: math.MaxInt64, rateBP: 100, expected: math.MaxInt64 / 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Cashback(tt.total, tt.rateBP))
		})
	}
}

func TestCheckout(t *testing.T) {
	image := "https://cdn.example.com/mug.png"

	tests := []struct {
		name          string
		req           domain.CheckoutRequest
		prepareMock   func(m mocks)
		expected      *domain.CheckoutResult
		expectedError error
	}{
		{
			name: "Order with cashback",
			req:  domain.CheckoutRequest{ProductName: "Mug", TotalPrice: 1000, ImageURL: &image},
			prepareMock: func(m mocks) {
				expectTx(m)
				m.users.EXPECT().GetForUpdate(gomock.Any(), int64(1)).Return(&domain.User{ID: 1, Points: 5}, nil)
				m.orders.EXPECT().Create(gomock.Any(), &domain.Order{UserID: 1, ProductName: "Mug", TotalPrice: 1000, ImageURL: &image}).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						o.ID = 42
						return o, nil
					})
				m.ledger.EXPECT().ApplyDelta(gomock.Any(), int64(1), int64(10), "checkout cashback").Return(int64(15), nil)
			},
			expected: &domain.CheckoutResult{OrderID: 42, Reward: 10, NewBalance: 15},
		},
		{
			name: "Cheap order earns nothing",
			req:  domain.CheckoutRequest{ProductName: "Sticker", TotalPrice: 50},
			prepareMock: func(m mocks) {
				expectTx(m)
				m.users.EXPECT().GetForUpdate(gomock.Any(), int64(1)).Return(&domain.User{ID: 1, Points: 5}, nil)
				m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Order{ID: 43}, nil)
			},
			expected: &domain.CheckoutResult{OrderID: 43, Reward: 0, NewBalance: 5},
		},
		{
			name: "Unknown user",
			req:  domain.CheckoutRequest{ProductName: "Mug", TotalPrice: 1000},
			prepareMock: func(m mocks) {
				expectTx(m)
				m.users.EXPECT().GetForUpdate(gomock.Any(), int64(1)).Return(nil, domain.ErrUserNotFound)
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name: "Cashback failure rolls back the order",
			req:  domain.CheckoutRequest{ProductName: "Mug", TotalPrice: 1000},
			prepareMock: func(m mocks) {
				expectTx(m)
				m.users.EXPECT().GetForUpdate(gomock.Any(), int64(1)).Return(&domain.User{ID: 1}, nil)
				m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Order{ID: 44}, nil)
				m.ledger.EXPECT().ApplyDelta(gomock.Any(), int64(1), int64(10), "checkout cashback").Return(int64(0), domain.ErrPersistence)
			},
			expectedError: domain.ErrPersistence,
		},
		{
			name: "Order insert failure",
			req:  domain.CheckoutRequest{ProductName: "Mug", TotalPrice: 1000},
			prepareMock: func(m mocks) {
				expectTx(m)
				m.users.EXPECT().GetForUpdate(gomock.Any(), int64(1)).Return(&domain.User{ID: 1}, nil)
				m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrPersistence)
			},
			expectedError: domain.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t, 100)
			tt.prepareMock(m)

			result, err := service.Checkout(context.Background(), 1, tt.req)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestOrders(t *testing.T) {
	service, m := NewMock(t, 100)
	orders := []domain.Order{{ID: 2, UserID: 1, ProductName: "Tea"}, {ID: 1, UserID: 1, ProductName: "Mug"}}

	m.orders.EXPECT().FindByUserID(gomock.Any(), int64(1)).Return(orders, nil)
	got, err := service.Orders(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, orders, got)

	m.orders.EXPECT().FindByUserID(gomock.Any(), int64(1)).Return(nil, domain.ErrPersistence)
	_, err = service.Orders(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
