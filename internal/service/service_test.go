package service

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/scratchmart/internal/config"
	"github.com/GlebRadaev/scratchmart/internal/pg"
	"github.com/GlebRadaev/scratchmart/internal/prize"
	"github.com/GlebRadaev/scratchmart/internal/repo"
	pkgauth "github.com/GlebRadaev/scratchmart/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	txManager := pg.NewMockTXManager(ctrl)
	table, err := prize.Default(880000)
	require.NoError(t, err)

	cfg := &config.Config{
		ScratchCost:      10,
		JackpotThreshold: 880000,
		PityInterval:     100,
		CheckInReward:    10,
		CashbackRate:     0.01,
	}

	services := New(cfg, Deps{
		Repos:       repo.New(mockPool, txManager),
		TXManager:   txManager,
		PrizeTable:  table,
		HashService: pkgauth.NewMockHashServiceInterface(ctrl),
		JWTService:  pkgauth.NewMockJWTServiceInterface(ctrl),
	})

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.LedgerService)
	assert.NotNil(t, services.LotteryService)
	assert.NotNil(t, services.CheckInService)
	assert.NotNil(t, services.CheckoutService)
}
