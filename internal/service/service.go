package service

import (
	"github.com/GlebRadaev/scratchmart/internal/config"
	"github.com/GlebRadaev/scratchmart/internal/handlers/auth"
	"github.com/GlebRadaev/scratchmart/internal/handlers/balance"
	"github.com/GlebRadaev/scratchmart/internal/handlers/checkin"
	"github.com/GlebRadaev/scratchmart/internal/handlers/checkout"
	"github.com/GlebRadaev/scratchmart/internal/handlers/lottery"
	"github.com/GlebRadaev/scratchmart/internal/pg"
	"github.com/GlebRadaev/scratchmart/internal/prize"
	"github.com/GlebRadaev/scratchmart/internal/repo"
	"github.com/GlebRadaev/scratchmart/internal/service/authservice"
	"github.com/GlebRadaev/scratchmart/internal/service/checkinservice"
	"github.com/GlebRadaev/scratchmart/internal/service/checkoutservice"
	"github.com/GlebRadaev/scratchmart/internal/service/ledgerservice"
	"github.com/GlebRadaev/scratchmart/internal/service/lotteryservice"
	pkgauth "github.com/GlebRadaev/scratchmart/pkg/auth"
)

type Services struct {
	AuthService     auth.Service
	LedgerService   balance.Service
	LotteryService  lottery.Service
	CheckInService  checkin.Service
	CheckoutService checkout.Service
}

type Deps struct {
	Repos       *repo.Repositories
	TXManager   pg.TXManager
	PrizeTable  *prize.Table
	HashService pkgauth.HashServiceInterface
	JWTService  pkgauth.JWTServiceInterface
}

func New(cfg *config.Config, deps Deps) *Services {
	repos := deps.Repos
	return &Services{
		AuthService:   authservice.New(repos.UserRepo, deps.HashService, deps.JWTService, cfg.TokenTTL),
		LedgerService: ledgerservice.New(repos.UserRepo, repos.LedgerRepo),
		LotteryService: lotteryservice.New(
			deps.TXManager,
			repos.UserRepo,
			repos.LedgerRepo,
			repos.CounterRepo,
			repos.WinnerRepo,
			deps.PrizeTable,
			lotteryservice.Config{
				Cost:             cfg.ScratchCost,
				JackpotThreshold: cfg.JackpotThreshold,
				PityInterval:     cfg.PityInterval,
			},
		),
		CheckInService:  checkinservice.New(deps.TXManager, repos.UserRepo, repos.LedgerRepo, cfg.CheckInReward, cfg.Location()),
		CheckoutService: checkoutservice.New(deps.TXManager, repos.UserRepo, repos.OrderRepo, repos.LedgerRepo, cfg.CashbackBasisPoints()),
	}
}
