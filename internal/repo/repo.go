package repo

import (
	"github.com/GlebRadaev/scratchmart/internal/pg"
	counterrepo "github.com/GlebRadaev/scratchmart/internal/repo/counter-repo"
	ledgerrepo "github.com/GlebRadaev/scratchmart/internal/repo/ledger-repo"
	orderrepo "github.com/GlebRadaev/scratchmart/internal/repo/order-repo"
	userrepo "github.com/GlebRadaev/scratchmart/internal/repo/user-repo"
	winnerrepo "github.com/GlebRadaev/scratchmart/internal/repo/winner-repo"
)

type Repositories struct {
	UserRepo    *userrepo.Repository
	LedgerRepo  *ledgerrepo.Repository
	CounterRepo *counterrepo.Repository
	WinnerRepo  *winnerrepo.Repository
	OrderRepo   *orderrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:    userrepo.New(conn),
		LedgerRepo:  ledgerrepo.New(conn, txManager),
		CounterRepo: counterrepo.New(conn),
		WinnerRepo:  winnerrepo.New(conn, txManager),
		OrderRepo:   orderrepo.New(conn, txManager),
	}
}
