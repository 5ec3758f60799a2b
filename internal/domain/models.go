package domain

import "time"

type User struct {
	ID           int64      `db:"id"`
	Email        string     `db:"email"`
	Name         string     `db:"name"`
	Bio          string     `db:"bio"`
	PasswordHash string     `db:"password_hash"`
	Points       int64      `db:"points"`
	LastCheckIn  *time.Time `db:"last_check_in"`
	JackpotWon   bool       `db:"jackpot_won"`
	WinnerNumber *int64     `db:"winner_no"`
	CreatedAt    time.Time  `db:"created_at"`
}

type HistoryEntry struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Delta     int64     `db:"delta"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

type PrizeTier struct {
	Name   string `yaml:"name"`
	Reward int64  `yaml:"reward"`
	Weight int64  `yaml:"weight"`
}

type Order struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	ProductName string    `db:"product_name"`
	TotalPrice  int64     `db:"total_price"`
	ImageURL    *string   `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
}

// Winner is a leaderboard row.
type Winner struct {
	WinnerNumber int64  `db:"winner_no"`
	UserID       int64  `db:"id"`
	Name         string `db:"name"`
}

// Account is the balance view of a user.
type Account struct {
	UserID       int64
	Points       int64
	LastCheckIn  *time.Time
	JackpotWon   bool
	WinnerNumber *int64
}

type ScratchResult struct {
	PrizeName    string
	Reward       int64
	NewBalance   int64
	WinnerNumber *int64
	NewWinner    bool
	DrawCount    int64
	Guaranteed   bool
}

type LotteryStatus struct {
	DrawCount         int64
	DrawsUntilJackpot int64
	Cost              int64
	Tiers             []TierOdds
}

type TierOdds struct {
	Name        string
	Reward      int64
	Probability float64
}

type CheckInResult struct {
	NewBalance int64
	Reward     int64
	Date       time.Time
}

type CheckoutRequest struct {
	ProductName string
	TotalPrice  int64
	ImageURL    *string
}

type CheckoutResult struct {
	OrderID    int64
	Reward     int64
	NewBalance int64
}

// Reconciliation compares the stored balance with the sum of history deltas.
type Reconciliation struct {
	UserID     int64
	Balance    int64
	HistorySum int64
}

func (r Reconciliation) Consistent() bool {
	return r.Balance == r.HistorySum
}

// Ledger reasons.
const (
	ReasonScratchCost      = "scratch cost"
	ReasonPrizePrefix      = "prize: "
	ReasonDailyCheckIn     = "daily check-in"
	ReasonCheckoutCashback = "checkout cashback"
)
