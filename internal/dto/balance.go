package dto

import (
	"time"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

type BalanceResponseDTO struct {
	Points       int64      `json:"points"`
	LastCheckIn  *time.Time `json:"last_check_in,omitempty"`
	JackpotWon   bool       `json:"jackpot_won"`
	WinnerNumber *int64     `json:"winner_number,omitempty"`
}

func NewBalanceResponse(a *domain.Account) BalanceResponseDTO {
	return BalanceResponseDTO{
		Points:       a.Points,
		LastCheckIn:  a.LastCheckIn,
		JackpotWon:   a.JackpotWon,
		WinnerNumber: a.WinnerNumber,
	}
}

type HistoryEntryDTO struct {
	ID        int64     `json:"id"`
	Delta     int64     `json:"delta"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func NewHistoryResponse(entries []domain.HistoryEntry) []HistoryEntryDTO {
	resp := make([]HistoryEntryDTO, len(entries))
	for i, e := range entries {
		resp[i] = HistoryEntryDTO{
			ID:        e.ID,
			Delta:     e.Delta,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		}
	}
	return resp
}

type CheckInResponseDTO struct {
	Reward     int64  `json:"reward"`
	NewBalance int64  `json:"new_balance"`
	Date       string `json:"date"`
}

func NewCheckInResponse(r *domain.CheckInResult) CheckInResponseDTO {
	return CheckInResponseDTO{
		Reward:     r.Reward,
		NewBalance: r.NewBalance,
		Date:       r.Date.Format(time.DateOnly),
	}
}
