package dto

import "github.com/GlebRadaev/scratchmart/internal/domain"

type ScratchResponseDTO struct {
	Prize        string `json:"prize"`
	Reward       int64  `json:"reward"`
	NewBalance   int64  `json:"new_balance"`
	WinnerNumber *int64 `json:"winner_number,omitempty"`
	NewWinner    bool   `json:"new_winner"`
	DrawCount    int64  `json:"draw_count"`
	Guaranteed   bool   `json:"guaranteed"`
}

func NewScratchResponse(r *domain.ScratchResult) ScratchResponseDTO {
	return ScratchResponseDTO{
		Prize:        r.PrizeName,
		Reward:       r.Reward,
		NewBalance:   r.NewBalance,
		WinnerNumber: r.WinnerNumber,
		NewWinner:    r.NewWinner,
		DrawCount:    r.DrawCount,
		Guaranteed:   r.Guaranteed,
	}
}

type TierOddsDTO struct {
	Name        string  `json:"name"`
	Reward      int64   `json:"reward"`
	Probability float64 `json:"probability"`
}

type LotteryStatusResponseDTO struct {
	DrawCount         int64         `json:"draw_count"`
	DrawsUntilJackpot int64         `json:"draws_until_jackpot"`
	Cost              int64         `json:"cost"`
	Tiers             []TierOddsDTO `json:"tiers"`
}

func NewLotteryStatusResponse(s *domain.LotteryStatus) LotteryStatusResponseDTO {
	tiers := make([]TierOddsDTO, len(s.Tiers))
	for i, t := range s.Tiers {
		tiers[i] = TierOddsDTO{Name: t.Name, Reward: t.Reward, Probability: t.Probability}
	}
	return LotteryStatusResponseDTO{
		DrawCount:         s.DrawCount,
		DrawsUntilJackpot: s.DrawsUntilJackpot,
		Cost:              s.Cost,
		Tiers:             tiers,
	}
}

type WinnerDTO struct {
	WinnerNumber int64  `json:"winner_number"`
	UserID       int64  `json:"user_id"`
	Name         string `json:"name"`
}

func NewWinnersResponse(winners []domain.Winner) []WinnerDTO {
	resp := make([]WinnerDTO, len(winners))
	for i, w := range winners {
		resp[i] = WinnerDTO{WinnerNumber: w.WinnerNumber, UserID: w.UserID, Name: w.Name}
	}
	return resp
}
