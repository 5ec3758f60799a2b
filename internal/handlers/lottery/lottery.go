package lottery

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/dto"
	"github.com/GlebRadaev/scratchmart/internal/handlers/httperr"
	"github.com/GlebRadaev/scratchmart/pkg/auth"
	"github.com/GlebRadaev/scratchmart/pkg/utils"
)

//go:generate mockgen -source=lottery.go -destination=mock_lottery.go -package=lottery

type Service interface {
	Scratch(ctx context.Context, userID int64) (*domain.ScratchResult, error)
	Status(ctx context.Context) (*domain.LotteryStatus, error)
	Winners(ctx context.Context, limit int) ([]domain.Winner, error)
}

type LotteryHandler struct {
	lotteryService Service
}

func New(lotteryService Service) *LotteryHandler {
	return &LotteryHandler{
		lotteryService: lotteryService,
	}
}

// Scratch godoc
//
//	@Summary	Buy and scratch one ticket
//	@Tags		Lottery
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.ScratchResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	402	{object}	utils.Response	"Insufficient balance"
//	@Failure	500	{object}	utils.Response	"Service misconfigured"
//	@Failure	503	{object}	utils.Response	"Concurrency conflict, retry"
//	@Router		/api/user/scratch [post]
func (h *LotteryHandler) Scratch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.lotteryService.Scratch(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewScratchResponse(result))
}

// Status godoc
//
//	@Summary	Global draw count and prize odds
//	@Tags		Lottery
//	@Produce	json
//	@Success	200	{object}	dto.LotteryStatusResponseDTO
//	@Router		/api/lottery/status [get]
func (h *LotteryHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.lotteryService.Status(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewLotteryStatusResponse(status))
}

// Winners godoc
//
//	@Summary	Jackpot winners by winner number
//	@Tags		Lottery
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum number of rows"
//	@Success	200		{array}		dto.WinnerDTO
//	@Failure	400		{object}	utils.Response	"Invalid limit"
//	@Router		/api/lottery/winners [get]
func (h *LotteryHandler) Winners(w http.ResponseWriter, r *http.Request) {
	limit, err := utils.QueryLimit(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	winners, err := h.lotteryService.Winners(r.Context(), limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWinnersResponse(winners))
}
