package balance

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/dto"
	"github.com/GlebRadaev/scratchmart/internal/handlers/httperr"
	"github.com/GlebRadaev/scratchmart/pkg/auth"
	"github.com/GlebRadaev/scratchmart/pkg/utils"
)

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance

type Service interface {
	GetBalance(ctx context.Context, userID int64) (*domain.Account, error)
	GetHistory(ctx context.Context, userID int64, limit int) ([]domain.HistoryEntry, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary	Current points balance
//	@Tags		Balance
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.BalanceResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	404	{object}	utils.Response	"User not found"
//	@Router		/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	account, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceResponse(account))
}

// GetHistory godoc
//
//	@Summary	Points history, newest first
//	@Tags		Balance
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum number of rows"
//	@Success	200		{array}		dto.HistoryEntryDTO
//	@Failure	400		{object}	utils.Response	"Invalid limit"
//	@Failure	401		{object}	utils.Response	"User not authorized"
//	@Router		/api/user/history [get]
func (h *BalanceHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limit, err := utils.QueryLimit(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.balanceService.GetHistory(r.Context(), userID, limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewHistoryResponse(entries))
}
