package checkin

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/dto"
	"github.com/GlebRadaev/scratchmart/internal/handlers/httperr"
	"github.com/GlebRadaev/scratchmart/pkg/auth"
	"github.com/GlebRadaev/scratchmart/pkg/utils"
)

//go:generate mockgen -source=checkin.go -destination=mock_checkin.go -package=checkin

type Service interface {
	CheckIn(ctx context.Context, userID int64) (*domain.CheckInResult, error)
}

type CheckInHandler struct {
	checkInService Service
}

func New(checkInService Service) *CheckInHandler {
	return &CheckInHandler{
		checkInService: checkInService,
	}
}

// CheckIn godoc
//
//	@Summary	Daily check-in reward
//	@Tags		Check-in
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.CheckInResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	409	{object}	utils.Response	"Already checked in today"
//	@Router		/api/user/checkin [post]
func (h *CheckInHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.checkInService.CheckIn(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCheckInResponse(result))
}
