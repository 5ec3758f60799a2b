package checkout

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/internal/dto"
	"github.com/GlebRadaev/scratchmart/internal/handlers/httperr"
	"github.com/GlebRadaev/scratchmart/pkg/auth"
	"github.com/GlebRadaev/scratchmart/pkg/utils"
	"github.com/GlebRadaev/scratchmart/pkg/validate"
)

//go:generate mockgen -source=checkout.go -destination=mock_checkout.go -package=checkout

type Service interface {
	Checkout(ctx context.Context, userID int64, req domain.CheckoutRequest) (*domain.CheckoutResult, error)
	Orders(ctx context.Context, userID int64) ([]domain.Order, error)
}

type CheckoutHandler struct {
	checkoutService Service
}

func New(checkoutService Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Checkout godoc
//
//	@Summary	Place an order and earn cashback
//	@Tags		Checkout
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CheckoutRequestDTO	true	"Checkout request body"
//	@Success	201		{object}	dto.CheckoutResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	401		{object}	utils.Response	"User not authorized"
//	@Failure	503		{object}	utils.Response	"Storage unavailable, retry"
//	@Router		/api/user/checkout [post]
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httperr.Respond(w, err)
		return
	}

	result, err := h.checkoutService.Checkout(r.Context(), userID, req.ToDomain())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewCheckoutResponse(result))
}

// GetOrders godoc
//
//	@Summary	Orders, newest first
//	@Tags		Checkout
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		dto.OrderDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Router		/api/user/orders [get]
func (h *CheckoutHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := h.checkoutService.Orders(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrdersResponse(orders))
}
