package dto

import (
	"time"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

type CheckoutRequestDTO struct {
	ProductName string  `json:"product_name" validate:"required,max=255"`
	TotalPrice  int64   `json:"total_price" validate:"gte=0"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
}

func (r CheckoutRequestDTO) ToDomain() domain.CheckoutRequest {
	return domain.CheckoutRequest{
		ProductName: r.ProductName,
		TotalPrice:  r.TotalPrice,
		ImageURL:    r.ImageURL,
	}
}

type CheckoutResponseDTO struct {
	OrderID    int64 `json:"order_id"`
	Reward     int64 `json:"reward"`
	NewBalance int64 `json:"new_balance"`
}

func NewCheckoutResponse(r *domain.CheckoutResult) CheckoutResponseDTO {
	return CheckoutResponseDTO{OrderID: r.OrderID, Reward: r.Reward, NewBalance: r.NewBalance}
}

type OrderDTO struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	TotalPrice  int64     `json:"total_price"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewOrdersResponse(orders []domain.Order) []OrderDTO {
	resp := make([]OrderDTO, len(orders))
	for i, o := range orders {
		resp[i] = OrderDTO{
			ID:          o.ID,
			ProductName: o.ProductName,
			TotalPrice:  o.TotalPrice,
			ImageURL:    o.ImageURL,
			CreatedAt:   o.CreatedAt,
		}
	}
	return resp
}
