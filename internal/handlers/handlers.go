package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/scratchmart/docs"
	authhandlers "github.com/GlebRadaev/scratchmart/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/scratchmart/internal/handlers/balance"
	checkinhandlers "github.com/GlebRadaev/scratchmart/internal/handlers/checkin"
	checkouthandlers "github.com/GlebRadaev/scratchmart/internal/handlers/checkout"
	lotteryhandlers "github.com/GlebRadaev/scratchmart/internal/handlers/lottery"
	"github.com/GlebRadaev/scratchmart/internal/service"
	"github.com/GlebRadaev/scratchmart/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type LotteryHandler interface {
	Scratch(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Winners(w http.ResponseWriter, r *http.Request)
}

type CheckInHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
}

type CheckoutHandler interface {
	Checkout(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	BalanceHandler  BalanceHandler
	LotteryHandler  LotteryHandler
	CheckInHandler  CheckInHandler
	CheckoutHandler CheckoutHandler
	JWTService      auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		BalanceHandler:  balancehandlers.New(s.LedgerService),
		LotteryHandler:  lotteryhandlers.New(s.LotteryService),
		CheckInHandler:  checkinhandlers.New(s.CheckInService),
		CheckoutHandler: checkouthandlers.New(s.CheckoutService),
		JWTService:      jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.JWTService))
			r.Get("/balance", h.BalanceHandler.GetBalance)
			r.Get("/history", h.BalanceHandler.GetHistory)
			r.Post("/checkin", h.CheckInHandler.CheckIn)
			r.Post("/scratch", h.LotteryHandler.Scratch)
			r.Post("/checkout", h.CheckoutHandler.Checkout)
			r.Get("/orders", h.CheckoutHandler.GetOrders)
		})
	})
	r.Route("/api/lottery", func(r chi.Router) {
		r.Get("/status", h.LotteryHandler.Status)
		r.Get("/winners", h.LotteryHandler.Winners)
	})

	return r
}
