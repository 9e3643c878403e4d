package wire

import (
	"decor-marketplace/internal/adaptor"
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/payments/checkout - Open a hosted checkout session
		r.Post("/api/payments/checkout", paymentHandler.CreateCheckout)

		// POST /api/payments/verify - Confirm with the provider and settle
		r.Post("/api/payments/verify", paymentHandler.VerifyPayment)

		// GET /api/payments - Own payment history
		r.Get("/api/payments", paymentHandler.GetUserPayments)
	})

	// ==================== DECORATOR ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Decorator(log))

		// GET /api/decorator/payments - Earnings for assigned bookings
		r.Get("/api/decorator/payments", paymentHandler.GetDecoratorPayments)
	})
}
