package wire

import (
	"decor-marketplace/internal/adaptor"
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// Catalog management
		r.Post("/services", handler.Catalog.CreateService)
		r.Put("/services/{id}", handler.Catalog.UpdateService)
		r.Delete("/services/{id}", handler.Catalog.DeleteService)

		// Booking oversight
		r.Get("/bookings", handler.Booking.ListAllBookings)
		r.Post("/bookings/{id}/assign", handler.Booking.AssignDecorator)

		// Payments and accounts
		r.Get("/payments", handler.Payment.ListAllPayments)
		r.Get("/users", handler.User.ListUsers)
		r.Get("/dashboard", handler.Dashboard.GetStats)
	})
}
