package wire

import (
	"decor-marketplace/internal/adaptor"
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - Own booking history
		r.Get("/api/bookings", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - Booking detail (owner, assigned decorator or admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id} - Edit date, venue, notes (owner only)
		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/bookings/{id} - Cancel while unpaid (owner only)
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)
	})

	// ==================== DECORATOR ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Decorator(log))

		// GET /api/decorator/bookings - Assigned jobs
		r.Get("/api/decorator/bookings", bookingHandler.GetDecoratorBookings)

		// PATCH /api/bookings/{id}/status - Advance the lifecycle
		r.Patch("/api/bookings/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
