package response

import (
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/pkg/utils"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	ServiceID      string               `json:"service_id"`
	ServiceName    string               `json:"service_name"`
	UserEmail      string               `json:"user_email"`
	DecoratorEmail *string              `json:"decorator_email,omitempty"`
	DecoratorName  *string              `json:"decorator_name,omitempty"`
	BookingDate    string               `json:"booking_date"`
	Venue          *string              `json:"venue,omitempty"`
	Notes          *string              `json:"notes,omitempty"`
	Status         entity.BookingStatus `json:"status"`
	IsPaid         bool                 `json:"is_paid"`
	PaymentID      *string              `json:"payment_id,omitempty"`
	StatusHistory  entity.StatusHistory `json:"status_history,omitempty"`
	AssignedAt     *time.Time           `json:"assigned_at,omitempty"`
	PaidAt         *time.Time           `json:"paid_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:             booking.ID.String(),
		ServiceID:      booking.ServiceID.String(),
		ServiceName:    booking.ServiceName,
		UserEmail:      booking.UserEmail,
		DecoratorEmail: booking.DecoratorEmail,
		DecoratorName:  booking.DecoratorName,
		BookingDate:    booking.BookingDate.Format(utils.DateFormat),
		Venue:          booking.Venue,
		Notes:          booking.Notes,
		Status:         booking.Status,
		IsPaid:         booking.IsPaid,
		StatusHistory:  booking.StatusHistory,
		AssignedAt:     booking.AssignedAt,
		PaidAt:         booking.PaidAt,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}

	if booking.PaymentID != nil {
		id := booking.PaymentID.String()
		resp.PaymentID = &id
	}

	return resp
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, BookingToResponse(booking))
	}
	return out
}
