package request

type CreateBookingRequest struct {
	ServiceID   string  `json:"service_id" validate:"required,uuid4"`
	BookingDate string  `json:"booking_date" validate:"required"`
	Venue       *string `json:"venue,omitempty" validate:"omitempty,max=255"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpdateBookingRequest carries only the owner-editable fields. Status,
// payment and assignment never travel through this shape.
type UpdateBookingRequest struct {
	BookingDate *string `json:"booking_date,omitempty"`
	Venue       *string `json:"venue,omitempty" validate:"omitempty,max=255"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type AssignDecoratorRequest struct {
	DecoratorEmail string `json:"decorator_email" validate:"required,email"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=assigned in_progress completed"`
}
