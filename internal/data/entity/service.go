package entity

type Service struct {
	Base
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	Price       float64 `db:"price"`
	ImageURL    *string `db:"image_url"`
	// Decorator offering this service.
	DecoratorEmail string `db:"decorator_email"`
	// Denormalized count of live bookings for this service.
	// Incremented on booking creation, decremented on cancellation.
	BookingCount int64 `db:"booking_count"`
	IsActive     bool  `db:"is_active"`
}
