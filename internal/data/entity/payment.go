package entity

import (
	"github.com/google/uuid"
)

// Payment is the durable record of a confirmed checkout. Amount and
// TransactionID come from the provider's own session record, never from
// a client request. Created exactly once per settled checkout, immutable,
// never deleted.
type Payment struct {
	BaseSimple
	BookingID     uuid.UUID `db:"booking_id"`
	UserEmail     string    `db:"user_email"`
	Amount        float64   `db:"amount"`
	TransactionID string    `db:"transaction_id"`
	ServiceName   string    `db:"service_name"`
}
