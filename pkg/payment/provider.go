package payment

import "context"

// CheckoutInput carries everything the provider needs to open a hosted
// checkout page for one booking.
type CheckoutInput struct {
	BookingID     string
	ServiceName   string
	CustomerEmail string
	Amount        float64
	Currency      string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the provider's view of a checkout session. Amounts
// come back in minor units; the caller converts.
type SessionStatus struct {
	PaymentStatus  string
	AmountTotal    int64
	Currency       string
	CustomerEmail  string
	TransactionRef string
	Metadata       map[string]string
}

const StatusPaid = "paid"

// Paid reports whether the provider considers the session settled.
func (s *SessionStatus) Paid() bool {
	return s.PaymentStatus == StatusPaid
}

// Provider abstracts the payment gateway so usecases can be tested
// against a fake.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}
