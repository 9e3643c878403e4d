package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

type stripeProvider struct {
	client      *stripe.Client
	frontendURL string
	timeout     time.Duration
	log         *zap.Logger
}

// NewStripeProvider builds a Provider backed by Stripe Checkout.
// frontendURL anchors the success and cancel redirects.
func NewStripeProvider(secretKey, frontendURL string, timeout time.Duration, log *zap.Logger) Provider {
	return &stripeProvider{
		client:      stripe.NewClient(secretKey),
		frontendURL: frontendURL,
		timeout:     timeout,
		log:         log.With(zap.String("provider", "stripe")),
	}
}

// MinorUnits converts a decimal amount to the integer cents Stripe
// expects.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (p *stripeProvider) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionCreateParams{
		Mode:          stripe.String("payment"),
		SuccessURL:    stripe.String(fmt.Sprintf("%s/checkout/success?session_id={CHECKOUT_SESSION_ID}", p.frontendURL)),
		CancelURL:     stripe.String(fmt.Sprintf("%s/checkout/cancel", p.frontendURL)),
		CustomerEmail: stripe.String(in.CustomerEmail),
		Metadata: map[string]string{
			"booking_id": in.BookingID,
		},
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(in.Currency),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(in.ServiceName),
					},
					UnitAmount: stripe.Int64(MinorUnits(in.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	session, err := p.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		p.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("booking_id", in.BookingID),
		)
		return nil, fmt.Errorf("create checkout session for booking %s: %w", in.BookingID, err)
	}

	p.log.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.String("booking_id", in.BookingID),
	)

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (p *stripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	session, err := p.client.V1CheckoutSessions.Retrieve(ctx, sessionID, &stripe.CheckoutSessionRetrieveParams{})
	if err != nil {
		p.log.Error("Failed to retrieve checkout session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("retrieve checkout session %s: %w", sessionID, err)
	}

	status := &SessionStatus{
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
		TransactionRef: func() string {
			if session.PaymentIntent != nil {
				return session.PaymentIntent.ID
			}
			return session.ID
		}(),
		Metadata: session.Metadata,
	}
	if session.CustomerEmail != "" {
		status.CustomerEmail = session.CustomerEmail
	} else if session.CustomerDetails != nil {
		status.CustomerEmail = session.CustomerDetails.Email
	}

	return status, nil
}
