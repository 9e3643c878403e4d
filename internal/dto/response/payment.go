package response

import (
	"time"

	"decor-marketplace/internal/data/entity"
)

type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	UserEmail     string    `json:"user_email"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transaction_id"`
	ServiceName   string    `json:"service_name"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaymentListResponse struct {
	Payments    []PaymentResponse `json:"payments"`
	TotalAmount float64           `json:"total_amount"`
}

// Helper converters
func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		UserEmail:     payment.UserEmail,
		Amount:        payment.Amount,
		TransactionID: payment.TransactionID,
		ServiceName:   payment.ServiceName,
		CreatedAt:     payment.CreatedAt,
	}
}

func PaymentsToResponse(payments []*entity.Payment) PaymentListResponse {
	resp := PaymentListResponse{Payments: make([]PaymentResponse, 0, len(payments))}
	for _, payment := range payments {
		resp.Payments = append(resp.Payments, PaymentToResponse(payment))
		resp.TotalAmount += payment.Amount
	}
	return resp
}
