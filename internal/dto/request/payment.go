package request

type CreateCheckoutRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type VerifyPaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	SessionID string `json:"session_id" validate:"required"`
}
