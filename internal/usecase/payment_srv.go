package usecase

import (
	"context"
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/internal/dto/request"
	"decor-marketplace/internal/dto/response"
	"decor-marketplace/pkg/apperr"
	"decor-marketplace/pkg/payment"
	"decor-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	CreateCheckout(ctx context.Context, userEmail string, req *request.CreateCheckoutRequest) (*response.CheckoutResponse, error)
	VerifyAndSettle(ctx context.Context, userEmail string, req *request.VerifyPaymentRequest) (*response.PaymentResponse, error)
	ListForUser(ctx context.Context, email string) (*response.PaymentListResponse, error)
	ListForDecorator(ctx context.Context, email string) (*response.PaymentListResponse, error)
	ListAll(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.PaymentResponse], error)
}

type paymentService struct {
	repo     *repository.Repository
	provider payment.Provider
	config   *utils.Config
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, provider payment.Provider, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		provider: provider,
		config:   config,
		log:      log,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, userEmail string, req *request.CreateCheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperr.Invalid("invalid booking id")
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to load booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, apperr.Upstream(err, "failed to load booking")
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}

	if booking.UserEmail != userEmail {
		return nil, apperr.Forbidden("not allowed to pay for this booking")
	}

	if booking.IsPaid {
		return nil, apperr.Conflict("booking is already paid")
	}

	service, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil {
		s.log.Error("Failed to load service", zap.Error(err), zap.String("service_id", booking.ServiceID.String()))
		return nil, apperr.Upstream(err, "failed to load service")
	}
	if service == nil {
		return nil, apperr.Conflict("service behind this booking no longer exists")
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutInput{
		BookingID:     booking.ID.String(),
		ServiceName:   booking.ServiceName,
		CustomerEmail: userEmail,
		Amount:        service.Price,
		Currency:      s.config.Stripe.Currency,
	})
	if err != nil {
		return nil, apperr.Upstream(err, "payment provider unavailable")
	}

	s.log.Info("Checkout started",
		zap.String("booking_id", booking.ID.String()),
		zap.String("session_id", session.ID))

	return &response.CheckoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

func (s *paymentService) VerifyAndSettle(ctx context.Context, userEmail string, req *request.VerifyPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperr.Invalid("invalid booking id")
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to load booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, apperr.Upstream(err, "failed to load booking")
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}

	if booking.UserEmail != userEmail {
		return nil, apperr.Forbidden("not allowed to settle this booking")
	}

	status, err := s.provider.RetrieveSession(ctx, req.SessionID)
	if err != nil {
		return nil, apperr.Upstream(err, "payment provider unavailable")
	}

	if id, ok := status.Metadata["booking_id"]; ok && id != booking.ID.String() {
		return nil, apperr.Invalid("checkout session belongs to a different booking")
	}

	if !status.Paid() {
		return nil, apperr.Conflict("payment not completed, provider reports %q", status.PaymentStatus)
	}

	// Same session replayed: the earlier settlement is the answer.
	existing, err := s.repo.Payment.FindByBookingAndTransaction(ctx, bookingID, status.TransactionRef)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to check existing payment")
	}
	if existing != nil {
		resp := response.PaymentToResponse(existing)
		return &resp, nil
	}

	if booking.IsPaid {
		return nil, apperr.Conflict("booking is already paid")
	}

	// Amount comes from the provider, never from the client.
	now := time.Now()
	record := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		BookingID:     bookingID,
		UserEmail:     booking.UserEmail,
		Amount:        float64(status.AmountTotal) / 100,
		TransactionID: status.TransactionRef,
		ServiceName:   booking.ServiceName,
	}

	if err := s.repo.Payment.Create(ctx, record); err != nil {
		return nil, apperr.Upstream(err, "failed to record payment")
	}

	rows, err := s.repo.Booking.MarkPaid(ctx, bookingID, record.ID, now)
	if err != nil {
		// Payment row stays; the reconciler finishes the flip.
		s.log.Error("Failed to mark booking paid after recording payment",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_id", record.ID.String()))
		return nil, apperr.Upstream(err, "failed to settle booking")
	}

	if rows == 0 {
		// The flip lost: either a rival settlement won or the booking
		// vanished. Take our record back out.
		if err := s.repo.Payment.Delete(ctx, record.ID); err != nil {
			s.log.Error("Failed to roll back payment record",
				zap.Error(err),
				zap.String("payment_id", record.ID.String()))
		}

		current, err := s.repo.Booking.FindByID(ctx, bookingID)
		if err != nil {
			return nil, apperr.Upstream(err, "failed to check booking")
		}
		if current == nil {
			return nil, apperr.NotFound("booking was cancelled before settlement")
		}
		return nil, apperr.Conflict("booking is already paid")
	}

	s.log.Info("Booking settled",
		zap.String("booking_id", bookingID.String()),
		zap.String("payment_id", record.ID.String()),
		zap.String("transaction_id", record.TransactionID),
		zap.Float64("amount", record.Amount))

	resp := response.PaymentToResponse(record)
	return &resp, nil
}

func (s *paymentService) ListForUser(ctx context.Context, email string) (*response.PaymentListResponse, error) {
	payments, err := s.repo.Payment.FindByUserEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to list payments", zap.Error(err), zap.String("email", email))
		return nil, apperr.Upstream(err, "failed to list payments")
	}

	resp := response.PaymentsToResponse(payments)
	return &resp, nil
}

func (s *paymentService) ListForDecorator(ctx context.Context, email string) (*response.PaymentListResponse, error) {
	payments, err := s.repo.Payment.FindByDecoratorEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to list decorator payments", zap.Error(err), zap.String("email", email))
		return nil, apperr.Upstream(err, "failed to list payments")
	}

	resp := response.PaymentsToResponse(payments)
	return &resp, nil
}

func (s *paymentService) ListAll(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.PaymentResponse], error) {
	pagination := request.PaginatedRequest{Page: page, PerPage: perPage}

	payments, err := s.repo.Payment.FindAll(ctx, pagination.Limit(), pagination.Offset())
	if err != nil {
		s.log.Error("Failed to list payments", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to list payments")
	}

	total, err := s.repo.Payment.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count payments", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to list payments")
	}

	list := response.PaymentsToResponse(payments)
	return response.NewPaginatedResponse(list.Payments, pagination.Page, pagination.Limit(), total), nil
}
