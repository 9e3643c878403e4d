package usecase

import (
	"context"
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/internal/dto/request"
	"decor-marketplace/internal/dto/response"
	"decor-marketplace/pkg/apperr"
	"decor-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	Create(ctx context.Context, userEmail string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Get(ctx context.Context, id uuid.UUID, email, role string) (*response.BookingResponse, error)
	ListByUser(ctx context.Context, email, sortBy string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error)
	ListByDecorator(ctx context.Context, email string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error)
	ListAll(ctx context.Context, status, sortBy string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error)
	Update(ctx context.Context, id uuid.UUID, userEmail string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	AssignDecorator(ctx context.Context, id uuid.UUID, req *request.AssignDecoratorRequest) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, email, role string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, userEmail string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log,
	}
}

func (s *bookingService) Create(ctx context.Context, userEmail string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperr.Invalid("invalid service id")
	}

	bookingDate, err := utils.ParseDate(req.BookingDate)
	if err != nil {
		return nil, apperr.Invalid("invalid booking date, expected %s", utils.DateFormat)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to check service", zap.Error(err), zap.String("service_id", serviceID.String()))
		return nil, apperr.Upstream(err, "failed to check service")
	}
	if service == nil || !service.IsActive {
		return nil, apperr.Invalid("service not available")
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ServiceID:   service.ID,
		ServiceName: service.Name,
		UserEmail:   userEmail,
		BookingDate: bookingDate,
		Venue:       req.Venue,
		Notes:       req.Notes,
		Status:      entity.BookingStatusPending,
		StatusHistory: entity.StatusHistory{
			string(entity.BookingStatusPending): now,
		},
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("service_id", service.ID.String()),
			zap.String("user_email", userEmail))
		return nil, apperr.Upstream(err, "failed to create booking")
	}

	// Counter is advisory. A failed bump is logged, never surfaced.
	if err := s.repo.Service.IncrementBookingCount(ctx, service.ID); err != nil {
		s.log.Warn("Failed to bump booking count",
			zap.Error(err),
			zap.String("service_id", service.ID.String()))
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("service_id", service.ID.String()),
		zap.String("user_email", userEmail))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Get(ctx context.Context, id uuid.UUID, email, role string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canViewBooking(booking, email, role) {
		return nil, apperr.Forbidden("not allowed to view this booking")
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func validSortField(sortBy string) bool {
	return sortBy == "" || sortBy == "created_at" || sortBy == "booking_date"
}

func canViewBooking(booking *entity.Booking, email, role string) bool {
	if role == string(entity.RoleAdmin) {
		return true
	}
	if booking.UserEmail == email {
		return true
	}
	return booking.DecoratorEmail != nil && *booking.DecoratorEmail == email
}

func (s *bookingService) ListByUser(ctx context.Context, email, sortBy string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	if !validSortField(sortBy) {
		return nil, apperr.Invalid("unknown sort field %q", sortBy)
	}

	pagination := request.PaginatedRequest{Page: page, PerPage: perPage}

	bookings, err := s.repo.Booking.FindByUserEmail(ctx, email, sortBy, pagination.Limit(), pagination.Offset())
	if err != nil {
		s.log.Error("Failed to list user bookings", zap.Error(err), zap.String("email", email))
		return nil, apperr.Upstream(err, "failed to list bookings")
	}

	total, err := s.repo.Booking.CountByUserEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err), zap.String("email", email))
		return nil, apperr.Upstream(err, "failed to list bookings")
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), pagination.Page, pagination.Limit(), total), nil
}

func (s *bookingService) ListByDecorator(ctx context.Context, email string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	pagination := request.PaginatedRequest{Page: page, PerPage: perPage}

	bookings, err := s.repo.Booking.FindByDecoratorEmail(ctx, email, pagination.Limit(), pagination.Offset())
	if err != nil {
		s.log.Error("Failed to list decorator bookings", zap.Error(err), zap.String("email", email))
		return nil, apperr.Upstream(err, "failed to list bookings")
	}

	total, err := s.repo.Booking.CountByDecoratorEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to count decorator bookings", zap.Error(err), zap.String("email", email))
		return nil, apperr.Upstream(err, "failed to list bookings")
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), pagination.Page, pagination.Limit(), total), nil
}

func (s *bookingService) ListAll(ctx context.Context, status, sortBy string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	if status != "" && !entity.BookingStatus(status).Valid() {
		return nil, apperr.Invalid("unknown status %q", status)
	}
	if !validSortField(sortBy) {
		return nil, apperr.Invalid("unknown sort field %q", sortBy)
	}

	pagination := request.PaginatedRequest{Page: page, PerPage: perPage}

	bookings, err := s.repo.Booking.FindAll(ctx, status, sortBy, pagination.Limit(), pagination.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to list bookings")
	}

	total, err := s.repo.Booking.CountAll(ctx, status)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to list bookings")
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), pagination.Page, pagination.Limit(), total), nil
}

func (s *bookingService) Update(ctx context.Context, id uuid.UUID, userEmail string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserEmail != userEmail {
		return nil, apperr.Forbidden("not allowed to modify this booking")
	}

	if booking.Status == entity.BookingStatusCompleted {
		return nil, apperr.Conflict("completed booking can no longer be changed")
	}

	bookingDate := booking.BookingDate
	if req.BookingDate != nil {
		parsed, err := utils.ParseDate(*req.BookingDate)
		if err != nil {
			return nil, apperr.Invalid("invalid booking date, expected %s", utils.DateFormat)
		}
		bookingDate = parsed
	}

	venue := booking.Venue
	if req.Venue != nil {
		venue = req.Venue
	}
	notes := booking.Notes
	if req.Notes != nil {
		notes = req.Notes
	}

	if err := s.repo.Booking.UpdateFields(ctx, id, bookingDate, venue, notes); err != nil {
		s.log.Error("Failed to update booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, apperr.Upstream(err, "failed to update booking")
	}

	booking.BookingDate = bookingDate
	booking.Venue = venue
	booking.Notes = notes

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) AssignDecorator(ctx context.Context, id uuid.UUID, req *request.AssignDecoratorRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	decorator, err := s.repo.User.FindByEmail(ctx, req.DecoratorEmail)
	if err != nil {
		s.log.Error("Failed to check decorator", zap.Error(err), zap.String("email", req.DecoratorEmail))
		return nil, apperr.Upstream(err, "failed to check decorator")
	}
	if decorator == nil || decorator.Role != entity.RoleDecorator {
		return nil, apperr.Invalid("decorator %s not found", req.DecoratorEmail)
	}

	assignedAt := time.Now()
	rows, err := s.repo.Booking.Assign(ctx, id, decorator.Email, decorator.Name, assignedAt)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to assign decorator")
	}

	if rows == 0 {
		// The conditional update lost. Re-read to tell missing from
		// already-advanced.
		booking, err := s.repo.Booking.FindByID(ctx, id)
		if err != nil {
			return nil, apperr.Upstream(err, "failed to check booking")
		}
		if booking == nil {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Conflict("booking is %s, only pending bookings can be assigned", booking.Status)
	}

	s.log.Info("Decorator assigned",
		zap.String("booking_id", id.String()),
		zap.String("decorator_email", decorator.Email))

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id uuid.UUID, email, role string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	next := entity.BookingStatus(req.Status)
	if !next.Valid() {
		return nil, apperr.Invalid("unknown status %q", req.Status)
	}

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if role != string(entity.RoleAdmin) {
		if booking.DecoratorEmail == nil || *booking.DecoratorEmail != email {
			return nil, apperr.Forbidden("only the assigned decorator can update this booking")
		}
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, apperr.Conflict("cannot move booking from %s to %s", booking.Status, next)
	}

	rows, err := s.repo.Booking.UpdateStatus(ctx, id, booking.Status, next)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to update status")
	}

	if rows == 0 {
		// Someone advanced the booking between read and update.
		return nil, apperr.Conflict("booking status changed concurrently, retry")
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", id.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(next)))

	booking, err = s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Cancel(ctx context.Context, id uuid.UUID, userEmail string) error {
	// Single conditional delete carries the whole policy: owned,
	// unpaid, still cancellable.
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return apperr.Upstream(err, "failed to load booking")
	}
	if booking == nil {
		return apperr.NotFound("booking not found")
	}

	rows, err := s.repo.Booking.DeleteUnpaid(ctx, id, userEmail)
	if err != nil {
		return apperr.Upstream(err, "failed to cancel booking")
	}

	if rows == 0 {
		// Classify the refusal from current state.
		current, err := s.repo.Booking.FindByID(ctx, id)
		if err != nil {
			return apperr.Upstream(err, "failed to check booking")
		}
		if current == nil {
			return apperr.NotFound("booking not found")
		}
		if current.UserEmail != userEmail {
			return apperr.Forbidden("not allowed to cancel this booking")
		}
		if current.IsPaid {
			return apperr.Conflict("paid booking cannot be cancelled")
		}
		return apperr.Conflict("booking is %s and can no longer be cancelled", current.Status)
	}

	if err := s.repo.Service.DecrementBookingCount(ctx, booking.ServiceID); err != nil {
		s.log.Warn("Failed to lower booking count",
			zap.Error(err),
			zap.String("service_id", booking.ServiceID.String()))
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", id.String()),
		zap.String("user_email", userEmail))

	return nil
}

func (s *bookingService) loadBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, apperr.Upstream(err, "failed to load booking")
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}
	return booking, nil
}
