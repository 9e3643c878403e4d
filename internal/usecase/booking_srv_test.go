package usecase

import (
	"context"
	"testing"
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/internal/dto/request"
	"decor-marketplace/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedService(f *fakes, name string, price float64) *entity.Service {
	now := time.Now()
	service := &entity.Service{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:           name,
		Description:    "test service",
		Category:       "wedding",
		Price:          price,
		DecoratorEmail: "deco@example.com",
		IsActive:       true,
	}
	f.services.services[service.ID] = service
	return service
}

func seedBooking(f *fakes, service *entity.Service, userEmail string, status entity.BookingStatus) *entity.Booking {
	now := time.Now()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ServiceID:   service.ID,
		ServiceName: service.Name,
		UserEmail:   userEmail,
		BookingDate: now.AddDate(0, 1, 0),
		Status:      status,
		StatusHistory: entity.StatusHistory{
			string(entity.BookingStatusPending): now,
		},
	}
	f.bookings.bookings[booking.ID] = booking
	return booking
}

func seedDecorator(f *fakes, email, name string) *entity.User {
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:     name,
		Email:    email,
		Role:     entity.RoleDecorator,
		IsActive: true,
	}
	f.users.users[email] = user
	return user
}

func TestCreateBooking(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)

	req := &request.CreateBookingRequest{
		ServiceID:   service.ID.String(),
		BookingDate: time.Now().AddDate(0, 2, 0).Format("2006-01-02"),
	}

	booking, err := svc.Create(context.Background(), "alice@example.com", req)
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Equal(t, service.Name, booking.ServiceName)
	assert.False(t, booking.IsPaid)
	assert.Contains(t, booking.StatusHistory, string(entity.BookingStatusPending))
	assert.Equal(t, 1, f.services.increments)
	assert.Equal(t, int64(1), service.BookingCount)
}

func TestCreateBookingUnknownService(t *testing.T) {
	repo, _ := newFakes()
	svc := NewBookingService(repo, zap.NewNop())

	req := &request.CreateBookingRequest{
		ServiceID:   uuid.New().String(),
		BookingDate: "2026-10-01",
	}

	_, err := svc.Create(context.Background(), "alice@example.com", req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestCreateBookingInactiveService(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Retired Package", 900)
	service.IsActive = false

	req := &request.CreateBookingRequest{
		ServiceID:   service.ID.String(),
		BookingDate: "2026-10-01",
	}

	_, err := svc.Create(context.Background(), "alice@example.com", req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestAssignDecorator(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusPending)
	seedDecorator(f, "deco@example.com", "Dana")

	resp, err := svc.AssignDecorator(context.Background(), booking.ID, &request.AssignDecoratorRequest{
		DecoratorEmail: "deco@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusAssigned, resp.Status)
	require.NotNil(t, resp.DecoratorEmail)
	assert.Equal(t, "deco@example.com", *resp.DecoratorEmail)
	assert.NotNil(t, resp.AssignedAt)
	assert.Contains(t, resp.StatusHistory, string(entity.BookingStatusAssigned))
}

func TestAssignDecoratorNotPending(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusInProgress)
	seedDecorator(f, "deco@example.com", "Dana")

	_, err := svc.AssignDecorator(context.Background(), booking.ID, &request.AssignDecoratorRequest{
		DecoratorEmail: "deco@example.com",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUpdateStatusForward(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusAssigned)
	deco := "deco@example.com"
	booking.DecoratorEmail = &deco

	resp, err := svc.UpdateStatus(context.Background(), booking.ID, deco, string(entity.RoleDecorator), &request.UpdateBookingStatusRequest{
		Status: string(entity.BookingStatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusInProgress, resp.Status)
}

func TestUpdateStatusSkippingStep(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusPending)
	deco := "deco@example.com"
	booking.DecoratorEmail = &deco

	_, err := svc.UpdateStatus(context.Background(), booking.ID, deco, string(entity.RoleDecorator), &request.UpdateBookingStatusRequest{
		Status: string(entity.BookingStatusCompleted),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUpdateStatusWrongDecorator(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusAssigned)
	deco := "deco@example.com"
	booking.DecoratorEmail = &deco

	_, err := svc.UpdateStatus(context.Background(), booking.ID, "other@example.com", string(entity.RoleDecorator), &request.UpdateBookingStatusRequest{
		Status: string(entity.BookingStatusInProgress),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestCancelBooking(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusPending)

	err := svc.Cancel(context.Background(), booking.ID, "alice@example.com")
	require.NoError(t, err)

	assert.NotContains(t, f.bookings.bookings, booking.ID)
	assert.Equal(t, 1, f.services.decrements)
}

func TestCancelBookingNotOwner(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusPending)

	err := svc.Cancel(context.Background(), booking.ID, "mallory@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.Contains(t, f.bookings.bookings, booking.ID)
}

func TestCancelBookingPaid(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusAssigned)
	booking.IsPaid = true

	err := svc.Cancel(context.Background(), booking.ID, "alice@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Contains(t, f.bookings.bookings, booking.ID)
}

func TestCancelBookingInProgress(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusInProgress)

	err := svc.Cancel(context.Background(), booking.ID, "alice@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCancelBookingMissing(t *testing.T) {
	repo, _ := newFakes()
	svc := NewBookingService(repo, zap.NewNop())

	err := svc.Cancel(context.Background(), uuid.New(), "alice@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateBookingOwnerOnly(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusPending)

	venue := "Riverside Hall"
	_, err := svc.Update(context.Background(), booking.ID, "mallory@example.com", &request.UpdateBookingRequest{Venue: &venue})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	resp, err := svc.Update(context.Background(), booking.ID, "alice@example.com", &request.UpdateBookingRequest{Venue: &venue})
	require.NoError(t, err)
	require.NotNil(t, resp.Venue)
	assert.Equal(t, venue, *resp.Venue)
}

func TestGetBookingVisibility(t *testing.T) {
	repo, f := newFakes()
	svc := NewBookingService(repo, zap.NewNop())
	service := seedService(f, "Garden Wedding", 1500)
	booking := seedBooking(f, service, "alice@example.com", entity.BookingStatusAssigned)
	deco := "deco@example.com"
	booking.DecoratorEmail = &deco

	_, err := svc.Get(context.Background(), booking.ID, "alice@example.com", string(entity.RoleCustomer))
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), booking.ID, deco, string(entity.RoleDecorator))
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), booking.ID, "admin@example.com", string(entity.RoleAdmin))
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), booking.ID, "stranger@example.com", string(entity.RoleCustomer))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestListAllRejectsUnknownStatus(t *testing.T) {
	repo, _ := newFakes()
	svc := NewBookingService(repo, zap.NewNop())

	_, err := svc.ListAll(context.Background(), "paused", "", 1, 10)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestListAllRejectsUnknownSortField(t *testing.T) {
	repo, _ := newFakes()
	svc := NewBookingService(repo, zap.NewNop())

	_, err := svc.ListAll(context.Background(), "", "price", 1, 10)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestListByUserRejectsUnknownSortField(t *testing.T) {
	repo, _ := newFakes()
	svc := NewBookingService(repo, zap.NewNop())

	_, err := svc.ListByUser(context.Background(), "alice@example.com", "venue", 1, 10)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}
