package jobs

import (
	"context"
	"testing"
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubBookingRepo struct {
	repository.BookingRepository
	unpaid []*entity.Booking
	marked map[uuid.UUID]uuid.UUID
}

func (s *stubBookingRepo) FindUnpaidOlderThan(ctx context.Context, cutoff time.Time) ([]*entity.Booking, error) {
	return s.unpaid, nil
}

func (s *stubBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentID uuid.UUID, paidAt time.Time) (int64, error) {
	if s.marked == nil {
		s.marked = make(map[uuid.UUID]uuid.UUID)
	}
	s.marked[id] = paymentID
	return 1, nil
}

type stubPaymentRepo struct {
	repository.PaymentRepository
	byBooking map[uuid.UUID]*entity.Payment
	orphans   []*entity.Payment
}

func (s *stubPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	return s.byBooking[bookingID], nil
}

func (s *stubPaymentRepo) FindOrphaned(ctx context.Context, cutoff time.Time) ([]*entity.Payment, error) {
	return s.orphans, nil
}

func TestSweepRepairsHalfSettledBooking(t *testing.T) {
	settled := &entity.Booking{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)},
		Status: entity.BookingStatusAssigned,
	}
	untouched := &entity.Booking{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)},
		Status: entity.BookingStatusPending,
	}

	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().Add(-30 * time.Minute)},
		BookingID:  settled.ID,
		Amount:     1500,
	}

	bookings := &stubBookingRepo{unpaid: []*entity.Booking{settled, untouched}}
	payments := &stubPaymentRepo{byBooking: map[uuid.UUID]*entity.Payment{settled.ID: payment}}

	r := NewReconciler(&repository.Repository{Booking: bookings, Payment: payments}, zap.NewNop())
	r.sweep()

	// The booking with a recorded payment gets its flag repaired, the
	// genuinely unpaid one is left alone.
	assert.Equal(t, payment.ID, bookings.marked[settled.ID])
	assert.NotContains(t, bookings.marked, untouched.ID)
}
