package jobs

import (
	"context"
	"time"

	"decor-marketplace/internal/data/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reconciler sweeps for bookings whose payment record exists but whose
// paid flag never flipped, which happens when the process dies between
// recording the payment and marking the booking.
type Reconciler struct {
	repo *repository.Repository
	cron *cron.Cron
	log  *zap.Logger
}

func NewReconciler(repo *repository.Repository, log *zap.Logger) *Reconciler {
	return &Reconciler{
		repo: repo,
		cron: cron.New(),
		log:  log.With(zap.String("job", "reconciler")),
	}
}

func (r *Reconciler) Start() error {
	if _, err := r.cron.AddFunc("*/5 * * * *", r.sweep); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info("Payment reconciler started")
	return nil
}

func (r *Reconciler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Reconciler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Leave fresh bookings alone, a settle may be in flight.
	cutoff := time.Now().Add(-10 * time.Minute)

	bookings, err := r.repo.Booking.FindUnpaidOlderThan(ctx, cutoff)
	if err != nil {
		r.log.Error("Sweep failed to list unpaid bookings", zap.Error(err))
		return
	}

	var repaired int
	for _, booking := range bookings {
		payment, err := r.repo.Payment.FindByBookingID(ctx, booking.ID)
		if err != nil {
			r.log.Error("Sweep failed to check payment",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()))
			continue
		}
		if payment == nil {
			continue
		}

		rows, err := r.repo.Booking.MarkPaid(ctx, booking.ID, payment.ID, payment.CreatedAt)
		if err != nil {
			r.log.Error("Sweep failed to repair booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()))
			continue
		}
		if rows > 0 {
			repaired++
			r.log.Warn("Repaired half-settled booking",
				zap.String("booking_id", booking.ID.String()),
				zap.String("payment_id", payment.ID.String()))
		}
	}

	if repaired > 0 {
		r.log.Info("Sweep finished", zap.Int("repaired", repaired))
	}

	// Settlement deletes its own payment when the booking vanished, so
	// an orphan here means that cleanup was interrupted too.
	orphans, err := r.repo.Payment.FindOrphaned(ctx, cutoff)
	if err != nil {
		r.log.Error("Sweep failed to list orphaned payments", zap.Error(err))
		return
	}
	for _, payment := range orphans {
		r.log.Warn("Payment references a deleted booking",
			zap.String("payment_id", payment.ID.String()),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("transaction_id", payment.TransactionID))
	}
}
