package repository

import (
	"context"
	"fmt"
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingAndTransaction(ctx context.Context, bookingID uuid.UUID, transactionID string) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindByUserEmail(ctx context.Context, email string) ([]*entity.Payment, error)
	FindByDecoratorEmail(ctx context.Context, email string) ([]*entity.Payment, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Payment, error)
	FindOrphaned(ctx context.Context, cutoff time.Time) ([]*entity.Payment, error)
	CountAll(ctx context.Context) (int64, error)
	SumAmount(ctx context.Context) (float64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, user_email, amount, transaction_id, service_name, created_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.UserEmail,
		&payment.Amount,
		&payment.TransactionID,
		&payment.ServiceName,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, user_email, amount, transaction_id, service_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.UserEmail,
		payment.Amount,
		payment.TransactionID,
		payment.ServiceName,
		payment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("transaction_id", payment.TransactionID),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingAndTransaction(ctx context.Context, bookingID uuid.UUID, transactionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 AND transaction_id = $2`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID, transactionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking and transaction",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("transaction_id", transactionID),
		)
		return nil, fmt.Errorf("find payment for booking %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC LIMIT 1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment for booking %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*entity.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *paymentRepository) FindByUserEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_email = $1 ORDER BY created_at DESC`

	payments, err := r.queryPayments(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to list payments by user",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("list payments for %s: %w", email, err)
	}

	return payments, nil
}

func (r *paymentRepository) FindByDecoratorEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	query := `
		SELECT p.id, p.booking_id, p.user_email, p.amount, p.transaction_id, p.service_name, p.created_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.decorator_email = $1
		ORDER BY p.created_at DESC
	`

	payments, err := r.queryPayments(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to list payments by decorator",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("list payments for decorator %s: %w", email, err)
	}

	return payments, nil
}

func (r *paymentRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	payments, err := r.queryPayments(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}

// FindOrphaned returns payments older than cutoff whose booking no
// longer exists.
func (r *paymentRepository) FindOrphaned(ctx context.Context, cutoff time.Time) ([]*entity.Payment, error) {
	query := `
		SELECT p.id, p.booking_id, p.user_email, p.amount, p.transaction_id, p.service_name, p.created_at
		FROM payments p
		LEFT JOIN bookings b ON b.id = p.booking_id
		WHERE b.id IS NULL AND p.created_at < $1
		ORDER BY p.created_at ASC
	`

	payments, err := r.queryPayments(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to list orphaned payments", zap.Error(err))
		return nil, fmt.Errorf("list orphaned payments: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count); err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return count, nil
}

func (r *paymentRepository) SumAmount(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments`).Scan(&total); err != nil {
		r.log.Error("Failed to sum payment amounts", zap.Error(err))
		return 0, fmt.Errorf("sum payment amounts: %w", err)
	}
	return total, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete payment",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return fmt.Errorf("delete payment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", id.String())
	}

	r.log.Warn("Payment record deleted", zap.String("payment_id", id.String()))
	return nil
}
