package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserEmail(ctx context.Context, email, sortBy string, limit, offset int) ([]*entity.Booking, error)
	CountByUserEmail(ctx context.Context, email string) (int64, error)
	FindByDecoratorEmail(ctx context.Context, email string, limit, offset int) ([]*entity.Booking, error)
	CountByDecoratorEmail(ctx context.Context, email string) (int64, error)
	FindAll(ctx context.Context, status, sortBy string, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, status string) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)

	UpdateFields(ctx context.Context, id uuid.UUID, bookingDate time.Time, venue, notes *string) error
	Assign(ctx context.Context, id uuid.UUID, decoratorEmail, decoratorName string, assignedAt time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (int64, error)

	// DeleteUnpaid removes the booking only while it is still unpaid,
	// still cancellable and owned by email. The returned row count tells
	// the caller whether the conditional delete won.
	DeleteUnpaid(ctx context.Context, id uuid.UUID, email string) (int64, error)

	// MarkPaid flips the paid flag only if it is not already set, so a
	// replayed settlement is a no-op at the store.
	MarkPaid(ctx context.Context, id uuid.UUID, paymentID uuid.UUID, paidAt time.Time) (int64, error)

	FindUnpaidOlderThan(ctx context.Context, cutoff time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, service_id, service_name, user_email, decorator_email, decorator_name,
	booking_date, venue, notes, status, is_paid, payment_id, status_history,
	assigned_at, paid_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var history []byte
	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.UserEmail,
		&booking.DecoratorEmail,
		&booking.DecoratorName,
		&booking.BookingDate,
		&booking.Venue,
		&booking.Notes,
		&booking.Status,
		&booking.IsPaid,
		&booking.PaymentID,
		&history,
		&booking.AssignedAt,
		&booking.PaidAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(history) > 0 {
		if err := json.Unmarshal(history, &booking.StatusHistory); err != nil {
			return nil, fmt.Errorf("decode status history: %w", err)
		}
	}

	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	history, err := json.Marshal(booking.StatusHistory)
	if err != nil {
		return fmt.Errorf("encode status history: %w", err)
	}

	query := `
		INSERT INTO bookings (id, service_id, service_name, user_email, booking_date,
		                      venue, notes, status, is_paid, status_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11, $12)
	`

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.ServiceID,
		booking.ServiceName,
		booking.UserEmail,
		booking.BookingDate,
		booking.Venue,
		booking.Notes,
		booking.Status,
		booking.IsPaid,
		string(history),
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("service_id", booking.ServiceID.String()),
			zap.String("user_email", booking.UserEmail),
		)
		return fmt.Errorf("create booking for service %s: %w", booking.ServiceID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

// bookingOrderColumn maps a caller-facing sort field to a column.
// sortBy is validated upstream against a closed set, never raw input.
func bookingOrderColumn(sortBy string) string {
	if sortBy == "booking_date" {
		return "booking_date"
	}
	return "created_at"
}

func (r *bookingRepository) findByEmailColumn(ctx context.Context, column, email, sortBy string, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ` + column + ` = $1
		ORDER BY ` + bookingOrderColumn(sortBy) + ` DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, email, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("list bookings for %s: %w", email, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByUserEmail(ctx context.Context, email, sortBy string, limit, offset int) ([]*entity.Booking, error) {
	return r.findByEmailColumn(ctx, "user_email", email, sortBy, limit, offset)
}

func (r *bookingRepository) CountByUserEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_email = $1`, email).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count user bookings", zap.Error(err), zap.String("email", email))
		return 0, fmt.Errorf("count bookings for %s: %w", email, err)
	}
	return count, nil
}

func (r *bookingRepository) FindByDecoratorEmail(ctx context.Context, email string, limit, offset int) ([]*entity.Booking, error) {
	return r.findByEmailColumn(ctx, "decorator_email", email, "", limit, offset)
}

func (r *bookingRepository) CountByDecoratorEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE decorator_email = $1`, email).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count decorator bookings", zap.Error(err), zap.String("email", email))
		return 0, fmt.Errorf("count bookings for decorator %s: %w", email, err)
	}
	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status, sortBy string, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1 = '' OR status = $1)
		ORDER BY ` + bookingOrderColumn(sortBy) + ` DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list all bookings", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE ($1 = '' OR status = $1)`, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count row: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}

func (r *bookingRepository) UpdateFields(ctx context.Context, id uuid.UUID, bookingDate time.Time, venue, notes *string) error {
	query := `
		UPDATE bookings
		SET booking_date = $2, venue = $3, notes = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, bookingDate, venue, notes)
	if err != nil {
		r.log.Error("Failed to update booking fields",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("update booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) Assign(ctx context.Context, id uuid.UUID, decoratorEmail, decoratorName string, assignedAt time.Time) (int64, error) {
	// Conditioned on status = 'pending' so two concurrent assignments
	// cannot both win.
	query := `
		UPDATE bookings
		SET decorator_email = $2,
		    decorator_name = $3,
		    status = $4,
		    assigned_at = $5,
		    status_history = status_history || jsonb_build_object($4::text, to_jsonb($5::timestamptz)),
		    updated_at = NOW()
		WHERE id = $1 AND status = $6
	`

	result, err := r.db.Exec(ctx, query,
		id,
		decoratorEmail,
		decoratorName,
		entity.BookingStatusAssigned,
		assignedAt,
		entity.BookingStatusPending,
	)
	if err != nil {
		r.log.Error("Failed to assign decorator",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("decorator_email", decoratorEmail),
		)
		return 0, fmt.Errorf("assign decorator to booking %s: %w", id.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $3,
		    status_history = status_history || jsonb_build_object($3::text, to_jsonb(NOW())),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return 0, fmt.Errorf("update booking %s status: %w", id.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) DeleteUnpaid(ctx context.Context, id uuid.UUID, email string) (int64, error) {
	query := `
		DELETE FROM bookings
		WHERE id = $1
		  AND user_email = $2
		  AND is_paid = FALSE
		  AND status IN ($3, $4)
	`

	result, err := r.db.Exec(ctx, query, id, email,
		entity.BookingStatusPending, entity.BookingStatusAssigned)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return 0, fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, paymentID uuid.UUID, paidAt time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET is_paid = TRUE, payment_id = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1 AND is_paid = FALSE
	`

	result, err := r.db.Exec(ctx, query, id, paymentID, paidAt)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("payment_id", paymentID.String()),
		)
		return 0, fmt.Errorf("mark booking %s paid: %w", id.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) FindUnpaidOlderThan(ctx context.Context, cutoff time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE is_paid = FALSE AND created_at < $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to list unpaid bookings", zap.Error(err))
		return nil, fmt.Errorf("list unpaid bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}
