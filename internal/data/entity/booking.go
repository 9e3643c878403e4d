package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAssigned   BookingStatus = "assigned"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// allowedTransitions is the forward-only lifecycle table. Cancellation is
// not listed: a booking is cancelled by deleting it through the owner
// path, never by a status update.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusAssigned},
	BookingStatusAssigned:   {BookingStatusInProgress},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusCompleted:  {},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAssigned, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal forward move from s.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether a booking in this status may still be
// cancelled by its owner. Once decorating has started the booking can
// only move forward.
func (s BookingStatus) Cancellable() bool {
	return s == BookingStatusPending || s == BookingStatusAssigned
}

// StatusHistory maps a status name to the moment it was entered.
// Append-only; stored as JSONB.
type StatusHistory map[string]time.Time

type Booking struct {
	Base
	ServiceID      uuid.UUID     `db:"service_id"`
	ServiceName    string        `db:"service_name"`
	UserEmail      string        `db:"user_email"`
	DecoratorEmail *string       `db:"decorator_email"`
	DecoratorName  *string       `db:"decorator_name"`
	BookingDate    time.Time     `db:"booking_date"`
	Venue          *string       `db:"venue"`
	Notes          *string       `db:"notes"`
	Status         BookingStatus `db:"status"`
	IsPaid         bool          `db:"is_paid"`
	PaymentID      *uuid.UUID    `db:"payment_id"`
	StatusHistory  StatusHistory `db:"status_history"`
	AssignedAt     *time.Time    `db:"assigned_at"`
	PaidAt         *time.Time    `db:"paid_at"`
}
