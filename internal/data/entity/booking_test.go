package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusValid(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusPending,
		BookingStatusAssigned,
		BookingStatusInProgress,
		BookingStatusCompleted,
		BookingStatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, BookingStatus("paused").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusAssigned, true},
		{BookingStatusAssigned, BookingStatusInProgress, true},
		{BookingStatusInProgress, BookingStatusCompleted, true},

		// No skipping steps.
		{BookingStatusPending, BookingStatusInProgress, false},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusAssigned, BookingStatusCompleted, false},

		// No moving backwards.
		{BookingStatusAssigned, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusInProgress, false},

		// Cancellation never travels through a status update.
		{BookingStatusPending, BookingStatusCancelled, false},
		{BookingStatusAssigned, BookingStatusCancelled, false},

		// Terminal.
		{BookingStatusCompleted, BookingStatusAssigned, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusCancellable(t *testing.T) {
	assert.True(t, BookingStatusPending.Cancellable())
	assert.True(t, BookingStatusAssigned.Cancellable())
	assert.False(t, BookingStatusInProgress.Cancellable())
	assert.False(t, BookingStatusCompleted.Cancellable())
	assert.False(t, BookingStatusCancelled.Cancellable())
}
