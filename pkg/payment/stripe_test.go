package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(150000), MinorUnits(1500))
	assert.Equal(t, int64(1999), MinorUnits(19.99))
	assert.Equal(t, int64(1), MinorUnits(0.01))
	assert.Equal(t, int64(0), MinorUnits(0))

	// Float representation must not lose a cent.
	assert.Equal(t, int64(2999), MinorUnits(29.99))
}

func TestSessionStatusPaid(t *testing.T) {
	assert.True(t, (&SessionStatus{PaymentStatus: StatusPaid}).Paid())
	assert.False(t, (&SessionStatus{PaymentStatus: "unpaid"}).Paid())
	assert.False(t, (&SessionStatus{}).Paid())
}
