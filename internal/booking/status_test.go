package booking_test

import (
	"testing"

	"marketplace-booking/internal/booking"

	"github.com/stretchr/testify/assert"
)

func TestStatus_TransitionTable(t *testing.T) {
	cases := []struct {
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{booking.StatusPending, booking.StatusAccepted, true},
		{booking.StatusPending, booking.StatusRejected, true},
		{booking.StatusPending, booking.StatusCancelled, true},
		{booking.StatusPending, booking.StatusPaid, false},
		{booking.StatusAccepted, booking.StatusPaid, true},
		{booking.StatusAccepted, booking.StatusCancelled, true},
		{booking.StatusAccepted, booking.StatusAccepted, false},
		{booking.StatusAccepted, booking.StatusRejected, false},
		{booking.StatusRejected, booking.StatusAccepted, false},
		{booking.StatusCancelled, booking.StatusPaid, false},
		{booking.StatusPaid, booking.StatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, booking.StatusPending.IsTerminal())
	assert.False(t, booking.StatusAccepted.IsTerminal())
	assert.True(t, booking.StatusRejected.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusPaid.IsTerminal())
}

func TestStatus_TerminalStatesAllowNothing(t *testing.T) {
	terminals := []booking.Status{booking.StatusRejected, booking.StatusCancelled, booking.StatusPaid}
	all := []booking.Status{
		booking.StatusPending, booking.StatusAccepted, booking.StatusRejected,
		booking.StatusCancelled, booking.StatusPaid,
	}

	for _, from := range terminals {
		for _, to := range all {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s must be illegal", from, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	status, err := booking.ParseStatus("accepted")
	assert.NoError(t, err)
	assert.Equal(t, booking.StatusAccepted, status)

	_, err = booking.ParseStatus("confirmed")
	assert.Error(t, err)
}

func TestNewInvalidTransition(t *testing.T) {
	err := booking.NewInvalidTransition(booking.StatusPaid, booking.StatusCancelled)
	assert.ErrorIs(t, err, booking.ErrInvalidStateTransition)
	assert.Contains(t, err.Error(), "paid")
	assert.Contains(t, err.Error(), "cancelled")
}
