package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusProcessing.IsValid())
	assert.True(t, StatusSent.IsValid())
	assert.True(t, StatusDelivered.IsValid())
	assert.False(t, Status("shipped").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusSent, true},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusSent, true},
		{StatusProcessing, StatusPending, false},
		{StatusSent, StatusDelivered, true},
		{StatusSent, StatusPending, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusSent, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrder_MarkSent(t *testing.T) {
	o := &Order{ID: uuid.New(), Status: StatusPending}
	at := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	o.MarkSent("A7DEL-ABCD1234-0305", at)

	assert.Equal(t, StatusSent, o.Status)
	assert.Equal(t, "A7DEL-ABCD1234-0305", o.TrackingNumber)
	assert.NotNil(t, o.SentAt)
	assert.Equal(t, at, *o.SentAt)
}
