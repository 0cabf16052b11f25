package payments

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sevadaan/donation-backend-go/models"
)

func donationFixture(store *memStore) (DonationEvent, primitive.ObjectID) {
	campaignID := primitive.NewObjectID()
	store.campaigns[campaignID] = &models.Campaign{ID: campaignID, Title: "Flood Relief", Status: "ACTIVE"}
	return DonationEvent{
		Payment:     "pay_1",
		Order:       "order_1",
		AmountMinor: 50000,
		CampaignID:  campaignID,
	}, campaignID
}

func bookingFixture(store *memStore) (BookingEvent, primitive.ObjectID, primitive.ObjectID) {
	eventID := primitive.NewObjectID()
	bookingID := primitive.NewObjectID()
	store.events[eventID] = &models.Event{ID: eventID, Capacity: 100, SeatsSold: 0}
	store.bookings[bookingID] = &models.Booking{ID: bookingID, EventID: eventID, Seats: 3, Status: "PENDING"}
	return BookingEvent{
		Payment:     "pay_b1",
		Order:       "order_b1",
		AmountMinor: 150000,
		BookingID:   bookingID,
		EventID:     eventID,
		Seats:       3,
	}, bookingID, eventID
}

func TestApplyDonation(t *testing.T) {
	store := newMemStore()
	ev, campaignID := donationFixture(store)
	applier := NewApplier(store, "INR")

	res, err := applier.Apply(context.Background(), ev)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.NotEmpty(t, res.ResultID)

	// 50000 paise -> 500 rupees
	d := store.donations["pay_1"]
	require.NotNil(t, d)
	assert.Equal(t, 500.0, d.Amount)
	assert.Equal(t, 500.0, store.campaigns[campaignID].TotalRaised)
}

func TestApplyDonationIdempotent(t *testing.T) {
	store := newMemStore()
	ev, campaignID := donationFixture(store)
	applier := NewApplier(store, "INR")

	first, err := applier.Apply(context.Background(), ev)
	require.NoError(t, err)
	require.True(t, first.Applied)

	// Webhook retry: same paymentId, no double count.
	second, err := applier.Apply(context.Background(), ev)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, first.ResultID, second.ResultID)

	assert.Len(t, store.donations, 1)
	assert.Equal(t, 500.0, store.campaigns[campaignID].TotalRaised)
}

func TestApplyDonationConcurrent(t *testing.T) {
	store := newMemStore()
	ev, campaignID := donationFixture(store)
	applier := NewApplier(store, "INR")

	const n = 32
	var wg sync.WaitGroup
	results := make([]Result, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			res, err := applier.Apply(context.Background(), ev)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	applied := 0
	for _, res := range results {
		if res.Applied {
			applied++
		}
		assert.Equal(t, results[0].ResultID, res.ResultID)
	}
	assert.Equal(t, 1, applied)
	assert.Len(t, store.donations, 1)
	assert.Equal(t, 500.0, store.campaigns[campaignID].TotalRaised)
}

func TestApplyDonationAborted(t *testing.T) {
	store := newMemStore()
	ev, campaignID := donationFixture(store)
	store.failRecord = true
	applier := NewApplier(store, "INR")

	_, err := applier.Apply(context.Background(), ev)
	require.Error(t, err)

	// Nothing partial: no record, no increment.
	assert.Empty(t, store.donations)
	assert.Equal(t, 0.0, store.campaigns[campaignID].TotalRaised)

	// Retry after the failure succeeds cleanly.
	store.failRecord = false
	res, err := applier.Apply(context.Background(), ev)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 500.0, store.campaigns[campaignID].TotalRaised)
}

func TestApplyBooking(t *testing.T) {
	store := newMemStore()
	ev, bookingID, eventID := bookingFixture(store)
	applier := NewApplier(store, "INR")

	res, err := applier.Apply(context.Background(), ev)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, bookingID.Hex(), res.ResultID)

	booking := store.bookings[bookingID]
	assert.Equal(t, "CONFIRMED", booking.Status)
	assert.True(t, booking.IsPaid)
	assert.Equal(t, "pay_b1", booking.PaymentID)
	assert.Equal(t, 3, store.events[eventID].SeatsSold)
}

func TestApplyBookingIdempotent(t *testing.T) {
	store := newMemStore()
	ev, _, eventID := bookingFixture(store)
	applier := NewApplier(store, "INR")

	first, err := applier.Apply(context.Background(), ev)
	require.NoError(t, err)
	require.True(t, first.Applied)

	second, err := applier.Apply(context.Background(), ev)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, first.ResultID, second.ResultID)

	// Seats counted once.
	assert.Equal(t, 3, store.events[eventID].SeatsSold)
}

func TestApplyBookingNotFound(t *testing.T) {
	store := newMemStore()
	applier := NewApplier(store, "INR")

	_, err := applier.Apply(context.Background(), BookingEvent{
		Payment:   "pay_x",
		Order:     "order_x",
		BookingID: primitive.NewObjectID(),
		EventID:   primitive.NewObjectID(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
