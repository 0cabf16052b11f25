package payments

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func capturedPayload(notes string) []byte {
	return []byte(fmt.Sprintf(`{
		"event": "payment.captured",
		"payload": {"payment": {"entity": {
			"id": "pay_1",
			"order_id": "order_1",
			"amount": 50000,
			"notes": %s
		}}}
	}`, notes))
}

func TestParseWebhookDonation(t *testing.T) {
	campaignID := primitive.NewObjectID()
	body := capturedPayload(fmt.Sprintf(`{"purpose": "donation", "campaignId": "%s", "donorName": "Asha", "donorEmail": "asha@example.com"}`, campaignID.Hex()))

	ev, err := ParseWebhook(body)
	require.NoError(t, err)

	d, ok := ev.(DonationEvent)
	require.True(t, ok)
	assert.Equal(t, "pay_1", d.Payment)
	assert.Equal(t, "order_1", d.Order)
	assert.Equal(t, int64(50000), d.AmountMinor)
	assert.Equal(t, campaignID, d.CampaignID)
	assert.Equal(t, "Asha", d.DonorName)
}

func TestParseWebhookBooking(t *testing.T) {
	bookingID := primitive.NewObjectID()
	eventID := primitive.NewObjectID()
	body := capturedPayload(fmt.Sprintf(
		`{"purpose": "event_booking", "bookingId": "%s", "eventId": "%s", "seats": "3"}`,
		bookingID.Hex(), eventID.Hex()))

	ev, err := ParseWebhook(body)
	require.NoError(t, err)

	b, ok := ev.(BookingEvent)
	require.True(t, ok)
	assert.Equal(t, bookingID, b.BookingID)
	assert.Equal(t, eventID, b.EventID)
	assert.Equal(t, 3, b.Seats)
}

func TestParseWebhookIgnoresOtherEvents(t *testing.T) {
	body := []byte(`{"event": "payment.authorized", "payload": {"payment": {"entity": {"id": "pay_1", "order_id": "order_1", "amount": 100}}}}`)
	_, err := ParseWebhook(body)
	assert.ErrorIs(t, err, ErrEventIgnored)
}

func TestParseWebhookRejections(t *testing.T) {
	cases := []struct {
		name string
		body []byte
		want error
	}{
		{"malformed json", []byte(`{not json`), ErrInvalidPayload},
		{"missing payment id", []byte(`{"event": "payment.captured", "payload": {"payment": {"entity": {"order_id": "o", "amount": 1}}}}`), ErrInvalidPayload},
		{"non-positive amount", []byte(`{"event": "payment.captured", "payload": {"payment": {"entity": {"id": "p", "order_id": "o", "amount": 0}}}}`), ErrInvalidPayload},
		{"unknown purpose", capturedPayload(`{"purpose": "refund"}`), ErrUnknownPurpose},
		{"no notes", capturedPayload(`{}`), ErrUnknownPurpose},
		{"bad campaign id", capturedPayload(`{"purpose": "donation", "campaignId": "nothex"}`), ErrInvalidPayload},
		{"bad booking id", capturedPayload(`{"purpose": "event_booking", "bookingId": "nothex", "eventId": "nothex"}`), ErrInvalidPayload},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseWebhook(tc.body)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
