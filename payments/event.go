package payments

import (
	"encoding/json"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is the closed set of verified payment notifications the applier
// accepts. Decoding happens once at the boundary; anything outside the two
// variants is rejected there, not deeper in.
type Event interface {
	PaymentID() string
	OrderID() string
}

type DonationEvent struct {
	Payment     string
	Order       string
	AmountMinor int64
	CampaignID  primitive.ObjectID
	DonorName   string
	DonorEmail  string
}

func (e DonationEvent) PaymentID() string { return e.Payment }
func (e DonationEvent) OrderID() string   { return e.Order }

type BookingEvent struct {
	Payment     string
	Order       string
	AmountMinor int64
	BookingID   primitive.ObjectID
	EventID     primitive.ObjectID
	Seats       int
}

func (e BookingEvent) PaymentID() string { return e.Payment }
func (e BookingEvent) OrderID() string   { return e.Order }

const capturedEvent = "payment.captured"

// Webhook envelope as the gateway sends it. Notes carry the routing metadata
// we attached at order creation.
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID      string            `json:"id"`
	OrderID string            `json:"order_id"`
	Amount  int64             `json:"amount"` // minor units
	Notes   map[string]string `json:"notes"`
}

// ParseWebhook decodes a verified webhook body into one of the event
// variants. Returns ErrEventIgnored for event types other than
// payment.captured and ErrUnknownPurpose when the notes do not route to a
// donation or a booking.
func ParseWebhook(body []byte) (Event, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, ErrInvalidPayload
	}
	if env.Event != capturedEvent {
		return nil, ErrEventIgnored
	}

	p := env.Payload.Payment.Entity
	if p.ID == "" || p.OrderID == "" || p.Amount <= 0 {
		return nil, ErrInvalidPayload
	}

	switch p.Notes["purpose"] {
	case "donation":
		campaignID, err := primitive.ObjectIDFromHex(p.Notes["campaignId"])
		if err != nil {
			return nil, ErrInvalidPayload
		}
		return DonationEvent{
			Payment:     p.ID,
			Order:       p.OrderID,
			AmountMinor: p.Amount,
			CampaignID:  campaignID,
			DonorName:   p.Notes["donorName"],
			DonorEmail:  p.Notes["donorEmail"],
		}, nil

	case "event_booking":
		bookingID, err := primitive.ObjectIDFromHex(p.Notes["bookingId"])
		if err != nil {
			return nil, ErrInvalidPayload
		}
		eventID, err := primitive.ObjectIDFromHex(p.Notes["eventId"])
		if err != nil {
			return nil, ErrInvalidPayload
		}
		seats, _ := strconv.Atoi(p.Notes["seats"])
		return BookingEvent{
			Payment:     p.ID,
			Order:       p.OrderID,
			AmountMinor: p.Amount,
			BookingID:   bookingID,
			EventID:     eventID,
			Seats:       seats,
		}, nil

	default:
		return nil, ErrUnknownPurpose
	}
}
