package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentOrder records what we asked the gateway to collect. Confirmation
// paths resolve amount and target from this record, never from client input.
type PaymentOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     string             `bson:"order_id" json:"order_id"` // gateway-assigned
	Purpose     string             `bson:"purpose" json:"purpose"`   // donation, event_booking
	AmountMinor int64              `bson:"amount_minor" json:"amount_minor"`
	Currency    string             `bson:"currency" json:"currency"`
	CampaignID  primitive.ObjectID `bson:"campaign_id,omitempty" json:"campaign_id,omitempty"`
	BookingID   primitive.ObjectID `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	EventID     primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`
	Receipt     string             `bson:"receipt" json:"receipt"`
	Status      string             `bson:"status" json:"status"` // CREATED, PAID
	DonorName   string             `bson:"donor_name,omitempty" json:"donor_name,omitempty"`
	DonorEmail  string             `bson:"donor_email,omitempty" json:"donor_email,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
