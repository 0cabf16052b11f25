package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation is immutable once written. The unique index on payment_id is what
// ultimately guarantees one donation per captured payment.
type Donation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampaignID primitive.ObjectID `bson:"campaign_id" json:"campaign_id"`
	Amount     float64            `bson:"amount" json:"amount"` // rupees, converted from paise
	Currency   string             `bson:"currency" json:"currency"`
	PaymentID  string             `bson:"payment_id" json:"payment_id"`
	OrderID    string             `bson:"order_id" json:"order_id"`
	DonorName  string             `bson:"donor_name,omitempty" json:"donor_name,omitempty"`
	DonorEmail string             `bson:"donor_email,omitempty" json:"donor_email,omitempty"`
	ReceiptNo  string             `bson:"receipt_no" json:"receipt_no"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
