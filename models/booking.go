package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID      primitive.ObjectID `bson:"event_id" json:"event_id"`
	HolderName   string             `bson:"holder_name" json:"holder_name"`
	HolderEmail  string             `bson:"holder_email,omitempty" json:"holder_email,omitempty"`
	Seats        int                `bson:"seats" json:"seats"`
	Status       string             `bson:"status" json:"status"` // PENDING, CONFIRMED
	IsPaid       bool               `bson:"is_paid" json:"is_paid"`
	PaymentID    string             `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
