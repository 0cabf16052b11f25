package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Date        *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
	SeatPrice   float64            `bson:"seat_price" json:"seat_price"`
	Capacity    int                `bson:"capacity" json:"capacity"`
	SeatsSold   int                `bson:"seats_sold" json:"seats_sold"`
	Status      string             `bson:"status" json:"status"` // ACTIVE, CLOSED
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
