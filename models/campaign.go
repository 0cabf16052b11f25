package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Campaign struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetAmount float64            `bson:"target_amount,omitempty" json:"target_amount,omitempty"`
	TotalRaised  float64            `bson:"total_raised" json:"total_raised"`
	Status       string             `bson:"status" json:"status"` // ACTIVE, CLOSED, ARCHIVED
	Images       []string           `bson:"images" json:"images"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
