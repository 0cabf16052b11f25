package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/sevadaan/donation-backend-go/config"
	models "github.com/sevadaan/donation-backend-go/models"
)

// ---------------- CREATE ----------------
// Bookings start PENDING; the payment confirmation flow flips them to
// CONFIRMED and counts the seats.
func CreateBooking(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			EventID     string `json:"event_id" binding:"required"`
			HolderName  string `json:"holder_name" binding:"required"`
			HolderEmail string `json:"holder_email"`
			Seats       int    `json:"seats" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Seats <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seats must be greater than 0"})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(input.EventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)
		var event models.Event
		if err := db.Collection("events").FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event not found"})
			return
		}
		if event.Status != "ACTIVE" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event is not open for booking"})
			return
		}
		if event.SeatsSold+input.Seats > event.Capacity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not enough seats left"})
			return
		}

		now := time.Now()
		booking := models.Booking{
			ID:          primitive.NewObjectID(),
			EventID:     eventID,
			HolderName:  input.HolderName,
			HolderEmail: input.HolderEmail,
			Seats:       input.Seats,
			Status:      "PENDING",
			IsPaid:      false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := db.Collection("bookings").InsertOne(ctx, booking); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create booking"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":      booking.ID.Hex(),
			"amount":  event.SeatPrice * float64(input.Seats),
			"message": "booking created, awaiting payment",
		})
	}
}

// ---------------- GET ----------------
func GetBooking(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
			return
		}

		var booking models.Booking
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("bookings").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&booking)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

// ---------------- LIST ----------------
func ListBookings(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("bookings")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if eventID := c.Query("event_id"); eventID != "" {
			if oid, err := primitive.ObjectIDFromHex(eventID); err == nil {
				filter["event_id"] = oid
			}
		}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch bookings"})
			return
		}

		var bookings []models.Booking
		if err := cursor.All(ctx, &bookings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode bookings"})
			return
		}

		if len(bookings) == 0 {
			c.JSON(http.StatusOK, []models.Booking{})
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}
