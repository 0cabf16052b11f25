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
	utils "github.com/sevadaan/donation-backend-go/utils"
)

// ---------------- CREATE ----------------
func CreateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title       string  `json:"title" binding:"required"`
			Description string  `json:"description"`
			Location    string  `json:"location"`
			Date        *string `json:"date"` // string for binding, convert later
			SeatPrice   float64 `json:"seat_price" binding:"required"`
			Capacity    int     `json:"capacity" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.SeatPrice <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seat_price must be greater than 0"})
			return
		}
		if input.Capacity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be greater than 0"})
			return
		}

		// --- Parse date if provided ---
		var date *time.Time
		if input.Date != nil && *input.Date != "" {
			parsed, err := time.Parse(time.RFC3339, *input.Date)
			if err != nil {
				// Try fallback formats
				layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
				for _, layout := range layouts {
					if t, e := time.Parse(layout, *input.Date); e == nil {
						parsed = t
						err = nil
						break
					}
				}
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use RFC3339 or YYYY-MM-DD"})
					return
				}
			}
			date = &parsed
		}

		now := time.Now()
		event := models.Event{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Description: input.Description,
			Location:    input.Location,
			Date:        date,
			SeatPrice:   input.SeatPrice,
			Capacity:    input.Capacity,
			SeatsSold:   0,
			Status:      "ACTIVE",
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
			return
		}

		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- LIST ----------------
func ListEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if q := c.Query("q"); q != "" {
			filter["title"] = bson.M{"$regex": q, "$options": "i"}
		}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode events"})
			return
		}

		if len(events) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		// --- Pick the most recently updated event ---
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, events)
	}
}

// ---------------- GET ----------------
func GetEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var event models.Event
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("events").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&event)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, event)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Location    string  `json:"location"`
			SeatPrice   float64 `json:"seat_price"`
			Capacity    int     `json:"capacity"`
			Status      string  `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// seats_sold is owned by the confirmation flow; never settable here.
		update := bson.M{"updated_at": time.Now()}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.Location != "" {
			update["location"] = input.Location
		}
		if input.SeatPrice > 0 {
			update["seat_price"] = input.SeatPrice
		}
		if input.Capacity > 0 {
			update["capacity"] = input.Capacity
		}
		if input.Status != "" {
			update["status"] = input.Status
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "event updated", "id": oid.Hex()})
	}
}
