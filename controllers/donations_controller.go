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

// Donations are written by the payment confirmation flow only; this
// controller is read-only.

// ---------------- LIST ----------------
func ListDonations(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("donations")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if campaignID := c.Query("campaign_id"); campaignID != "" {
			if oid, err := primitive.ObjectIDFromHex(campaignID); err == nil {
				filter["campaign_id"] = oid
			}
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch donations"})
			return
		}

		var donations []models.Donation
		if err := cursor.All(ctx, &donations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode donations"})
			return
		}

		if len(donations) == 0 {
			c.JSON(http.StatusOK, []models.Donation{})
			return
		}

		// --- Pick the most recent donation ---
		latest := donations[0]
		for _, d := range donations {
			if d.CreatedAt.After(latest.CreatedAt) {
				latest = d
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.CreatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.CreatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, donations)
	}
}

// ---------------- GET ----------------
func GetDonation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
			return
		}

		var donation models.Donation
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("donations").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&donation)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
			return
		}

		etag := utils.GenerateETag(donation.ID, donation.CreatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, donation)
	}
}
