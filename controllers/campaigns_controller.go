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
func CreateCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields ---
		var input struct {
			Title        string  `form:"title" binding:"required"`
			Description  string  `form:"description"`
			TargetAmount float64 `form:"target_amount"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// --- Handle file uploads ---
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}

		var imageURLs []string
		if form != nil {
			files := form.File["images"] // key must be "images"
			for _, fileHeader := range files {
				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}

				url, err := utils.UploadToCloudinary(file, fileHeader)
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{
						"error":   "image upload failed",
						"details": err.Error(),
						"file":    fileHeader.Filename,
					})
					return
				}

				imageURLs = append(imageURLs, url)
			}
		}

		// --- Save campaign ---
		now := time.Now()
		campaign := models.Campaign{
			ID:           primitive.NewObjectID(),
			Title:        input.Title,
			Description:  input.Description,
			TargetAmount: input.TargetAmount,
			TotalRaised:  0,
			Status:       "ACTIVE",
			Images:       imageURLs,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, campaign); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create campaign"})
			return
		}

		c.JSON(http.StatusCreated, campaign)
	}
}

// ---------------- LIST ----------------
func ListCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")
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

		// --- Fetch data ---
		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch campaigns"})
			return
		}

		var campaigns []models.Campaign
		if err := cursor.All(ctx, &campaigns); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode campaigns"})
			return
		}

		if len(campaigns) == 0 {
			c.JSON(http.StatusOK, []models.Campaign{})
			return
		}

		// --- Pick the most recently updated campaign ---
		latest := campaigns[0]
		for _, cp := range campaigns {
			if cp.UpdatedAt.After(latest.UpdatedAt) {
				latest = cp
			}
		}

		// --- Generate ETag from latest campaign ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		// --- Add Last-Modified from latest campaign ---
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, campaigns)
	}
}

// ---------------- GET ----------------
func GetCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
			return
		}

		var campaign models.Campaign
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("campaigns").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&campaign)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		etag := utils.GenerateETag(campaign.ID, campaign.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, campaign)
	}
}

// ---------------- UPDATE ----------------
func UpdateCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
			return
		}

		var input struct {
			Title        string   `form:"title"`
			Description  string   `form:"description"`
			TargetAmount float64  `form:"target_amount"`
			Status       string   `form:"status"`
			Images       []string `form:"images"` // existing image URLs to keep
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// total_raised is owned by the confirmation flow; never settable here.
		update := bson.M{"updated_at": time.Now()}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.TargetAmount > 0 {
			update["target_amount"] = input.TargetAmount
		}
		if input.Status != "" {
			update["status"] = input.Status
		}

		// --- Handle new image uploads (multipart form) ---
		newImageURLs := []string{}
		form, _ := c.MultipartForm()
		if form != nil {
			files := form.File["new_images"] // key = "new_images"
			for _, fileHeader := range files {
				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open image"})
					return
				}
				url, err := utils.UploadToCloudinary(file, fileHeader)
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
					return
				}
				newImageURLs = append(newImageURLs, url)
			}
		}

		// --- Merge images (keep provided + add new) ---
		if input.Images != nil || len(newImageURLs) > 0 {
			update["images"] = append(input.Images, newImageURLs...)
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update campaign"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		var updated models.Campaign
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated campaign"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "campaign updated",
			"campaign": updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("campaigns")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Campaign
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete campaign"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		for _, img := range existing.Images {
			utils.DeleteFromCloudinary(img)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "campaign deleted",
			"id":      oid.Hex(),
		})
	}
}
