package controllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/sevadaan/donation-backend-go/config"
	gateway "github.com/sevadaan/donation-backend-go/gateway"
	models "github.com/sevadaan/donation-backend-go/models"
	payments "github.com/sevadaan/donation-backend-go/payments"
	utils "github.com/sevadaan/donation-backend-go/utils"
)

// ---------------- CREATE ORDER ----------------
func CreateOrder(cfg *config.Config, gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Amount     float64 `json:"amount"`
			Purpose    string  `json:"purpose"`
			CampaignID string  `json:"campaignId"`
			BookingID  string  `json:"bookingId"`
			DonorName  string  `json:"donorName"`
			DonorEmail string  `json:"donorEmail"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if input.Amount <= 0 || math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "amount must be a positive number"})
			return
		}
		if input.Purpose != "donation" && input.Purpose != "event" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "purpose must be donation or event"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)
		amountMinor := int64(math.Round(input.Amount * 100))
		notes := map[string]string{}
		order := models.PaymentOrder{
			ID:          primitive.NewObjectID(),
			Purpose:     "donation",
			AmountMinor: amountMinor,
			Currency:    cfg.Currency,
			Receipt:     "rcpt_" + uuid.NewString(),
			Status:      "CREATED",
			DonorName:   input.DonorName,
			DonorEmail:  input.DonorEmail,
		}

		switch input.Purpose {
		case "donation":
			if input.CampaignID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "campaignId is required for donations"})
				return
			}
			campaignID, err := primitive.ObjectIDFromHex(input.CampaignID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid campaignId"})
				return
			}

			var campaign models.Campaign
			if err := db.Collection("campaigns").FindOne(ctx, bson.M{"_id": campaignID}).Decode(&campaign); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "campaign not found"})
				return
			}

			order.CampaignID = campaignID
			notes["purpose"] = "donation"
			notes["campaignId"] = campaignID.Hex()
			if input.DonorName != "" {
				notes["donorName"] = input.DonorName
			}
			if input.DonorEmail != "" {
				notes["donorEmail"] = input.DonorEmail
			}

		case "event":
			if input.BookingID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bookingId is required for event bookings"})
				return
			}
			bookingID, err := primitive.ObjectIDFromHex(input.BookingID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid bookingId"})
				return
			}

			var booking models.Booking
			if err := db.Collection("bookings").FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "booking not found"})
				return
			}
			if booking.Status != "PENDING" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "booking is not pending payment"})
				return
			}

			order.Purpose = "event_booking"
			order.BookingID = bookingID
			order.EventID = booking.EventID
			notes["purpose"] = "event_booking"
			notes["bookingId"] = bookingID.Hex()
			notes["eventId"] = booking.EventID.Hex()
			notes["seats"] = strconv.Itoa(booking.Seats)
		}

		gwOrder, err := gw.CreateOrder(ctx, gateway.CreateOrderInput{
			AmountMinor: amountMinor,
			Currency:    cfg.Currency,
			Receipt:     order.Receipt,
			Notes:       notes,
		})
		if err != nil {
			log.WithError(err).Error("gateway order creation failed")
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "could not create payment order"})
			return
		}

		now := time.Now()
		order.OrderID = gwOrder.ID
		order.CreatedAt = now
		order.UpdatedAt = now
		if _, err := db.Collection("orders").InsertOne(ctx, order); err != nil {
			log.WithError(err).Error("could not persist payment order")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not save order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"orderId":  gwOrder.ID,
			"amount":   amountMinor,
			"currency": cfg.Currency,
			"key":      cfg.KeyID,
		})
	}
}

// ---------------- WEBHOOK ----------------
func Webhook(cfg *config.Config, verifier *payments.Verifier, applier *payments.Applier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Raw bytes exactly as received; re-serialization would break the hash.
		body, err := c.GetRawData()
		if err != nil {
			c.String(http.StatusBadRequest, "could not read body")
			return
		}

		if err := verifier.VerifyWebhook(body, c.GetHeader("X-Razorpay-Signature")); err != nil {
			log.WithError(err).Warn("webhook signature rejected")
			c.String(http.StatusBadRequest, "invalid signature")
			return
		}

		event, err := payments.ParseWebhook(body)
		switch err {
		case nil:
		case payments.ErrEventIgnored:
			c.String(http.StatusOK, "ignored")
			return
		case payments.ErrUnknownPurpose:
			// Acknowledge so the gateway stops retrying data we will never route.
			log.Warn("webhook with unknown purpose acknowledged")
			c.String(http.StatusOK, "ignored")
			return
		default:
			c.String(http.StatusBadRequest, "invalid payload")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		result, err := applier.Apply(ctx, event)
		if errors.Is(err, payments.ErrNotFound) {
			log.WithFields(log.Fields{
				"payment_id": event.PaymentID(),
				"order_id":   event.OrderID(),
			}).Warn("webhook references missing target, acknowledged")
			c.String(http.StatusOK, "ok")
			return
		}
		if err != nil {
			log.WithError(err).Error("webhook processing failed")
			c.String(http.StatusInternalServerError, "processing failed")
			return
		}

		if result.Applied {
			if e, ok := event.(payments.DonationEvent); ok {
				go emailReceipt(cfg, e)
			}
		}

		c.String(http.StatusOK, "ok")
	}
}

// ---------------- CLIENT CONFIRM ----------------
// Fallback for deployments without a webhook channel. The signature only
// proves the (orderId, paymentId) pair, so amount and target come from the
// order we persisted at creation time, never from the request.
func ConfirmPayment(cfg *config.Config, verifier *payments.Verifier, applier *payments.Applier, store payments.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			PaymentID  string  `json:"paymentId" binding:"required"`
			OrderID    string  `json:"orderId" binding:"required"`
			Signature  string  `json:"signature" binding:"required"`
			CampaignID string  `json:"campaignId" binding:"required"`
			Amount     float64 `json:"amount" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if err := verifier.VerifyConfirmation(input.OrderID, input.PaymentID, input.Signature); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "signature verification failed"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		order, err := store.FindOrderByOrderID(ctx, input.OrderID)
		if errors.Is(err, payments.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unknown order"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not load order"})
			return
		}

		if int64(math.Round(input.Amount*100)) != order.AmountMinor {
			log.WithFields(log.Fields{
				"order_id":     input.OrderID,
				"client_paise": int64(math.Round(input.Amount * 100)),
				"order_paise":  order.AmountMinor,
			}).Warn("client-confirm amount diverges from stored order")
		}

		var event payments.Event
		switch order.Purpose {
		case "donation":
			event = payments.DonationEvent{
				Payment:     input.PaymentID,
				Order:       input.OrderID,
				AmountMinor: order.AmountMinor,
				CampaignID:  order.CampaignID,
				DonorName:   order.DonorName,
				DonorEmail:  order.DonorEmail,
			}
		case "event_booking":
			event = payments.BookingEvent{
				Payment:     input.PaymentID,
				Order:       input.OrderID,
				AmountMinor: order.AmountMinor,
				BookingID:   order.BookingID,
				EventID:     order.EventID,
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "order has no routable purpose"})
			return
		}

		result, err := applier.Apply(ctx, event)
		if errors.Is(err, payments.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "payment target not found"})
			return
		}
		if err != nil {
			log.WithError(err).Error("confirmation processing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "could not record payment"})
			return
		}

		if result.Applied {
			if e, ok := event.(payments.DonationEvent); ok {
				go emailReceipt(cfg, e)
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "donationId": result.ResultID})
	}
}

// emailReceipt is best effort; the donation is already committed.
func emailReceipt(cfg *config.Config, e payments.DonationEvent) {
	if e.DonorEmail == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var campaign models.Campaign
	title := "our campaign"
	err := cfg.MongoClient.Database(cfg.DBName).
		Collection("campaigns").
		FindOne(ctx, bson.M{"_id": e.CampaignID}).
		Decode(&campaign)
	if err == nil {
		title = campaign.Title
	}

	var donation models.Donation
	receiptNo := e.Payment
	err = cfg.MongoClient.Database(cfg.DBName).
		Collection("donations").
		FindOne(ctx, bson.M{"payment_id": e.Payment}).
		Decode(&donation)
	if err == nil {
		receiptNo = donation.ReceiptNo
	}

	name := e.DonorName
	if name == "" {
		name = "Donor"
	}
	if err := utils.SendDonationReceipt(e.DonorEmail, name, title, receiptNo, float64(e.AmountMinor)/100, cfg.Currency); err != nil {
		log.WithError(err).Warn("receipt email failed")
	}
}
