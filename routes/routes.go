package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	config "github.com/sevadaan/donation-backend-go/config"
	controllers "github.com/sevadaan/donation-backend-go/controllers"
	gateway "github.com/sevadaan/donation-backend-go/gateway"
	middleware "github.com/sevadaan/donation-backend-go/middleware"
	payments "github.com/sevadaan/donation-backend-go/payments"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	store := payments.NewMongoStore(cfg.MongoClient, cfg.DBName)
	verifier := payments.NewVerifier(cfg.KeySecret, cfg.WebhookSecret)
	applier := payments.NewApplier(store, cfg.Currency)
	gw := gateway.NewClient(cfg.GatewayBaseURL, cfg.KeyID, cfg.KeySecret)

	// health
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cfg.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// public
	r.POST("/auth/register", controllers.Register(cfg))
	r.POST("/auth/login", controllers.Login(cfg))

	// payments
	pay := r.Group("/payments")
	{
		pay.POST("/order", controllers.CreateOrder(cfg, gw))
		pay.POST("/webhook", controllers.Webhook(cfg, verifier, applier))
		pay.POST("/confirm", controllers.ConfirmPayment(cfg, verifier, applier, store))
	}

	// protected
	auth := middleware.AuthMiddleware(cfg)

	campaigns := r.Group("/campaigns")
	{
		campaigns.GET("", controllers.ListCampaigns(cfg))
		campaigns.GET("/:id", controllers.GetCampaign(cfg))
		campaigns.POST("", auth, controllers.CreateCampaign(cfg))
		campaigns.PATCH("/:id", auth, controllers.UpdateCampaign(cfg))
		campaigns.DELETE("/:id", auth, controllers.DeleteCampaign(cfg))
	}

	events := r.Group("/events")
	{
		events.GET("", controllers.ListEvents(cfg))
		events.GET("/:id", controllers.GetEvent(cfg))
		events.POST("", auth, controllers.CreateEvent(cfg))
		events.PATCH("/:id", auth, controllers.UpdateEvent(cfg))
	}

	bookings := r.Group("/bookings")
	{
		bookings.POST("", controllers.CreateBooking(cfg))
		bookings.GET("/:id", controllers.GetBooking(cfg))
		bookings.GET("", auth, controllers.ListBookings(cfg))
	}

	donations := r.Group("/donations")
	donations.Use(auth)
	{
		donations.GET("", controllers.ListDonations(cfg))
		donations.GET("/:id", controllers.GetDonation(cfg))
	}
}
