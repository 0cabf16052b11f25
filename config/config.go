package config

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config carries everything the handlers and the payments core need.
// Secrets are loaded once at startup and injected; nothing reads env vars
// during request handling.
type Config struct {
	MongoClient *mongo.Client
	DBName      string

	// Gateway credentials. KeyID/KeySecret authenticate order creation and
	// sign the client-side confirmation; WebhookSecret signs webhook bodies.
	GatewayBaseURL string
	KeyID          string
	KeySecret      string
	WebhookSecret  string

	Currency  string
	JWTSecret string
}

func Load() (*Config, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "sevadaan"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	cfg := &Config{
		MongoClient:    client,
		DBName:         dbName,
		GatewayBaseURL: os.Getenv("RAZORPAY_BASE_URL"),
		KeyID:          os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret:      os.Getenv("RAZORPAY_KEY_SECRET"),
		WebhookSecret:  os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		Currency:       os.Getenv("CURRENCY"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}
	if cfg.GatewayBaseURL == "" {
		cfg.GatewayBaseURL = "https://api.razorpay.com"
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}

	if cfg.KeyID == "" || cfg.KeySecret == "" {
		log.Warn("RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET not set, order creation will fail")
	}
	if cfg.WebhookSecret == "" {
		log.Warn("RAZORPAY_WEBHOOK_SECRET not set, all webhooks will be rejected")
	}

	return cfg, nil
}
