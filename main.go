package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	config "github.com/sevadaan/donation-backend-go/config"
	payments "github.com/sevadaan/donation-backend-go/payments"
	routes "github.com/sevadaan/donation-backend-go/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment")
	}

	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Unique payment_id index before any confirmation traffic.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store := payments.NewMongoStore(cfg.MongoClient, cfg.DBName)
	if err := store.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("indexes: %v", err)
	}
	cancel()

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsCfg.AllowOrigins = []string{origins}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "If-None-Match")
	r.Use(cors.New(corsCfg))

	routes.SetupRoutes(r, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Infof("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
