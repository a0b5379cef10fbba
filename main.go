package main

import (
	"context"
	"log"

	"storefront-service/config"
	"storefront-service/contentstore"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[Storefront] ❌ Failed to load config:", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// Content store (products + orders)
	if err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatal("[Storefront] ❌ Failed to connect to MongoDB:", err)
	}
	defer database.CloseMongo()
	store := contentstore.NewMongoClient(database.DB)

	// Baskets and webhook delivery dedup
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("[Storefront] ❌ Failed to connect to Redis:", err)
	}
	defer redisClient.Close()
	basketRepo := repository.NewRedisBasketRepository(redisClient, cfg.BasketTTL)

	var dedupRepo repository.DedupStore
	if cfg.WebhookDedupEnabled {
		dedupRepo = repository.NewRedisDedupRepository(redisClient, cfg.WebhookDedupTTL)
	}

	// Webhook audit trail (optional)
	var auditRepo repository.WebhookEventStore
	if cfg.PostgresConfigured() {
		db, err := database.ConnectPostgres(cfg.PostgresDSN())
		if err != nil {
			log.Fatal("[Storefront] ❌ Failed to connect to Postgres:", err)
		}
		if err := db.AutoMigrate(&models.WebhookEvent{}); err != nil {
			log.Fatal("[Storefront] ❌ Failed to migrate WebhookEvent model:", err)
		}
		auditRepo = repository.NewGormWebhookEventRepository(db)
	}

	// Order event publishing (optional)
	var orderEvents services.OrderEventPublisher
	if cfg.OrderSNSTopicARN != "" {
		publisher, err := services.NewSNSOrderPublisher(context.Background(), cfg.OrderSNSTopicARN)
		if err != nil {
			log.Fatal("[Storefront] ❌ Failed to set up SNS publisher:", err)
		}
		orderEvents = publisher
	}

	stripeSvc := services.NewStripeService(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
		cfg.Currency,
		cfg.CheckoutSuccessURL,
		cfg.CheckoutCancelURL,
	)
	fulfillmentSvc := services.NewFulfillmentService(store, stripeSvc, dedupRepo, orderEvents, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.Default())
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitWindow, cfg.RateLimitMax))

	routes.Register(r, routes.Controllers{
		Webhook: &controllers.WebhookController{
			Stripe:      stripeSvc,
			Fulfillment: fulfillmentSvc,
			Audit:       auditRepo,
			Logger:      logger.Log,
		},
		Products: &controllers.ProductController{Store: store, Logger: logger.Log},
		Basket:   &controllers.BasketController{Baskets: basketRepo, Store: store, Logger: logger.Log},
		Checkout: &controllers.CheckoutController{Baskets: basketRepo, Stripe: stripeSvc, Logger: logger.Log},
		Orders:   &controllers.OrderController{Store: store, Logger: logger.Log},
	}, cfg.JWTSecret)

	log.Println("[Storefront] ✅ Running on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[Storefront] ❌ Server failed:", err)
	}
}
