package routes

import (
	"net/http"

	"storefront-service/controllers"
	"storefront-service/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router wires up.
type Controllers struct {
	Webhook  *controllers.WebhookController
	Products *controllers.ProductController
	Basket   *controllers.BasketController
	Checkout *controllers.CheckoutController
	Orders   *controllers.OrderController
}

// Register wires all routes. Everything except the webhook receiver and the
// health check sits behind authentication.
func Register(r *gin.Engine, ctrl Controllers, jwtSecret string) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stripe webhook (no auth, authenticated by its signature header)
	r.POST("/webhook", ctrl.Webhook.StripeWebhook)

	auth := middleware.AuthMiddleware(jwtSecret)

	products := r.Group("/products")
	products.Use(auth)
	{
		products.GET("/", ctrl.Products.GetProducts)
		products.GET("/search", ctrl.Products.SearchProducts)
		products.GET("/:id", ctrl.Products.GetProductByID)
		products.POST("/stock", ctrl.Products.GetBasketStock)
	}

	basket := r.Group("/basket")
	basket.Use(auth)
	{
		basket.GET("/", ctrl.Basket.GetBasket)
		basket.POST("/items", ctrl.Basket.AddItem)
		basket.DELETE("/", ctrl.Basket.ClearBasket)
	}

	orders := r.Group("/orders")
	orders.Use(auth)
	{
		orders.GET("/", ctrl.Orders.GetMyOrders)
		orders.GET("/slugs", ctrl.Orders.GetPurchasedProductSlugs)
	}

	checkout := r.Group("/checkout")
	checkout.Use(auth)
	{
		checkout.POST("/", ctrl.Checkout.CreateCheckoutSession)
	}
}
