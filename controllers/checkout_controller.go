package controllers

import (
	"net/http"

	"storefront-service/middleware"
	"storefront-service/repository"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Baskets repository.BasketStore
	Stripe  *services.StripeService
	Logger  *zap.Logger
}

// CreateCheckoutSession turns the caller's basket into a hosted payment
// session. The basket itself is cleared by the storefront after a successful
// redirect, not here: until payment completes it stays recoverable.
func (cc *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	basket, err := cc.Baskets.GetBasket(c.Request.Context(), userID)
	if err != nil {
		cc.Logger.Error("Error fetching basket", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch basket"})
		return
	}
	if basket == nil || len(basket.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Basket is empty"})
		return
	}

	meta := services.CheckoutMetadata{
		OrderNumber:   uuid.NewString(),
		CustomerName:  middleware.GetUserName(c),
		CustomerEmail: middleware.GetUserEmail(c),
		UserID:        userID,
	}

	sess, err := cc.Stripe.CreateCheckoutSession(c.Request.Context(), basket, meta)
	if err != nil {
		cc.Logger.Error("Error creating checkout session",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	cc.Logger.Info("Checkout session created",
		zap.String("user_id", userID),
		zap.String("session_id", sess.ID),
		zap.String("order_number", meta.OrderNumber),
	)

	c.JSON(http.StatusOK, gin.H{
		"session_id":   sess.ID,
		"url":          sess.URL,
		"order_number": meta.OrderNumber,
	})
}
