package controllers

import (
	"net/http"

	"storefront-service/contentstore"
	"storefront-service/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	Store  contentstore.Client
	Logger *zap.Logger
}

// GetMyOrders returns the caller's orders, newest first.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orders, err := oc.Store.OrdersByUser(c.Request.Context(), userID)
	if err != nil {
		oc.Logger.Error("Error fetching orders", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetPurchasedProductSlugs returns the slugs of every product the caller has
// bought, for "view your purchases" navigation.
func (oc *OrderController) GetPurchasedProductSlugs(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orders, err := oc.Store.OrdersByUser(c.Request.Context(), userID)
	if err != nil {
		oc.Logger.Error("Error fetching orders", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	seen := make(map[string]bool)
	var ids []string
	for _, order := range orders {
		for _, p := range order.Products {
			if p.ProductRef != "" && !seen[p.ProductRef] {
				seen[p.ProductRef] = true
				ids = append(ids, p.ProductRef)
			}
		}
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"slugs": []string{}})
		return
	}

	slugs, err := oc.Store.ProductSlugs(c.Request.Context(), ids)
	if err != nil {
		oc.Logger.Error("Error fetching product slugs", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product slugs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slugs": slugs})
}
