package controllers

import (
	"net/http"

	"storefront-service/contentstore"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BasketController struct {
	Baskets repository.BasketStore
	Store   contentstore.Client
	Logger  *zap.Logger
}

// GetBasket returns the caller's basket, empty if none exists yet.
func (bc *BasketController) GetBasket(c *gin.Context) {
	userID := middleware.GetUserID(c)

	basket, err := bc.Baskets.GetBasket(c.Request.Context(), userID)
	if err != nil {
		bc.Logger.Error("Error fetching basket", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch basket"})
		return
	}
	if basket == nil {
		basket = &models.Basket{UserID: userID, Items: []models.BasketItem{}}
	}

	c.JSON(http.StatusOK, basket)
}

// AddItem puts a product into the caller's basket. The quantity is additive
// when the product is already present.
func (bc *BasketController) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int64  `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)

	product, err := bc.Store.FetchProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		bc.Logger.Error("Error fetching product", zap.String("product_id", req.ProductID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if stock, ok := product.Stock.ValidCount(); !ok || stock == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
		return
	}

	basket, err := bc.Baskets.GetBasket(c.Request.Context(), userID)
	if err != nil {
		bc.Logger.Error("Error fetching basket", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch basket"})
		return
	}
	if basket == nil {
		basket = &models.Basket{UserID: userID}
	}

	found := false
	for i := range basket.Items {
		if basket.Items[i].ProductID == req.ProductID {
			basket.Items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		basket.Items = append(basket.Items, models.BasketItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  req.Quantity,
		})
	}

	if err := bc.Baskets.SaveBasket(c.Request.Context(), basket); err != nil {
		bc.Logger.Error("Error saving basket", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save basket"})
		return
	}

	c.JSON(http.StatusOK, basket)
}

// ClearBasket removes the caller's basket.
func (bc *BasketController) ClearBasket(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := bc.Baskets.DeleteBasket(c.Request.Context(), userID); err != nil {
		bc.Logger.Error("Error clearing basket", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear basket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
