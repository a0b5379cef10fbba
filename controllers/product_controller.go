package controllers

import (
	"math"
	"net/http"
	"strconv"

	"storefront-service/contentstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	Store  contentstore.Client
	Logger *zap.Logger
}

// GetProducts retrieves one page of the catalogue.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	if err != nil || perPage <= 0 {
		perPage = 10
	}

	products, total, err := pc.Store.ListProducts(c.Request.Context(), page, perPage)
	if err != nil {
		pc.Logger.Error("Error fetching products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"page":       page,
		"perPage":    perPage,
		"total":      total,
		"totalPages": int(math.Ceil(float64(total) / float64(perPage))),
	})
}

// GetProductByID retrieves a single product.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	product, err := pc.Store.FetchProduct(c.Request.Context(), id)
	if err != nil {
		pc.Logger.Error("Error fetching product", zap.String("product_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// SearchProducts returns products whose name matches the search term.
func (pc *ProductController) SearchProducts(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search term"})
		return
	}

	products, err := pc.Store.SearchProducts(c.Request.Context(), term)
	if err != nil {
		pc.Logger.Error("Error searching products", zap.String("term", term), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetBasketStock returns current stock for the products in the caller's
// basket, so the storefront can disable sold-out items before checkout.
func (pc *ProductController) GetBasketStock(c *gin.Context) {
	var req struct {
		ProductIDs []string `json:"product_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stocks, err := pc.Store.FetchProductStock(c.Request.Context(), req.ProductIDs)
	if err != nil {
		pc.Logger.Error("Error fetching stock data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stocks})
}
