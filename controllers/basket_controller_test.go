package controllers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/controllers"
	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBasketStore struct {
	baskets map[string]*models.Basket
	saveErr error
}

func newStubBasketStore() *stubBasketStore {
	return &stubBasketStore{baskets: make(map[string]*models.Basket)}
}

func (s *stubBasketStore) GetBasket(_ context.Context, userID string) (*models.Basket, error) {
	return s.baskets[userID], nil
}

func (s *stubBasketStore) SaveBasket(_ context.Context, basket *models.Basket) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.baskets[basket.UserID] = basket
	return nil
}

func (s *stubBasketStore) DeleteBasket(_ context.Context, userID string) error {
	delete(s.baskets, userID)
	return nil
}

func newBasketRouter(baskets *stubBasketStore, store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	bc := &controllers.BasketController{Baskets: baskets, Store: store, Logger: zap.NewNop()}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "user_1")
	})
	r.GET("/basket", bc.GetBasket)
	r.POST("/basket/items", bc.AddItem)
	r.DELETE("/basket", bc.ClearBasket)
	return r
}

func TestGetBasket_EmptyWhenNoneExists(t *testing.T) {
	r := newBasketRouter(newStubBasketStore(), newStubStore())

	req := httptest.NewRequest(http.MethodGet, "/basket", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestAddItem_AddsAndAccumulates(t *testing.T) {
	baskets := newStubBasketStore()
	store := newStubStore()
	store.products["prod-a"] = &models.Product{
		ID:    "prod-a",
		Name:  "Widget",
		Price: 9.99,
		Stock: models.StockCount{Value: 10, Valid: true},
	}
	r := newBasketRouter(baskets, store)

	body := []byte(`{"product_id": "prod-a", "quantity": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/basket/items", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/basket/items", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	basket := baskets.baskets["user_1"]
	require.NotNil(t, basket)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, int64(4), basket.Items[0].Quantity)
	assert.Equal(t, "Widget", basket.Items[0].Name)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	r := newBasketRouter(newStubBasketStore(), newStubStore())

	body := []byte(`{"product_id": "prod-missing", "quantity": 1}`)
	req := httptest.NewRequest(http.MethodPost, "/basket/items", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItem_OutOfStock(t *testing.T) {
	store := newStubStore()
	store.products["prod-a"] = &models.Product{
		ID:    "prod-a",
		Stock: models.StockCount{Value: 0, Valid: true},
	}
	r := newBasketRouter(newStubBasketStore(), store)

	body := []byte(`{"product_id": "prod-a", "quantity": 1}`)
	req := httptest.NewRequest(http.MethodPost, "/basket/items", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClearBasket(t *testing.T) {
	baskets := newStubBasketStore()
	baskets.baskets["user_1"] = &models.Basket{
		UserID: "user_1",
		Items:  []models.BasketItem{{ProductID: "prod-a", Quantity: 1}},
	}
	r := newBasketRouter(baskets, newStubStore())

	req := httptest.NewRequest(http.MethodDelete, "/basket", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, baskets.baskets["user_1"])
}
