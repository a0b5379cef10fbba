package models_test

import (
	"encoding/json"
	"testing"

	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func decodeStock(t *testing.T, stockValue interface{}) models.StockCount {
	t.Helper()
	raw, err := bson.Marshal(bson.M{"_id": "prod-1", "name": "Widget", "slug": "widget", "price": 9.99, "stock": stockValue})
	require.NoError(t, err)

	var product models.Product
	require.NoError(t, bson.Unmarshal(raw, &product))
	return product.Stock
}

func TestStockCount_DecodesIntegerTypes(t *testing.T) {
	for name, value := range map[string]interface{}{
		"int32":           int32(5),
		"int64":           int64(5),
		"integral double": float64(5),
	} {
		t.Run(name, func(t *testing.T) {
			stock := decodeStock(t, value)
			require.True(t, stock.Valid)
			assert.Equal(t, int64(5), stock.Value)

			count, ok := stock.ValidCount()
			assert.True(t, ok)
			assert.Equal(t, int64(5), count)
		})
	}
}

func TestStockCount_RejectsMalformedValues(t *testing.T) {
	for name, value := range map[string]interface{}{
		"string":            "seven",
		"fractional double": 2.5,
		"null":              nil,
		"embedded document": bson.M{"count": 3},
	} {
		t.Run(name, func(t *testing.T) {
			stock := decodeStock(t, value)
			assert.False(t, stock.Valid)

			_, ok := stock.ValidCount()
			assert.False(t, ok)
		})
	}
}

func TestStockCount_NegativeRecordedStockIsNotACount(t *testing.T) {
	stock := decodeStock(t, int32(-3))
	// The raw value decodes, but it is not a usable count.
	assert.True(t, stock.Valid)
	_, ok := stock.ValidCount()
	assert.False(t, ok)
}

func TestStockCount_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(models.StockCount{Value: 7, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "7", string(b))

	b, err = json.Marshal(models.StockCount{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var s models.StockCount
	require.NoError(t, json.Unmarshal([]byte("12"), &s))
	assert.True(t, s.Valid)
	assert.Equal(t, int64(12), s.Value)

	require.NoError(t, json.Unmarshal([]byte("null"), &s))
	assert.False(t, s.Valid)
}
