package models

import (
	"encoding/json"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a content-store document describing one sellable item. The ID is
// the opaque external reference embedded in the payment gateway's product
// metadata, not a generated one.
type Product struct {
	ID          string     `bson:"_id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Slug        string     `bson:"slug" json:"slug"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64    `bson:"price" json:"price"`
	Image       string     `bson:"image,omitempty" json:"image,omitempty"`
	Stock       StockCount `bson:"stock" json:"stock"`
}

// StockCount holds a product's recorded stock. Documents are externally owned,
// so the field may hold any BSON value; only well-formed integers count as
// valid and anything else makes the product ineligible for reconciliation.
type StockCount struct {
	Value int64
	Valid bool
}

// ValidCount reports the recorded stock when it is a well-formed non-negative
// integer. Reconciliation skips products for which this returns false.
func (s StockCount) ValidCount() (int64, bool) {
	if !s.Valid || s.Value < 0 {
		return 0, false
	}
	return s.Value, true
}

func (s *StockCount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		s.Value = int64(rv.Int32())
		s.Valid = true
	case bsontype.Int64:
		s.Value = rv.Int64()
		s.Valid = true
	case bsontype.Double:
		f := rv.Double()
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			s.Value = int64(f)
			s.Valid = true
		}
	}
	return nil
}

func (s StockCount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !s.Valid {
		return bson.MarshalValue(primitive.Null{})
	}
	return bson.MarshalValue(s.Value)
}

func (s StockCount) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s *StockCount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StockCount{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		*s = StockCount{}
		return nil
	}
	*s = StockCount{Value: v, Valid: true}
	return nil
}

// ProductStock is the per-product view returned by the basket stock check.
type ProductStock struct {
	ID    string     `bson:"_id" json:"id"`
	Stock StockCount `bson:"stock" json:"stock"`
}
