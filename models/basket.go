package models

import "time"

// BasketItem is one product-and-quantity pair in a user's basket.
type BasketItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

// Basket holds one user's pre-checkout cart.
type Basket struct {
	UserID    string       `json:"user_id"`
	Items     []BasketItem `json:"items"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Total returns the basket total in major currency units.
func (b *Basket) Total() float64 {
	var total float64
	for _, it := range b.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
