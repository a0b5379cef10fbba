package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. This service only ever creates orders in StatusPaid; the
// remaining transitions belong to back-office tooling.
const (
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)

// OrderProduct references one purchased product with its quantity. ItemKey is
// a freshly generated unique key per order line.
type OrderProduct struct {
	ItemKey    string `bson:"itemKey" json:"itemKey"`
	ProductRef string `bson:"productRef" json:"productRef"`
	Quantity   int64  `bson:"quantity" json:"quantity"`
}

// Order is the content-store document created once per successfully processed
// checkout. It is never mutated afterwards by this service. Monetary fields
// are stored in major currency units.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber       string             `bson:"orderNumber" json:"orderNumber"`
	CheckoutSessionID string             `bson:"checkoutSessionId" json:"checkoutSessionId"`
	PaymentIntentID   string             `bson:"paymentIntentId" json:"paymentIntentId"`
	CustomerName      string             `bson:"customerName" json:"customerName"`
	CustomerID        string             `bson:"customerId" json:"customerId"`
	UserID            string             `bson:"userId" json:"userId"`
	Email             string             `bson:"email" json:"email"`
	Currency          string             `bson:"currency" json:"currency"`
	AmountDiscount    float64            `bson:"amountDiscount" json:"amountDiscount"`
	Products          []OrderProduct     `bson:"products" json:"products"`
	TotalPrice        float64            `bson:"totalPrice" json:"totalPrice"`
	Status            string             `bson:"status" json:"status"`
	OrderDate         time.Time          `bson:"orderDate" json:"orderDate"`
}
