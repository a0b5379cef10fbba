package services

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"

	apperrors "storefront-service/errors"
	"storefront-service/models"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

// CheckoutMetadata travels from checkout-session creation to the webhook that
// fulfills it.
type CheckoutMetadata struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	UserID        string
}

type StripeService struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	SuccessURL    string
	CancelURL     string
}

func NewStripeService(secretKey, webhookSecret, currency, successURL, cancelURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		Currency:      currency,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
	}
}

// ParseWebhook verifies the payload signature against the configured secret
// and parses it into a typed event. Verification is pure: no side effects on
// any store happen before it succeeds.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, apperrors.New(http.StatusBadRequest, "Failed to read webhook body", err)
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))

	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		return event, apperrors.ErrNoSignature
	}
	if s.WebhookSecret == "" {
		return event, apperrors.ErrSecretNotSet
	}

	event, err = webhook.ConstructEvent(payload, sigHeader, s.WebhookSecret)
	if err != nil {
		return event, apperrors.New(http.StatusBadRequest, apperrors.ErrVerificationFailed.Message, err)
	}
	return event, nil
}

// ListLineItems fetches the session's line items with the product expanded so
// the content-store reference in its metadata is available.
func (s *StripeService) ListLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	params.AddExpand("data.price.product")

	iter := session.ListLineItems(params)
	var items []*stripe.LineItem
	for iter.Next() {
		items = append(items, iter.LineItem())
	}
	return items, iter.Err()
}

// CreateCheckoutSession builds a hosted checkout session from the basket. The
// product's content-store id rides along in the price metadata and the order
// metadata carries what the fulfillment webhook needs.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, basket *models.Basket, meta CheckoutMetadata) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:                stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:          stripe.String(s.SuccessURL + "?orderNumber=" + meta.OrderNumber + "&sessionId={CHECKOUT_SESSION_ID}"),
		CancelURL:           stripe.String(s.CancelURL),
		CustomerEmail:       stripe.String(meta.CustomerEmail),
		AllowPromotionCodes: stripe.Bool(true),
	}
	params.Context = ctx
	params.AddMetadata("orderNumber", meta.OrderNumber)
	params.AddMetadata("customerName", meta.CustomerName)
	params.AddMetadata("customerEmail", meta.CustomerEmail)
	params.AddMetadata("userId", meta.UserID)

	for _, it := range basket.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(it.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(s.Currency),
				UnitAmount: stripe.Int64(int64(math.Round(it.Price * 100))),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:     stripe.String(it.Name),
					Metadata: map[string]string{"id": it.ProductID},
				},
			},
		})
	}

	return session.New(params)
}
