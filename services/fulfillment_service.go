package services

import (
	"context"
	"net/http"
	"time"

	"storefront-service/contentstore"
	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// LineItemLister fetches a checkout session's line items from the payment
// gateway.
type LineItemLister interface {
	ListLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error)
}

// OrderEventPublisher announces created orders downstream. Publishing is best
// effort and never fails the webhook.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
}

// FulfillmentService turns a completed checkout session into decremented
// product stock and one persisted order document.
type FulfillmentService struct {
	store   contentstore.Client
	gateway LineItemLister
	dedup   repository.DedupStore // nil disables duplicate-delivery suppression
	events  OrderEventPublisher   // nil disables order event publishing
	logger  *zap.Logger
}

func NewFulfillmentService(
	store contentstore.Client,
	gateway LineItemLister,
	dedup repository.DedupStore,
	events OrderEventPublisher,
	logger *zap.Logger,
) *FulfillmentService {
	return &FulfillmentService{
		store:   store,
		gateway: gateway,
		dedup:   dedup,
		events:  events,
		logger:  logger,
	}
}

// ProcessCheckoutSession reconciles stock for every line item of the session
// and then creates the order. Line items are handled strictly in sequence and
// order creation only happens after every reconciliation attempt finished.
// A (nil, nil) return means a duplicate delivery was suppressed.
func (s *FulfillmentService) ProcessCheckoutSession(ctx context.Context, sess *stripe.CheckoutSession) (*models.Order, error) {
	if s.dedup != nil {
		first, err := s.dedup.MarkDelivered(ctx, sess.ID)
		if err != nil {
			// Dedup errors never block fulfillment.
			s.logger.Warn("Delivery dedup check failed",
				zap.String("session_id", sess.ID),
				zap.Error(err),
			)
		} else if !first {
			s.logger.Info("Skipping duplicate checkout webhook",
				zap.String("session_id", sess.ID),
			)
			return nil, nil
		}
	}

	items, err := s.gateway.ListLineItems(ctx, sess.ID)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to list line items for session "+sess.ID, err)
	}

	products := make([]models.OrderProduct, 0, len(items))
	for _, item := range items {
		ref := productRef(item)
		if ref == "" || item.Quantity == 0 {
			// Items without a content-store reference or a quantity carry
			// nothing to fulfill.
			continue
		}
		products = append(products, models.OrderProduct{
			ItemKey:    uuid.NewString(),
			ProductRef: ref,
			Quantity:   item.Quantity,
		})
	}

	if err := s.reconcileStock(ctx, sess.ID, products); err != nil {
		return nil, err
	}

	order, err := s.store.CreateOrder(ctx, s.buildOrder(sess, products))
	if err != nil {
		return nil, apperrors.OrderCreationFailed(err)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("order_number", order.OrderNumber),
		zap.String("session_id", sess.ID),
		zap.Int("products", len(order.Products)),
		zap.Float64("total_price", order.TotalPrice),
	)

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, order); err != nil {
			s.logger.Warn("Failed to publish order event",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

// reconcileStock decrements each product's stock by the purchased quantity,
// one write per item. The loop is not transactional across items: a failure
// partway leaves earlier decrements in place and aborts order creation.
func (s *FulfillmentService) reconcileStock(ctx context.Context, sessionID string, products []models.OrderProduct) error {
	for _, p := range products {
		product, err := s.store.FetchProduct(ctx, p.ProductRef)
		if err != nil {
			return apperrors.StockUpdateFailed(p.ProductRef, err)
		}
		if product == nil {
			s.logger.Warn("Product not found, skipping stock update",
				zap.String("product_id", p.ProductRef),
				zap.String("session_id", sessionID),
			)
			continue
		}

		current, ok := product.Stock.ValidCount()
		if !ok {
			s.logger.Warn("Product stock is not a valid count, skipping stock update",
				zap.String("product_id", p.ProductRef),
				zap.String("session_id", sessionID),
			)
			continue
		}

		// Negative results are written as-is; there is no clamp at zero.
		newStock := current - p.Quantity
		if newStock < 0 {
			s.logger.Warn("Stock decremented below zero",
				zap.String("product_id", p.ProductRef),
				zap.Int64("stock", newStock),
			)
		}

		if err := s.store.Patch(p.ProductRef).
			Set(map[string]interface{}{"stock": newStock}).
			Commit(ctx); err != nil {
			return apperrors.StockUpdateFailed(p.ProductRef, err)
		}

		s.logger.Info("Updated product stock",
			zap.String("product_id", p.ProductRef),
			zap.Int64("stock", newStock),
		)
	}
	return nil
}

// buildOrder maps the session onto an order document. Amounts arrive in minor
// currency units and are stored in major units; missing amounts count as 0.
func (s *FulfillmentService) buildOrder(sess *stripe.CheckoutSession, products []models.OrderProduct) *models.Order {
	var paymentIntentID string
	if sess.PaymentIntent != nil {
		paymentIntentID = sess.PaymentIntent.ID
	}
	var customerID string
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	var discount float64
	if sess.TotalDetails != nil {
		discount = float64(sess.TotalDetails.AmountDiscount) / 100
	}

	return &models.Order{
		OrderNumber:       sess.Metadata["orderNumber"],
		CheckoutSessionID: sess.ID,
		PaymentIntentID:   paymentIntentID,
		CustomerName:      sess.Metadata["customerName"],
		CustomerID:        customerID,
		UserID:            sess.Metadata["userId"],
		Email:             sess.Metadata["customerEmail"],
		Currency:          string(sess.Currency),
		AmountDiscount:    discount,
		Products:          products,
		TotalPrice:        float64(sess.AmountTotal) / 100,
		Status:            models.StatusPaid,
		OrderDate:         time.Now().UTC(),
	}
}

// productRef extracts the content-store product id from an expanded line item.
func productRef(item *stripe.LineItem) string {
	if item.Price == nil || item.Price.Product == nil {
		return ""
	}
	return item.Price.Product.Metadata["id"]
}
