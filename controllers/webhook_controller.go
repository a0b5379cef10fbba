package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// WebhookController receives payment-gateway notifications. Verification
// failures answer 400 (the gateway does not retry those usefully); any
// downstream reconciliation or persistence failure answers 500 so the gateway
// redelivers.
type WebhookController struct {
	Stripe      *services.StripeService
	Fulfillment *services.FulfillmentService
	Audit       repository.WebhookEventStore // nil disables the audit trail
	Logger      *zap.Logger
}

// StripeWebhook handles POST /webhook.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	event, err := wc.Stripe.ParseWebhook(c.Request)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoSignature):
			wc.Logger.Warn("No Stripe signature found in headers")
		case errors.Is(err, apperrors.ErrSecretNotSet):
			// Deployment defect, not gateway misbehavior
			wc.Logger.Error("Stripe webhook secret is not set")
		default:
			wc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		}
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	wc.Logger.Info("Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	if event.Type != "checkout.session.completed" {
		wc.Logger.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
		wc.audit(c.Request.Context(), event, "", models.WebhookSkipped, "")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		wc.Logger.Error("Failed to unmarshal checkout session", zap.Error(err))
		wc.audit(c.Request.Context(), event, "", models.WebhookFailed, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout session payload"})
		return
	}

	order, err := wc.Fulfillment.ProcessCheckoutSession(c.Request.Context(), &sess)
	if err != nil {
		wc.Logger.Error("Error processing checkout session",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		wc.audit(c.Request.Context(), event, sess.ID, models.WebhookFailed, err.Error())
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if order != nil {
		wc.Logger.Info("Checkout session fulfilled",
			zap.String("session_id", sess.ID),
			zap.String("order_number", order.OrderNumber),
		)
	}
	wc.audit(c.Request.Context(), event, sess.ID, models.WebhookProcessed, "")
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// audit records the event outcome; best effort, a failed write never fails
// the webhook.
func (wc *WebhookController) audit(ctx context.Context, event stripe.Event, sessionID, status, errMsg string) {
	if wc.Audit == nil {
		return
	}

	payload, _ := json.Marshal(event)
	record := &models.WebhookEvent{
		EventID:   event.ID,
		EventType: string(event.Type),
		SessionID: sessionID,
		Payload:   string(payload),
		Status:    status,
		Error:     errMsg,
	}
	if err := wc.Audit.Record(ctx, record); err != nil {
		wc.Logger.Warn("Failed to record webhook event",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}
}
