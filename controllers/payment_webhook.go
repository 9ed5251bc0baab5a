package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"payments-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// Stripe caps webhook payloads well below this; anything larger is junk.
const maxWebhookBodyBytes = int64(65536)

// StripeWebhook verifies an inbound Stripe event and relays charge successes
// to the order service. A 400 here is deliberate contract: Stripe redelivers
// on any non-2xx, so only signature failures get one.
func (pc *PaymentController) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		pc.Logger.Warn("failed to read webhook body", zap.Error(err))
		c.String(http.StatusBadRequest, "Webhook Error: %v", err)
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	event, err := pc.Stripe.VerifyWebhook(payload, sigHeader)
	if err != nil {
		pc.Logger.Warn("webhook signature verification failed", zap.Error(err))
		c.String(http.StatusBadRequest, "Webhook Error: %v", err)
		return
	}

	switch event.Type {
	case "charge.succeeded":
		pc.handleChargeSucceeded(event)
	default:
		pc.Logger.Info("unhandled webhook event type",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
		)
	}

	c.JSON(http.StatusOK, gin.H{"sig": sigHeader})
}

func (pc *PaymentController) handleChargeSucceeded(event stripe.Event) {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		pc.Logger.Error("failed to unmarshal charge",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return
	}

	orderID := charge.Metadata[orderIDMetadataKey]
	if orderID == "" {
		// Data-integrity problem on our side, not Stripe's; acknowledge the
		// delivery and skip the relay.
		pc.Logger.Warn("charge has no orderId metadata, skipping relay",
			zap.String("stripe_payment_id", charge.ID),
			zap.String("event_id", event.ID),
		)
		return
	}

	pc.publishAsync(models.CmdOrderPaymentSuccess, orderID, models.OrderPaymentPayload{
		StripePaymentID: charge.ID,
		OrderID:         orderID,
		ReceiptURL:      charge.ReceiptURL,
	})
}
