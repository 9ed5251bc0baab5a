package controllers

import (
	"context"
	"net/http"

	"payments-service/apperrors"
	"payments-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// CheckoutProvider is the slice of the Stripe service the controller needs.
// Kept as an interface so tests can substitute a fake provider.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

// EventPublisher hands messages to the bus. Delivery semantics past the broker
// are the bus client's responsibility.
type EventPublisher interface {
	Publish(ctx context.Context, cmd, key string, payload any) error
}

type PaymentController struct {
	Stripe    CheckoutProvider
	Publisher EventPublisher
	Logger    *zap.Logger
}

// CreatePaymentSession converts an order's line items into a hosted Stripe
// checkout session and returns the redirect URLs.
func (pc *PaymentController) CreatePaymentSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pc.respondError(c, apperrors.NewValidation("invalid checkout request", err))
		return
	}

	sess, err := pc.Stripe.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		pc.respondError(c, apperrors.NewUpstream("failed to create payment session", err))
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Success is the landing endpoint Stripe redirects to after payment.
func (pc *PaymentController) Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Payment was successful",
	})
}

// Cancel is the landing endpoint for abandoned checkouts.
func (pc *PaymentController) Cancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      false,
		"message": "Payment Canceled",
	})
}
