package services

import (
	"context"
	"math"

	"payments-service/models"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

// OrderIDMetadataKey is attached to the payment intent so the order reference
// survives the round trip to the charge webhook.
const OrderIDMetadataKey = "orderId"

type StripeService struct {
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

func NewStripeService(secretKey, webhookSecret, successURL, cancelURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		WebhookSecret: webhookSecret,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
	}
}

// CreateCheckoutSession builds a hosted Stripe checkout page for the order.
// One line item per request item, amounts in minor currency units.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.SuccessURL),
		CancelURL:  stripe.String(s.CancelURL),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				OrderIDMetadataKey: req.OrderID,
			},
		},
		LineItems: BuildLineItems(req),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &models.CheckoutSession{
		CancelURL:  sess.CancelURL,
		SuccessURL: sess.SuccessURL,
		URL:        sess.URL,
	}, nil
}

// BuildLineItems maps request items onto Stripe line-item params.
func BuildLineItems(req models.CheckoutRequest) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(MinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	return lineItems
}

// MinorUnits converts a decimal price to Stripe's minor currency units,
// rounding half away from zero so 9.99 becomes 999 and 0.005 becomes 1.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// VerifyWebhook checks the stripe-signature header against the raw body and
// the endpoint secret. ConstructEvent recomputes the HMAC over the raw bytes,
// compares in constant time and enforces the default timestamp tolerance.
func (s *StripeService) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookSecret)
}
