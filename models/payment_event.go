package models

// Commands published to Kafka. Each command name doubles as the topic the
// downstream service subscribes to.
const (
	CmdOrderPaymentSuccess = "order-payment-success"
	CmdOrderSessionCreated = "order-session-created"
	CmdOrderSessionFailed  = "order-session-failed"
)

// OrderPaymentPayload is the normalized payload relayed to the order service
// when a charge succeeds.
type OrderPaymentPayload struct {
	StripePaymentID string `json:"stripePaymentId"`
	OrderID         string `json:"orderId"`
	ReceiptURL      string `json:"receiptUrl"`
}

// SessionCreatedPayload notifies internal services that an async
// session request produced a hosted checkout page.
type SessionCreatedPayload struct {
	OrderID    string `json:"orderId"`
	URL        string `json:"url"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type SessionFailedPayload struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}
