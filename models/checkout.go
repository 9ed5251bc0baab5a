package models

import (
	"errors"
	"fmt"
)

// CheckoutRequest is the body of POST /payments/create-payment-session and the
// payload of session-request messages consumed from Kafka. Validation happens
// at the boundary through the binding tags before any Stripe call is made.
type CheckoutRequest struct {
	OrderID  string         `json:"orderId" binding:"required"`
	Currency string         `json:"currency" binding:"required"`
	Items    []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

type CheckoutItem struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Quantity int64   `json:"quantity" binding:"required,gte=1"`
}

// Validate applies the boundary constraints for callers that bypass gin
// binding (the Kafka session-request path).
func (r CheckoutRequest) Validate() error {
	if r.OrderID == "" {
		return errors.New("orderId is required")
	}
	if r.Currency == "" {
		return errors.New("currency is required")
	}
	if len(r.Items) == 0 {
		return errors.New("items must not be empty")
	}
	for i, item := range r.Items {
		if item.Name == "" {
			return fmt.Errorf("items[%d].name is required", i)
		}
		if item.Price < 0 {
			return fmt.Errorf("items[%d].price must not be negative", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("items[%d].quantity must be at least 1", i)
		}
	}
	return nil
}

// CheckoutSession carries the three URLs the caller needs to redirect the
// customer. Stripe remains the system of record; nothing is stored locally.
type CheckoutSession struct {
	CancelURL  string `json:"cancelUrl"`
	SuccessURL string `json:"successUrl"`
	URL        string `json:"url"`
}
