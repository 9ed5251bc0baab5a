package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payments-service/models"
	"payments-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
)

const webhookTestSecret = "whsec_controller_test"

var errTest = errors.New("broker unavailable")

func signWebhookPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventBody(eventType, orderID string) []byte {
	metadata := ""
	if orderID != "" {
		metadata = fmt.Sprintf(`"orderId":%q`, orderID)
	}
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","api_version":%q,"type":%q,"data":{"object":{"id":"ch_1","metadata":{%s},"receipt_url":"https://pay.stripe.com/receipts/r_1"}}}`,
		stripe.APIVersion, eventType, metadata,
	))
}

// webhookRouter wires the real Stripe verifier so these tests exercise actual
// signature checks end to end.
func webhookRouter(publisher EventPublisher) *gin.Engine {
	svc := services.NewStripeService("sk_test_key", webhookTestSecret,
		"https://shop.test/success", "https://shop.test/cancel")
	return newTestRouter(svc, publisher)
}

func postWebhook(r *gin.Engine, body []byte, sigHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	if sigHeader != "" {
		req.Header.Set("Stripe-Signature", sigHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func waitForPublish(t *testing.T, p *capturePublisher) publishedMessage {
	t.Helper()
	select {
	case msg := <-p.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for publish")
		return publishedMessage{}
	}
}

func assertNoPublish(t *testing.T, p *capturePublisher) {
	t.Helper()
	select {
	case msg := <-p.messages:
		t.Fatalf("unexpected publish: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStripeWebhook_ChargeSucceededRelaysEvent(t *testing.T) {
	publisher := newCapturePublisher()
	r := webhookRouter(publisher)

	body := eventBody("charge.succeeded", "ord-1")
	sig := signWebhookPayload(body, webhookTestSecret)
	w := postWebhook(r, body, sig)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"sig":%q}`, sig), w.Body.String())

	msg := waitForPublish(t, publisher)
	assert.Equal(t, models.CmdOrderPaymentSuccess, msg.Cmd)
	assert.Equal(t, "ord-1", msg.Key)
	assert.Equal(t, models.OrderPaymentPayload{
		StripePaymentID: "ch_1",
		OrderID:         "ord-1",
		ReceiptURL:      "https://pay.stripe.com/receipts/r_1",
	}, msg.Payload)
}

func TestStripeWebhook_PublishFailureStillAcknowledged(t *testing.T) {
	publisher := newCapturePublisher()
	publisher.err = errTest
	r := webhookRouter(publisher)

	body := eventBody("charge.succeeded", "ord-1")
	w := postWebhook(r, body, signWebhookPayload(body, webhookTestSecret))

	// At-most-once: the delivery attempt fails, is logged, and is not retried.
	assert.Equal(t, http.StatusOK, w.Code)
	msg := waitForPublish(t, publisher)
	assert.Equal(t, models.CmdOrderPaymentSuccess, msg.Cmd)
	assertNoPublish(t, publisher)
}

func TestStripeWebhook_TamperedBodyRejected(t *testing.T) {
	publisher := newCapturePublisher()
	r := webhookRouter(publisher)

	body := eventBody("charge.succeeded", "ord-1")
	sig := signWebhookPayload(body, webhookTestSecret)

	tampered := make([]byte, len(body))
	copy(tampered, body)
	tampered[len(tampered)/2] ^= 0x01

	w := postWebhook(r, tampered, sig)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Webhook Error")
	assertNoPublish(t, publisher)
}

func TestStripeWebhook_MissingSignatureHeader(t *testing.T) {
	publisher := newCapturePublisher()
	r := webhookRouter(publisher)

	w := postWebhook(r, eventBody("charge.succeeded", "ord-1"), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertNoPublish(t, publisher)
}

func TestStripeWebhook_OtherEventTypesAcknowledgedWithoutRelay(t *testing.T) {
	publisher := newCapturePublisher()
	r := webhookRouter(publisher)

	body := eventBody("payment_intent.created", "ord-1")
	w := postWebhook(r, body, signWebhookPayload(body, webhookTestSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assertNoPublish(t, publisher)
}

func TestStripeWebhook_MissingOrderIDSkipsRelay(t *testing.T) {
	publisher := newCapturePublisher()
	r := webhookRouter(publisher)

	body := eventBody("charge.succeeded", "")
	w := postWebhook(r, body, signWebhookPayload(body, webhookTestSecret))

	// Not the provider's fault; acknowledge so Stripe does not redeliver.
	assert.Equal(t, http.StatusOK, w.Code)
	assertNoPublish(t, publisher)
}
