package adaptor

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubPaymentService struct {
	err    error
	events []*request.PaymentEvent
}

func (s *stubPaymentService) HandleEvent(ctx context.Context, event *request.PaymentEvent) error {
	s.events = append(s.events, event)
	return s.err
}

const testSecret = "whsec_test"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookBody() []byte {
	return []byte(`{
		"type": "payment_succeeded",
		"provider_payment_id": "pi_123",
		"booking_ref": "STAY-20260101-120000-0001",
		"succeeded": {"amount_minor": 60000, "currency": "USD", "paid_at": "2026-01-05T12:00:00Z"}
	}`)
}

func postWebhook(h *WebhookHandler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(signatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	h.HandlePaymentEvent(rec, req)
	return rec
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	svc := &stubPaymentService{}
	h := NewWebhookHandler(svc, testSecret, zap.NewNop())

	rec := postWebhook(h, webhookBody(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.events)
}

func TestWebhookRejectsTamperedBody(t *testing.T) {
	svc := &stubPaymentService{}
	h := NewWebhookHandler(svc, testSecret, zap.NewNop())

	body := webhookBody()
	signature := sign(body)
	tampered := bytes.Replace(body, []byte("60000"), []byte("1"), 1)

	rec := postWebhook(h, tampered, signature)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.events)
}

func TestWebhookAcceptsSignedEvent(t *testing.T) {
	svc := &stubPaymentService{}
	h := NewWebhookHandler(svc, testSecret, zap.NewNop())

	body := webhookBody()
	rec := postWebhook(h, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, svc.events, 1)
	assert.Equal(t, "pi_123", svc.events[0].ProviderPaymentID)
}

func TestWebhookAcknowledgesRedelivery(t *testing.T) {
	svc := &stubPaymentService{err: fmt.Errorf("%w: payment pi_123 is already succeeded", usecase.ErrIdempotentNoop)}
	h := NewWebhookHandler(svc, testSecret, zap.NewNop())

	body := webhookBody()
	rec := postWebhook(h, body, sign(body))

	// Redeliveries are acknowledged so the provider stops retrying.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookSurfacesNoAvailabilityConflict(t *testing.T) {
	svc := &stubPaymentService{err: fmt.Errorf("confirm booking: %w", repository.ErrNoAvailability)}
	h := NewWebhookHandler(svc, testSecret, zap.NewNop())

	body := webhookBody()
	rec := postWebhook(h, body, sign(body))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
