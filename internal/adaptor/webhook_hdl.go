package adaptor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

const signatureHeader = "X-Payment-Signature"

type WebhookHandler struct {
	service usecase.PaymentService
	secret  []byte
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.PaymentService, secret string, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		secret:  []byte(secret),
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// HandlePaymentEvent handles POST /api/webhooks/payment (provider only).
// The signature is verified over the raw body before any decoding.
func (h *WebhookHandler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.ResponseBadRequest(w, "Unable to read request body", nil)
		return
	}

	if !h.verifySignature(body, r.Header.Get(signatureHeader)) {
		h.log.Warn("Webhook signature verification failed",
			zap.String("remote_addr", r.RemoteAddr),
		)
		utils.ResponseUnauthorized(w, "Invalid signature")
		return
	}

	var event request.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(event); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	err = h.service.HandleEvent(r.Context(), &event)
	if errors.Is(err, usecase.ErrIdempotentNoop) {
		// Redelivery of an already-applied event. Acknowledge so the
		// provider stops retrying.
		h.log.Info("Webhook event already processed",
			zap.String("provider_payment_id", event.ProviderPaymentID),
		)
		utils.ResponseSuccess(w, "event already processed", nil)
		return
	}
	if err != nil {
		handleServiceError(w, h.log, err, "handle payment event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
