package wire

import (
	"hotel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	// No session auth: the provider authenticates with the HMAC signature
	// over the raw body.
	r.Post("/api/webhooks/payment", webhookHandler.HandlePaymentEvent)
}
