package notify

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

const (
	TypeBookingCreated   = "booking_created"
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
	TypeBookingExpired   = "booking_expired"
	TypePaymentFailed    = "payment_failed"
	TypePaymentRefunded  = "payment_refunded"
	TypeAccessCode       = "access_code"
	TypeOpsAlert         = "ops_alert"
	TypeBroadcast        = "broadcast"
)

// Dispatcher delivers a notification to one user over one channel. The data
// map carries template variables for the delivery backend.
type Dispatcher interface {
	Send(ctx context.Context, userID uuid.UUID, msgType string, channel Channel, data map[string]string) error
}

// LogDispatcher writes notifications to the application log. It stands in
// for a real delivery backend in development and in tests.
type LogDispatcher struct {
	log *zap.Logger
}

func NewLogDispatcher(log *zap.Logger) *LogDispatcher {
	return &LogDispatcher{log: log.With(zap.String("component", "notify"))}
}

func (d *LogDispatcher) Send(ctx context.Context, userID uuid.UUID, msgType string, channel Channel, data map[string]string) error {
	d.log.Info("Dispatching notification",
		zap.String("user_id", userID.String()),
		zap.String("type", msgType),
		zap.String("channel", string(channel)),
		zap.Any("data", data),
	)
	return nil
}
