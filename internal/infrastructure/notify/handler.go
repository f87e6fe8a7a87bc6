package notify

import (
	"context"
	"fmt"

	"github.com/ledgerbook/backend/internal/domain/payment"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PaymentNotificationHandler turns payment domain events into
// human-readable notifications and forwards them to a sink
type PaymentNotificationHandler struct {
	sink   Sink
	logger *zap.Logger
}

// NewPaymentNotificationHandler creates a PaymentNotificationHandler
func NewPaymentNotificationHandler(sink Sink, logger *zap.Logger) *PaymentNotificationHandler {
	return &PaymentNotificationHandler{
		sink:   sink,
		logger: logger.Named("payment_notifications"),
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PaymentNotificationHandler) EventTypes() []string {
	return []string{
		payment.EventTypePaymentRecorded,
		payment.EventTypePaymentDeleted,
		payment.EventTypePartyPaymentCreated,
		payment.EventTypePartyPaymentReversed,
	}
}

// Handle formats the event and sends it to the sink
func (h *PaymentNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var n Notification

	switch e := event.(type) {
	case *payment.PaymentRecordedEvent:
		n = Notification{
			Kind:    event.EventType(),
			Message: fmt.Sprintf("Payment of %s recorded for %s", e.Amount.StringFixed(2), e.PartyName),
		}
	case *payment.PaymentDeletedEvent:
		n = Notification{
			Kind:    event.EventType(),
			Message: fmt.Sprintf("Payment of %s deleted", e.Amount.StringFixed(2)),
		}
	case *payment.PartyPaymentCreatedEvent:
		msg := fmt.Sprintf("Payment of %s received from %s, allocated across %d items",
			e.Amount.StringFixed(2), e.PartyName, e.AllocationsCount)
		if e.CreditAdded.IsPositive() {
			msg = fmt.Sprintf("%s (%s banked as credit)", msg, e.CreditAdded.StringFixed(2))
		}
		n = Notification{Kind: event.EventType(), Message: msg}
	case *payment.PartyPaymentReversedEvent:
		n = Notification{
			Kind: event.EventType(),
			Message: fmt.Sprintf("Payment of %s from %s reversed, %d allocations undone",
				e.Amount.StringFixed(2), e.PartyName, e.AllocationsCount),
		}
	default:
		h.logger.Debug("ignoring unknown event", zap.String("event_type", event.EventType()))
		return nil
	}

	return h.sink.Send(ctx, n)
}

var _ shared.EventHandler = (*PaymentNotificationHandler)(nil)
