package events

import (
	"context"
	apperrors "roomledger/pkg/errors"
	"roomledger/pkg/kafka"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"
)

type Completer interface {
	Complete(ctx context.Context, bookingID string) (*model.Booking, error)
}

// NewCompletionHandler applies stay.completed events. Redelivered events for
// bookings that already left CONFIRMED are acknowledged without change.
func NewCompletionHandler(completer Completer, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt StayCompletedEvent
		if err := msg.DecodeValue(&evt); err != nil {
			return kafka.NewPermanentError("invalid stay.completed payload", err)
		}
		if evt.BookingID == "" {
			return kafka.NewPermanentError("stay.completed event without booking_id", nil)
		}

		_, err := completer.Complete(ctx, evt.BookingID)
		switch {
		case err == nil:
			return nil
		case apperrors.HasCode(err, apperrors.CodeInvalidState):
			log.Info("Ignoring stay completion for booking not in CONFIRMED status",
				"booking_id", evt.BookingID,
				"event_id", msg.GetEventID(),
			)
			return nil
		case apperrors.HasCode(err, apperrors.CodeNotFound), apperrors.HasCode(err, apperrors.CodeInvalidInput):
			return kafka.NewPermanentError("stay.completed for unknown booking", err).
				WithDetail("booking_id", evt.BookingID)
		default:
			return kafka.NewTransientError("failed to complete booking", err)
		}
	}
}
