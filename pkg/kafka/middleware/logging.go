package kafka_middleware

import (
	"context"
	"time"

	"roomledger/pkg/kafka"
	"roomledger/pkg/logger"
)

func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		log.Debug("Publishing message",
			"topic", msg.Topic,
			"key", msg.Key,
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
			"correlation_id", msg.GetCorrelationID(),
		)

		err := next(ctx, msg)

		if err != nil {
			log.Error("Failed to publish message",
				"topic", msg.Topic,
				"key", msg.Key,
				"event_type", msg.GetEventType(),
				"event_id", msg.GetEventID(),
				"duration", time.Since(start),
				"error", err,
			)
			return err
		}

		log.Info("Message published",
			"topic", msg.Topic,
			"key", msg.Key,
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
			"duration", time.Since(start),
		)
		return nil
	}
}

func LoggingConsumerMiddleware(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		ctx = logger.WithRequestID(ctx, msg.GetCorrelationID())

		err := next(ctx, msg)

		if err != nil {
			log.Warn("Message handler failed",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"event_id", msg.GetEventID(),
				"retry_count", msg.GetRetryCount(),
				"duration", time.Since(start),
				"error", err,
			)
			return err
		}

		log.Info("Message processed",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"event_id", msg.GetEventID(),
			"duration", time.Since(start),
		)
		return nil
	}
}
