package messaging

import (
	"time"

	"clinical-assistant/config"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// NewKafkaWriter builds the producer for booking events.
// Returns nil when no brokers are configured.
//
// Writes are asynchronous so an unreachable broker never holds up a booking;
// delivery failures are only logged.
func NewKafkaWriter(cfg config.KafkaConfig, log *logrus.Logger) *kafka.Writer {
	if len(cfg.Brokers) == 0 {
		return nil
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.BookingTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            1,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warnf("Failed to deliver %d booking event(s): %+v", len(messages), err)
			}
		},
	}
}
