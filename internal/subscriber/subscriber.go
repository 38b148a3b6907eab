package subscriber

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/payment-processor/config"
	"github.com/bankcore/payment-processor/internal/models"
	"github.com/bankcore/payment-processor/internal/publisher"
)

type KafkaConsumer struct {
	Readers      []*kafka.Reader
	DLQPublisher *publisher.KafkaPublisher
	RetryConfig  config.RetryConfig
}

func NewMultiTopicConsumer(
	brokers []string,
	topics []string,
	groupID string,
	publisher *publisher.KafkaPublisher,
	retryConfig config.RetryConfig,
) *KafkaConsumer {
	readers := make([]*kafka.Reader, len(topics))
	for i, topic := range topics {
		readers[i] = kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		})
	}

	return &KafkaConsumer{
		Readers:      readers,
		DLQPublisher: publisher,
		RetryConfig:  retryConfig,
	}
}

func (c *KafkaConsumer) Listen(ctx context.Context, handler func(topic string, value []byte) error) {
	for _, reader := range c.Readers {
		go func(r *kafka.Reader) {
			for {
				msg, err := r.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logrus.Warnf("kafka read error: %v", err)
					continue
				}
				c.processMessage(ctx, msg, handler)
			}
		}(reader)
	}
}

func (c *KafkaConsumer) Close() {
	for _, reader := range c.Readers {
		if err := reader.Close(); err != nil {
			logrus.Warnf("closing kafka reader: %v", err)
		}
	}
}

func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message, handler func(topic string, value []byte) error) {
	for attempt := 0; attempt < c.RetryConfig.MaxAttempts; attempt++ {
		err := handler(msg.Topic, msg.Value)
		if err == nil {
			return
		}

		backoff := c.calculateBackoff(attempt)
		logrus.Warnf("handler error, attempt %d/%d: %v. Retrying in %v", attempt+1, c.RetryConfig.MaxAttempts, err, backoff)
		time.Sleep(backoff)
	}

	logrus.Errorf("message failed after %d retries: topic=%s, key=%s", c.RetryConfig.MaxAttempts, msg.Topic, string(msg.Key))
	if c.DLQPublisher != nil {
		dlqMessage := models.DLQMessage{
			OriginalTopic: msg.Topic,
			Key:           string(msg.Key),
			Value:         string(msg.Value),
			Timestamp:     time.Now().UTC(),
			Attempts:      c.RetryConfig.MaxAttempts,
		}
		err := c.DLQPublisher.Publish(ctx, models.PaymentsDLQTopic, dlqMessage)
		if err != nil {
			logrus.Errorf("failed to send message to DLQ: %v", err)
		} else {
			logrus.Infof("message sent to DLQ: original topic=%s, key=%s", msg.Topic, string(msg.Key))
		}
	}
}

func (c *KafkaConsumer) calculateBackoff(attempt int) time.Duration {
	delay := time.Duration(math.Pow(2, float64(attempt))) * c.RetryConfig.BaseDelay

	if delay > c.RetryConfig.MaxDelay {
		delay = c.RetryConfig.MaxDelay
	}

	if c.RetryConfig.Jitter {
		jitter := time.Duration(rand.Float64() * float64(delay) * 0.3)
		delay = delay + jitter - time.Duration(float64(delay)*0.15)
	}

	return delay
}
