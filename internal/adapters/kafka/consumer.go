package kafka

import (
	"context"
	"errors"

	"currencymonitor/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ChangeHandler evaluates a batch of changed rates and returns once all of
// them were handled.
type ChangeHandler interface {
	HandleChanged(ctx context.Context, rates []domain.ExchangeRate) error
}

// Consumer reads changed rates and hands them to the notification side.
// A message is committed once its batch was handled, failed evaluations
// included: notified subscribers are not mailed twice a day anyway.
type Consumer struct {
	reader  messageReader
	handler ChangeHandler
}

func NewConsumer(brokers []string, topic, groupID string, handler ChangeHandler) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			Topic:          topic,
			GroupID:        groupID,
			MaxBytes:       10e6,
			CommitInterval: 0,
			StartOffset:    kafka.FirstOffset,
		}),
		handler: handler,
	}
}

// Run blocks until ctx is done or the reader fails.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		logger := logrus.WithFields(logrus.Fields{"key": string(msg.Key), "partition": msg.Partition, "offset": msg.Offset})

		rates, err := decodeRates(msg)
		if err != nil {
			// poison message, skip it
			logger.WithError(err).Error("Dropping undecodable message")
		} else if err = c.handler.HandleChanged(ctx, rates); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil
			}
			logger.WithError(err).Errorf("Failed to handle %d changed exchange rates", len(rates))
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
