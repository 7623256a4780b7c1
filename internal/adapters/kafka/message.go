package kafka

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"currencymonitor/internal/domain"

	"github.com/segmentio/kafka-go"
)

// newMessages builds one message per partition key. The key is the primary
// currency code, the value the JSON list of the rates of that group.
func newMessages(rates []domain.ExchangeRate, now time.Time) ([]kafka.Message, error) {
	groups := make(map[string][]domain.ExchangeRate)
	for _, r := range rates {
		groups[r.PartitionKey()] = append(groups[r.PartitionKey()], r)
	}

	msgs := make([]kafka.Message, 0, len(groups))
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		value, err := json.Marshal(groups[key])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal exchange rates of %s: %w", key, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(key),
			Value: value,
			Time:  now,
		})
	}
	return msgs, nil
}

func decodeRates(msg kafka.Message) ([]domain.ExchangeRate, error) {
	var rates []domain.ExchangeRate
	if err := json.Unmarshal(msg.Value, &rates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exchange rates at offset %d: %w", msg.Offset, err)
	}
	return rates, nil
}
