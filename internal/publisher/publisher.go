// Package publisher emits order lifecycle events to kafka. Publishing
// is best-effort: the order is already placed by the time an event goes
// out, so a broker failure is logged by the caller, never propagated to
// the buyer.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/segmentio/kafka-go"
)

type OrderPublisher struct {
	timeout time.Duration
	writer  *kafka.Writer
}

func NewOrderPublisher(brokers ...string) *OrderPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OrderPublisher{timeout: 5 * time.Second, writer: w}
}

func (p *OrderPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Checkout) error {
	if order.Order == nil {
		return fmt.Errorf("checkout %s has no order confirmation", order.ID)
	}

	payload := map[string]interface{}{
		"order_id":     order.Order.ID,
		"checkout_id":  order.ID,
		"total_amount": domain.AmountOf(order.Totals, domain.TotalTypeTotal),
		"currency":     order.Currency,
		"placed_at":    time.Now(),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.Order.ID),
		Value: payloadJSON,
	})
}

func (p *OrderPublisher) Close() error {
	return p.writer.Close()
}
