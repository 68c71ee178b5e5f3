package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"

	// OrdersChannel is the Redis pub/sub channel carrying order events.
	OrdersChannel = "orders:events"
)

type OrderEvent struct {
	Type    string `json:"type"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Publisher announces that the order list changed; delivery is best-effort.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, ev OrderEvent)
}

// Notifier announces order events. With Redis the event goes through OrdersChannel and
// every instance's Relay pushes it to its own panels; without Redis it goes straight to the hub.
type Notifier struct {
	hub *Hub
	rdb *redis.Client
	log *zap.Logger
}

// NewNotifier accepts a nil rdb when Redis is not in use.
func NewNotifier(hub *Hub, rdb *redis.Client, log *zap.Logger) *Notifier {
	return &Notifier{hub: hub, rdb: rdb, log: log.Named("notifier")}
}

func (n *Notifier) PublishOrderEvent(ctx context.Context, ev OrderEvent) {
	if n.rdb == nil {
		n.hub.BroadcastJSON(panelMessage(ev))
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		n.log.Error("marshal order event", zap.Error(err))
		return
	}
	if err := n.rdb.Publish(ctx, OrdersChannel, payload).Err(); err != nil {
		n.log.Warn("publish order event failed, notifying local panels only", zap.String("order_id", ev.OrderID), zap.Error(err))
		n.hub.BroadcastJSON(panelMessage(ev))
	}
}

func panelMessage(ev OrderEvent) map[string]any {
	return map[string]any{"type": "orders_changed", "event": ev}
}

// Relay subscribes to OrdersChannel and forwards each event to the local hub until ctx ends.
func Relay(ctx context.Context, rdb *redis.Client, hub *Hub, log *zap.Logger) error {
	log = log.Named("relay")
	sub := rdb.Subscribe(ctx, OrdersChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", OrdersChannel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Warn("drop malformed order event", zap.String("payload", msg.Payload), zap.Error(err))
				continue
			}
			hub.BroadcastJSON(panelMessage(ev))
		}
	}
}
