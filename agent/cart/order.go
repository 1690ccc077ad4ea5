package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// OrderItem is one immutable line copied out of the cart at checkout.
type OrderItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant,omitempty"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// Order is the persisted snapshot of a completed checkout. Money fields are
// serialized with two decimal places.
type Order struct {
	OrderID   string      `json:"order_id"`
	Timestamp time.Time   `json:"timestamp"`
	Items     []OrderItem `json:"items"`
	Total     string      `json:"total"`
	Status    OrderStatus `json:"status"`
}

const ordersCollection = "orders"

// Checkout snapshots the cart into an Order, persists it, and clears the
// cart as one logical step. An empty cart is rejected, and a persistence
// failure leaves the cart intact so the user can try again.
func (c *Cart) Checkout(ctx context.Context) (Order, error) {
	if len(c.lines) == 0 {
		return Order{}, contractx.ErrEmptyCart
	}

	now := c.now().UTC()
	order := Order{
		OrderID:   uuid.NewString(),
		Timestamp: now,
		Items:     make([]OrderItem, 0, len(c.seq)),
		Total:     c.Total().StringFixed(2),
		Status:    OrderStatusPlaced,
	}
	for _, id := range c.seq {
		line := c.lines[id]
		order.Items = append(order.Items, OrderItem{
			ID:        line.Item.ID,
			Name:      line.Item.Name,
			Quantity:  line.Quantity,
			Variant:   line.Variant,
			UnitPrice: line.Item.Price.StringFixed(2),
			Subtotal:  line.Subtotal().StringFixed(2),
		})
	}

	path, err := c.recorder.SaveRecord(ctx, ordersCollection, order.OrderID[:8], order)
	if err != nil {
		return Order{}, fmt.Errorf("persist order: %w", err)
	}

	c.Clear()
	log.Info().
		Str("order_id", order.OrderID).
		Str("total", order.Total).
		Str("path", path).
		Msg("order placed")
	return order, nil
}
