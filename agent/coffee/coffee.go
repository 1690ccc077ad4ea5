// Package coffee implements the barista agent core. Unlike the cart-based
// shopping agents it collects one slot-style drink order and saves it in the
// exact shape downstream order consumers already read:
//
//	orders/order_YYYYMMDD_HHMMSS_<Customer_Name>.json
//	{"drinkType": ..., "size": ..., "milk": ..., "extras": [...],
//	 "name": ..., "timestamp": ..., "status": "confirmed"}
package coffee

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

// Order is the persisted drink order. Field names match the legacy files.
type Order struct {
	DrinkType string   `json:"drinkType"`
	Size      string   `json:"size"`
	Milk      string   `json:"milk"`
	Extras    []string `json:"extras"`
	Name      string   `json:"name"`
	Timestamp string   `json:"timestamp"`
	Status    string   `json:"status"`
}

var (
	validSizes = []string{"small", "medium", "large"}
	validMilks = []string{"whole", "skim", "oat", "almond", "soy", "none"}
)

const ordersCollection = "orders"

// Bar takes confirmed drink orders.
type Bar struct {
	recorder storex.Recorder
	now      func() time.Time
}

// BarOption customizes a Bar.
type BarOption func(*Bar)

func WithClock(now func() time.Time) BarOption {
	return func(b *Bar) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBar(recorder storex.Recorder, opts ...BarOption) (*Bar, error) {
	if recorder == nil {
		return nil, fmt.Errorf("%w: recorder is required", contractx.ErrValidation)
	}
	b := &Bar{recorder: recorder, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// SaveOrder persists a confirmed order and returns the spoken confirmation.
// extras is the comma-separated list the controller collected ("extra shot,
// whipped cream"); blank entries are dropped.
func (b *Bar) SaveOrder(ctx context.Context, drinkType, size, milk, extras, customerName string) (string, error) {
	drinkType = strings.TrimSpace(drinkType)
	customerName = strings.TrimSpace(customerName)
	size = strings.ToLower(strings.TrimSpace(size))
	milk = strings.ToLower(strings.TrimSpace(milk))

	if drinkType == "" {
		return "", fmt.Errorf("%w: drink type is required", contractx.ErrValidation)
	}
	if customerName == "" {
		return "", fmt.Errorf("%w: customer name is required", contractx.ErrValidation)
	}
	if !contains(validSizes, size) {
		return "", fmt.Errorf("%w: size must be one of %s", contractx.ErrValidation, strings.Join(validSizes, ", "))
	}
	if !contains(validMilks, milk) {
		return "", fmt.Errorf("%w: milk must be one of %s", contractx.ErrValidation, strings.Join(validMilks, ", "))
	}

	order := Order{
		DrinkType: drinkType,
		Size:      size,
		Milk:      milk,
		Extras:    splitExtras(extras),
		Name:      customerName,
		Timestamp: b.now().Format(time.RFC3339),
		Status:    "confirmed",
	}

	path, err := b.recorder.SaveRecord(ctx, ordersCollection, customerName, order)
	if err != nil {
		return "", err
	}

	orderID := filepath.Base(path)
	log.Info().Str("customer", customerName).Str("order_id", orderID).Msg("coffee order saved")

	return fmt.Sprintf(
		"Order saved successfully! Your %s %s with %s will be ready soon, %s. Order ID: %s",
		order.Size, order.DrinkType, milkPhrase(order.Milk), order.Name, orderID,
	), nil
}

func splitExtras(extras string) []string {
	parts := strings.Split(extras, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func milkPhrase(milk string) string {
	if milk == "none" {
		return "no milk"
	}
	return milk + " milk"
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
