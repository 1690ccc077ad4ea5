package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	catalogx "github.com/voicelab-go/agentkit/agent/catalog"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

const groceryJSON = `[
	{"id": "GR001", "name": "bread", "price": 2.50, "unit": "loaf"},
	{"id": "GR002", "name": "whole milk", "price": 3.20, "unit": "gallon"},
	{"id": "GR003", "name": "oat milk", "price": 4.10, "unit": "carton"}
]`

func newTestCart(t *testing.T) *Cart {
	t.Helper()

	cat, err := catalogx.Parse(strings.NewReader(groceryJSON))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	rec, err := storex.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	c, err := New(cat, rec, WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("new cart: %v", err)
	}
	return c
}

func TestAddAccumulatesQuantity(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	if _, err := c.Add("bread", 2, ""); err != nil {
		t.Fatalf("add by name: %v", err)
	}
	line, err := c.Add("GR001", 1, "")
	if err != nil {
		t.Fatalf("add by id: %v", err)
	}
	if line.Quantity != 3 {
		t.Fatalf("expected accumulated quantity 3, got %d", line.Quantity)
	}

	lines, total := c.View()
	if len(lines) != 1 || lines[0].Item.ID != "GR001" {
		t.Fatalf("unexpected lines: %+v", lines)
	}
	if total.StringFixed(2) != "7.50" {
		t.Fatalf("expected total 7.50, got %s", total.StringFixed(2))
	}
}

func TestAddAmbiguousName(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	_, err := c.Add("milk", 1, "")
	if !errors.Is(err, contractx.ErrAmbiguous) {
		t.Fatalf("expected ambiguous, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatal("ambiguous add must not mutate the cart")
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	if _, err := c.Add("bread", 0, ""); !errors.Is(err, contractx.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
}

func TestRemoveThenAddResetsQuantity(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	if _, err := c.Add("bread", 5, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Remove("GR001"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	line, err := c.Add("bread", 2, "")
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if line.Quantity != 2 {
		t.Fatalf("expected fresh quantity 2, got %d", line.Quantity)
	}
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	if _, err := c.Add("bread", 1, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.SetQuantity("GR001", 4); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	lines, _ := c.View()
	if lines[0].Quantity != 4 {
		t.Fatalf("expected 4, got %d", lines[0].Quantity)
	}

	if err := c.SetQuantity("GR001", 0); !errors.Is(err, contractx.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if err := c.SetQuantity("GR999", 1); !errors.Is(err, contractx.ErrNotInCart) {
		t.Fatalf("expected not in cart, got %v", err)
	}
}

func TestRemoveMissing(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	if err := c.Remove("GR001"); !errors.Is(err, contractx.ErrNotInCart) {
		t.Fatalf("expected not in cart, got %v", err)
	}
}

func TestCheckout(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	if _, err := c.Add("bread", 2, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.Add("oat milk", 1, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	preTotal := c.Total()
	order, err := c.Checkout(context.Background())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.Total != preTotal.StringFixed(2) {
		t.Fatalf("order total %s != cart total %s", order.Total, preTotal.StringFixed(2))
	}
	if order.Status != OrderStatusPlaced {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if len(order.Items) != 2 || order.Items[0].ID != "GR001" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
	if order.OrderID == "" {
		t.Fatal("order id must be generated")
	}
	if c.Len() != 0 {
		t.Fatal("cart must be empty after checkout")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	c := newTestCart(t)
	_, err := c.Checkout(context.Background())
	if !errors.Is(err, contractx.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

type failingRecorder struct{}

func (failingRecorder) SaveRecord(context.Context, string, string, any) (string, error) {
	return "", fmt.Errorf("%w: disk full", contractx.ErrPersistence)
}

func (failingRecorder) SaveDocument(context.Context, string, any) (string, error) {
	return "", fmt.Errorf("%w: disk full", contractx.ErrPersistence)
}

func (failingRecorder) LoadDocument(context.Context, string, any) error {
	return fmt.Errorf("%w: disk full", contractx.ErrPersistence)
}

func TestCheckoutPersistenceFailureKeepsCart(t *testing.T) {
	t.Parallel()

	cat, err := catalogx.Parse(strings.NewReader(groceryJSON))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	c, err := New(cat, failingRecorder{})
	if err != nil {
		t.Fatalf("new cart: %v", err)
	}
	if _, err := c.Add("bread", 1, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err = c.Checkout(context.Background())
	if !errors.Is(err, contractx.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatal("failed checkout must leave the cart intact")
	}
}
