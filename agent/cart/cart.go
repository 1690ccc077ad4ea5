// Package cart implements the shopping aggregate shared by the grocery and
// e-commerce agents: line accumulation against a catalog, quantity edits,
// decimal totals, and checkout into a persisted order record.
package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	catalogx "github.com/voicelab-go/agentkit/agent/catalog"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

// Line is one pending cart entry. Quantity is always >= 1; zero-quantity
// lines never exist (removal deletes the line instead).
type Line struct {
	Item     catalogx.Item
	Quantity int
	Variant  string
}

// Subtotal is price x quantity for this line alone. Each line rounds
// independently; the cart total is the plain sum of line subtotals with no
// global rounding adjustment.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// Cart accumulates pending lines for one conversation. Not safe for
// concurrent use: one conversation is one logical thread of control.
type Cart struct {
	catalog *catalogx.Catalog
	lines   map[string]*Line
	seq     []string // first-add display order

	recorder storex.Recorder
	now      func() time.Time
}

// Option customizes a Cart.
type Option func(*Cart)

// WithClock overrides the checkout timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		if now != nil {
			c.now = now
		}
	}
}

func New(catalog *catalogx.Catalog, recorder storex.Recorder, opts ...Option) (*Cart, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is required", contractx.ErrValidation)
	}
	if recorder == nil {
		return nil, fmt.Errorf("%w: recorder is required", contractx.ErrValidation)
	}
	c := &Cart{
		catalog:  catalog,
		lines:    make(map[string]*Line, 8),
		recorder: recorder,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Add resolves ref (id first, then unique name match) and adds qty of the
// item. When the item is already in the cart the quantity accumulates; a
// repeated add compounds rather than dedupes.
func (c *Cart) Add(ref string, qty int, variant string) (Line, error) {
	if qty <= 0 {
		return Line{}, fmt.Errorf("%w: quantity must be positive, got %d", contractx.ErrInvalidQuantity, qty)
	}

	item, err := c.catalog.Resolve(ref)
	if err != nil {
		return Line{}, err
	}
	if !item.HasSize(variant) {
		return Line{}, fmt.Errorf("%w: %s is not offered in size %q", contractx.ErrNotFound, item.Name, variant)
	}

	line, ok := c.lines[item.ID]
	if !ok {
		line = &Line{Item: item, Variant: variant}
		c.lines[item.ID] = line
		c.seq = append(c.seq, item.ID)
	}
	line.Quantity += qty
	if variant != "" {
		line.Variant = variant
	}
	return *line, nil
}

// SetQuantity replaces a line's quantity. Setting it to zero or below is
// rejected; callers remove the line instead.
func (c *Cart) SetQuantity(id string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: use remove instead of quantity %d", contractx.ErrInvalidQuantity, qty)
	}
	line, ok := c.lines[id]
	if !ok {
		return fmt.Errorf("%w: item id=%s", contractx.ErrNotInCart, id)
	}
	line.Quantity = qty
	return nil
}

func (c *Cart) Remove(id string) error {
	if _, ok := c.lines[id]; !ok {
		return fmt.Errorf("%w: item id=%s", contractx.ErrNotInCart, id)
	}
	delete(c.lines, id)
	for i, key := range c.seq {
		if key == id {
			c.seq = append(c.seq[:i], c.seq[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Cart) Clear() {
	c.lines = make(map[string]*Line, 8)
	c.seq = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Catalog exposes the read-only catalog backing this cart.
func (c *Cart) Catalog() *catalogx.Catalog {
	return c.catalog
}

// Lines returns the cart content in first-add order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.seq))
	for _, id := range c.seq {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.seq {
		total = total.Add(c.lines[id].Subtotal())
	}
	return total
}

// View is the pure read used by the view_cart tool.
func (c *Cart) View() ([]Line, decimal.Decimal) {
	return c.Lines(), c.Total()
}
