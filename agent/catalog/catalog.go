package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

// Item is one catalog entry. Items are immutable once loaded; the catalog
// owns them for the process lifetime.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit,omitempty"`
	Category string          `json:"category,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
	Sizes    []string        `json:"sizes,omitempty"`
}

// HasSize reports whether the variant is offered for this item. Items with no
// declared sizes accept only the empty variant.
func (it Item) HasSize(size string) bool {
	if strings.TrimSpace(size) == "" {
		return true
	}
	for _, s := range it.Sizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}

// Catalog is a static, read-only product list keyed by id. Search results
// keep insertion order; there is no ranking.
type Catalog struct {
	items []Item
	byID  map[string]int
}

func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(r io.Reader) (*Catalog, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		items: items,
		byID:  make(map[string]int, len(items)),
	}
	for i, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: catalog item %d has empty id", contractx.ErrValidation, i)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate catalog id %s", contractx.ErrValidation, id)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: catalog item %s has negative price", contractx.ErrValidation, id)
		}
		c.byID[id] = i
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) GetByID(id string) (Item, error) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Item{}, fmt.Errorf("%w: item id=%s", contractx.ErrNotFound, id)
	}
	return c.items[i], nil
}

// Search matches the query as a case-insensitive substring over item names
// and tags.
func (c *Catalog) Search(query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Item
	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
			continue
		}
		for _, tag := range it.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Resolve turns a spoken reference into exactly one item: an id match wins,
// otherwise a unique case-insensitive name match. Multiple name matches are
// reported back as ErrAmbiguous so the caller can disambiguate with the user
// instead of guessing.
func (c *Catalog) Resolve(ref string) (Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Item{}, fmt.Errorf("%w: empty item reference", contractx.ErrValidation)
	}

	if i, ok := c.byID[ref]; ok {
		return c.items[i], nil
	}

	var matches []Item
	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(ref)) {
			matches = append(matches, it)
		}
	}

	switch len(matches) {
	case 0:
		return Item{}, fmt.Errorf("%w: no item matches %q", contractx.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Name)
		}
		return Item{}, fmt.Errorf("%w: %q matches %s", contractx.ErrAmbiguous, ref, strings.Join(names, ", "))
	}
}
