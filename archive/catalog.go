package archive

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/bazaar-agents/haggle/core/trade"
)

// Catalog keeps the product namespace of a Store decoded in memory. A serving
// daemon bootstraps it once and then seeds sessions by product name without
// touching storage per request; names missing from memory fall through to the
// store, so products archived after boot stay reachable. Safe for concurrent
// use.
type Catalog struct {
	store Store

	mu       sync.RWMutex
	products map[string]trade.Product
}

// NewCatalog creates a Catalog backed by the given Store.
func NewCatalog(store Store) *Catalog {
	return &Catalog{
		store:    store,
		products: make(map[string]trade.Product),
	}
}

// Bootstrap loads and decodes every product descriptor in the store. One
// descriptor that fails to parse aborts the whole bootstrap; a daemon should
// refuse to serve from a catalog it cannot fully read.
func (c *Catalog) Bootstrap(ctx context.Context) error {
	keys, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("catalog index: %w", err)
	}

	var productKeys []string
	for _, key := range keys {
		if strings.HasPrefix(key, NamespaceProducts+"/") {
			productKeys = append(productKeys, key)
		}
	}
	if len(productKeys) == 0 {
		return nil
	}

	entries, err := c.store.Load(ctx, productKeys...)
	if err != nil {
		return fmt.Errorf("catalog load: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		product, err := trade.ParseProduct(e.Value)
		if err != nil {
			return fmt.Errorf("catalog entry %s: %w", e.Key, err)
		}
		c.products[productName(e.Key)] = product
	}
	return nil
}

// Get returns the named product if it is in memory. It never touches the
// store; use Resolve when a miss should fall through.
func (c *Catalog) Get(name string) (trade.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.products[name]
	return product, ok
}

// Resolve returns the named product, reading through to the store on a miss
// and keeping the result.
func (c *Catalog) Resolve(ctx context.Context, name string) (trade.Product, error) {
	if product, ok := c.Get(name); ok {
		return product, nil
	}

	product, err := LoadProduct(ctx, c.store, name)
	if err != nil {
		return trade.Product{}, err
	}

	c.mu.Lock()
	c.products[name] = product
	c.mu.Unlock()

	return product, nil
}

// Names returns the catalog's product names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.products))
	for name := range c.products {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// productName recovers the catalog name from a product store key.
func productName(key string) string {
	return strings.TrimSuffix(path.Base(key), ".json")
}
