package pricing

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ppiankov/bucketspectre/internal/objstore"
)

// Scale is the fixed-point denominator of every price and cost (1/100,000 USD).
const Scale = 100_000

// GiB is the billing unit for storage.
const GiB int64 = 1 << 30

// Table maps storage tiers to a monthly per-GB price. Tables are read-only
// after initialisation and safe for concurrent use.
type Table struct {
	Provider string
	Default  objstore.Tier
	Prices   map[objstore.Tier]int64
	// Tracked lists the tiers counted per object in summaries, in display order.
	Tracked []objstore.Tier
	Labels  map[objstore.Tier]string

	warned sync.Map
}

// ForProvider returns the table registered for a provider name.
func ForProvider(provider string) (*Table, error) {
	t, ok := tables[provider]
	if !ok {
		return nil, fmt.Errorf("no pricing table for provider %q", provider)
	}
	return t, nil
}

// PricePerGB returns the monthly price of one GB in the given tier. Tiers
// missing from the table fall back to the default tier.
func (t *Table) PricePerGB(tier objstore.Tier) int64 {
	if price, ok := t.Prices[tier.Canonical()]; ok {
		return price
	}
	if _, seen := t.warned.LoadOrStore(tier, struct{}{}); !seen {
		slog.Warn("Unknown storage class, using default price",
			"provider", t.Provider, "class", string(tier), "default", string(t.Default))
	}
	return t.Prices[t.Default]
}

// ObjectCost returns the monthly cost of an object. Sizes are rounded up to
// whole gigabytes, so any non-empty object costs at least one GB-month.
func (t *Table) ObjectCost(sizeBytes int64, tier objstore.Tier) int64 {
	if sizeBytes <= 0 {
		return 0
	}
	gb := sizeBytes / GiB
	if sizeBytes%GiB != 0 {
		gb++
	}
	return gb * t.PricePerGB(tier)
}

// Tracks reports whether a tier has its own histogram entry.
func (t *Table) Tracks(tier objstore.Tier) bool {
	_, ok := t.Labels[tier.Canonical()]
	return ok
}

// Label returns the short display label of a tracked tier.
func (t *Table) Label(tier objstore.Tier) string {
	if l, ok := t.Labels[tier.Canonical()]; ok {
		return l
	}
	return string(tier)
}
