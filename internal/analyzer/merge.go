package analyzer

import (
	"sort"
	"time"

	"github.com/ppiankov/bucketspectre/internal/objstore"
	"github.com/ppiankov/bucketspectre/internal/pricing"
)

// Merge combines two summaries. Counters and the tier histogram are summed,
// LastModified takes the later date and CreationDate the earlier one; a
// missing date never wins over a present one. The result keeps acc's name
// and shares no state with either argument.
func Merge(acc, addend BucketSummary) BucketSummary {
	out := BucketSummary{
		Name:         acc.Name,
		ObjectCount:  acc.ObjectCount + addend.ObjectCount,
		TotalSize:    acc.TotalSize + addend.TotalSize,
		TotalCost:    acc.TotalCost + addend.TotalCost,
		CreationDate: earliest(acc.CreationDate, addend.CreationDate),
		LastModified: latest(acc.LastModified, addend.LastModified),
		Tiers:        make(map[objstore.Tier]int64, len(acc.Tiers)),
	}
	for tier, n := range acc.Tiers {
		out.Tiers[tier] += n
	}
	for tier, n := range addend.Tiers {
		out.Tiers[tier] += n
	}
	return out
}

// Group merges every summary into the accumulator of its key and returns one
// summary per key, named after the key and sorted by it.
func Group(summaries []BucketSummary, key func(BucketSummary) string, table *pricing.Table) []BucketSummary {
	groups := make(map[string]BucketSummary)
	for _, s := range summaries {
		k := key(s)
		acc, ok := groups[k]
		if !ok {
			acc = NewSummary(k, nil, table)
		}
		groups[k] = Merge(acc, s)
	}

	out := make([]BucketSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Total merges all summaries into one named name.
func Total(name string, summaries []BucketSummary, table *pricing.Table) BucketSummary {
	total := NewSummary(name, nil, table)
	for _, s := range summaries {
		total = Merge(total, s)
	}
	return total
}

func latest(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return copyTime(b)
	case b == nil:
		return copyTime(a)
	case b.After(*a):
		return copyTime(b)
	default:
		return copyTime(a)
	}
}

func earliest(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return copyTime(b)
	case b == nil:
		return copyTime(a)
	case b.Before(*a):
		return copyTime(b)
	default:
		return copyTime(a)
	}
}
