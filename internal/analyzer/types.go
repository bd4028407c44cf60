package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/bucketspectre/internal/objstore"
	"github.com/ppiankov/bucketspectre/internal/pricing"
)

// BucketSummary aggregates the objects of one bucket, or of a group of buckets.
// TotalCost is in 1/100,000 USD. A nil date means no value.
type BucketSummary struct {
	Name         string                  `json:"name"`
	ObjectCount  int64                   `json:"object_count"`
	TotalSize    int64                   `json:"total_size_bytes"`
	TotalCost    int64                   `json:"total_cost"`
	CreationDate *time.Time              `json:"creation_date,omitempty"`
	LastModified *time.Time              `json:"last_modified,omitempty"`
	Tiers        map[objstore.Tier]int64 `json:"tiers"`
}

// NewSummary returns an empty summary with a fresh histogram holding every
// tracked tier of the table at zero.
func NewSummary(name string, created *time.Time, table *pricing.Table) BucketSummary {
	tiers := make(map[objstore.Tier]int64, len(table.Tracked))
	for _, tier := range table.Tracked {
		tiers[tier] = 0
	}
	return BucketSummary{
		Name:         name,
		CreationDate: copyTime(created),
		Tiers:        tiers,
	}
}

// GroupBy selects how bucket summaries are combined before reporting.
type GroupBy string

const (
	GroupNone   GroupBy = "none"
	GroupRegion GroupBy = "region"
)

// ParseGroupBy maps a user-supplied string to a GroupBy. Empty means GroupNone.
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(strings.ToLower(s)) {
	case "", GroupNone:
		return GroupNone, nil
	case GroupRegion:
		return GroupRegion, nil
	default:
		return "", fmt.Errorf("unsupported grouping: %s (use none or region)", s)
	}
}

// Config controls an analysis run.
type Config struct {
	Mode    objstore.Mode
	Prefix  string
	Workers int
	GroupBy GroupBy
}

// Result holds the summaries of one run.
type Result struct {
	Summaries      []BucketSummary `json:"summaries"`
	Totals         BucketSummary   `json:"totals"`
	BucketsScanned int             `json:"buckets_scanned"`
	Errors         []string        `json:"errors,omitempty"`
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
