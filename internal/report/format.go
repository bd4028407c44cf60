package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/bucketspectre/internal/analyzer"
	"github.com/ppiankov/bucketspectre/internal/objstore"
	"github.com/ppiankov/bucketspectre/internal/pricing"
)

// SizeUnit is a display unit for byte counts, in powers of 1024.
type SizeUnit string

const (
	UnitB  SizeUnit = "B"
	UnitKB SizeUnit = "KB"
	UnitMB SizeUnit = "MB"
	UnitGB SizeUnit = "GB"
	UnitTB SizeUnit = "TB"
)

var unitBytes = map[SizeUnit]int64{
	UnitB:  1,
	UnitKB: 1 << 10,
	UnitMB: 1 << 20,
	UnitGB: 1 << 30,
	UnitTB: 1 << 40,
}

// ParseSizeUnit maps a user-supplied unit name, case-insensitively.
func ParseSizeUnit(s string) (SizeUnit, error) {
	u := SizeUnit(strings.ToUpper(strings.TrimSpace(s)))
	if u == "" {
		return DefaultSizeUnit, nil
	}
	if _, ok := unitBytes[u]; !ok {
		return "", fmt.Errorf("unsupported size unit: %s (use B, KB, MB, GB or TB)", s)
	}
	return u, nil
}

// Display defaults.
const (
	DefaultSizeUnit   = UnitKB
	DefaultDateFormat = "2006-01-02T15:04"
	DefaultNameWidth  = 40
	DatePlaceholder   = "-"
)

// FormatOptions controls how summaries are rendered.
type FormatOptions struct {
	Unit       SizeUnit
	DateFormat string
	NameWidth  int // 0 disables truncation
	Table      *pricing.Table
}

// DefaultFormatOptions returns the options used when nothing is configured.
func DefaultFormatOptions(table *pricing.Table) FormatOptions {
	return FormatOptions{
		Unit:       DefaultSizeUnit,
		DateFormat: DefaultDateFormat,
		NameWidth:  DefaultNameWidth,
		Table:      table,
	}
}

// Fields renders a summary as name, count, size, cost, created, last
// modified and tiers display strings.
func Fields(s analyzer.BucketSummary, opts FormatOptions) []string {
	return []string{
		truncate(s.Name, opts.NameWidth),
		strconv.FormatInt(s.ObjectCount, 10),
		FormatSize(s.TotalSize, opts.Unit),
		FormatCost(s.TotalCost),
		FormatDate(s.CreationDate, opts.DateFormat),
		FormatDate(s.LastModified, opts.DateFormat),
		FormatTiers(s.Tiers, opts.Table),
	}
}

// FormatSize converts bytes to unit, rounded to two decimals.
func FormatSize(bytes int64, unit SizeUnit) string {
	div, ok := unitBytes[unit]
	if !ok {
		div = unitBytes[DefaultSizeUnit]
	}
	return decimal.NewFromInt(bytes).Div(decimal.NewFromInt(div)).StringFixed(2)
}

// FormatCost converts a fixed-point cost to dollars, rounded to two decimals.
func FormatCost(cost int64) string {
	return costDecimal(cost).StringFixed(2)
}

func costDecimal(cost int64) decimal.Decimal {
	return decimal.New(cost, 0).Div(decimal.NewFromInt(pricing.Scale))
}

// FormatDate formats t with layout, or returns DatePlaceholder when t is nil.
func FormatDate(t *time.Time, layout string) string {
	if t == nil {
		return DatePlaceholder
	}
	if layout == "" {
		layout = DefaultDateFormat
	}
	return t.Format(layout)
}

// FormatTiers renders the tracked tiers of table in order, e.g. "S:3 IA:1 RR:0".
func FormatTiers(tiers map[objstore.Tier]int64, table *pricing.Table) string {
	if table == nil {
		return ""
	}
	parts := make([]string, 0, len(table.Tracked))
	for _, tier := range table.Tracked {
		parts = append(parts, fmt.Sprintf("%s:%d", table.Label(tier), tiers[tier]))
	}
	return strings.Join(parts, " ")
}

func truncate(name string, width int) string {
	const ellipsis = "..."
	runes := []rune(name)
	if width <= 0 || len(runes) <= width {
		return name
	}
	if width <= len(ellipsis) {
		return string(runes[:width])
	}
	return string(runes[:width-len(ellipsis)]) + ellipsis
}
