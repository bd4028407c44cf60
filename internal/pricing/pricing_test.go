package pricing

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/ppiankov/bucketspectre/internal/objstore"
)

func TestPricePerGBKnownTiers(t *testing.T) {
	for _, table := range []*Table{S3, GCS} {
		for tier, want := range table.Prices {
			if got := table.PricePerGB(tier); got != want {
				t.Errorf("%s PricePerGB(%q) = %d, want %d", table.Provider, tier, got, want)
			}
		}
	}
}

func TestPricePerGBCaseInsensitive(t *testing.T) {
	tests := []struct {
		tier objstore.Tier
		want int64
	}{
		{"standard", 2300},
		{"Standard_IA", 1250},
		{"onezone_ia", 1000},
		{"glacier", 400},
		{"deep_archive", 99},
		{"reduced_redundancy", 2400},
	}
	for _, tt := range tests {
		if got := S3.PricePerGB(tt.tier); got != tt.want {
			t.Errorf("PricePerGB(%q) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestPricePerGBUnknownFallsBackToDefault(t *testing.T) {
	want := S3.PricePerGB(S3.Default)
	for _, tier := range []objstore.Tier{"OUTPOSTS", "", "standard-ia", "one zone-ia"} {
		if got := S3.PricePerGB(tier); got != want {
			t.Errorf("PricePerGB(%q) = %d, want default %d", tier, got, want)
		}
	}
	// Second lookup of the same unknown tier takes the already-warned path.
	if got := S3.PricePerGB("OUTPOSTS"); got != want {
		t.Errorf("PricePerGB(OUTPOSTS) second call = %d, want %d", got, want)
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestPricePerGBUnknownWarnsOnce(t *testing.T) {
	buf := captureLogs(t)
	table := &Table{
		Provider: "test",
		Default:  objstore.TierStandard,
		Prices:   map[objstore.Tier]int64{objstore.TierStandard: 2300},
	}

	table.PricePerGB("OUTPOSTS")
	table.PricePerGB("OUTPOSTS")
	if got := strings.Count(buf.String(), "Unknown storage class"); got != 1 {
		t.Errorf("warnings after two lookups = %d, want 1:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "class=OUTPOSTS") {
		t.Errorf("warning missing class attribute:\n%s", buf.String())
	}

	table.PricePerGB("EXPRESS_ONEZONE")
	if got := strings.Count(buf.String(), "Unknown storage class"); got != 2 {
		t.Errorf("warnings after a second unknown tier = %d, want 2", got)
	}

	table.PricePerGB("standard")
	if got := strings.Count(buf.String(), "Unknown storage class"); got != 2 {
		t.Errorf("known tier should not warn, warnings = %d", got)
	}
}

func TestDefaultTierPresent(t *testing.T) {
	for _, table := range []*Table{S3, GCS} {
		if _, ok := table.Prices[table.Default]; !ok {
			t.Errorf("%s table has no entry for default tier %q", table.Provider, table.Default)
		}
	}
}

func TestObjectCost(t *testing.T) {
	price := S3.PricePerGB(objstore.TierStandard)
	tests := []struct {
		name string
		size int64
		want int64
	}{
		{"zero bytes", 0, 0},
		{"one byte rounds up", 1, price},
		{"exactly one GiB", GiB, price},
		{"one byte over", GiB + 1, 2 * price},
		{"500 MB", 500_000_000, price},
		{"ten GiB", 10 * GiB, 10 * price},
	}
	for _, tt := range tests {
		if got := S3.ObjectCost(tt.size, objstore.TierStandard); got != tt.want {
			t.Errorf("%s: ObjectCost(%d) = %d, want %d", tt.name, tt.size, got, tt.want)
		}
	}
}

func TestObjectCostZeroForEveryTier(t *testing.T) {
	for tier := range GCS.Prices {
		if got := GCS.ObjectCost(0, tier); got != 0 {
			t.Errorf("ObjectCost(0, %q) = %d, want 0", tier, got)
		}
	}
}

func TestObjectCostUnknownTier(t *testing.T) {
	if got, want := S3.ObjectCost(1, "MYSTERY"), S3.PricePerGB(S3.Default); got != want {
		t.Errorf("ObjectCost(1, MYSTERY) = %d, want %d", got, want)
	}
}

func TestForProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     *Table
		wantErr  bool
	}{
		{"s3", S3, false},
		{"gcs", GCS, false},
		{"azure", nil, true},
	}
	for _, tt := range tests {
		got, err := ForProvider(tt.provider)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForProvider(%q) should error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForProvider(%q) error: %v", tt.provider, err)
		}
		if got != tt.want {
			t.Errorf("ForProvider(%q) returned wrong table", tt.provider)
		}
	}
}

func TestTracksAndLabel(t *testing.T) {
	tests := []struct {
		tier   objstore.Tier
		tracks bool
		label  string
	}{
		{"STANDARD", true, "S"},
		{"standard_ia", true, "IA"},
		{"REDUCED_REDUNDANCY", true, "RR"},
		{"GLACIER", false, "GLACIER"},
	}
	for _, tt := range tests {
		if got := S3.Tracks(tt.tier); got != tt.tracks {
			t.Errorf("Tracks(%q) = %v, want %v", tt.tier, got, tt.tracks)
		}
		if got := S3.Label(tt.tier); got != tt.label {
			t.Errorf("Label(%q) = %q, want %q", tt.tier, got, tt.label)
		}
	}
}
