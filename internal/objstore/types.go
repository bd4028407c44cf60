package objstore

import (
	"fmt"
	"strings"
	"time"
)

// Tier is a provider storage class identifier such as STANDARD or GLACIER.
type Tier string

// Common tier identifiers.
const (
	TierStandard          Tier = "STANDARD"
	TierStandardIA        Tier = "STANDARD_IA"
	TierOneZoneIA         Tier = "ONEZONE_IA"
	TierGlacier           Tier = "GLACIER"
	TierDeepArchive       Tier = "DEEP_ARCHIVE"
	TierReducedRedundancy Tier = "REDUCED_REDUNDANCY"
	TierNearline          Tier = "NEARLINE"
	TierColdline          Tier = "COLDLINE"
	TierArchive           Tier = "ARCHIVE"
)

// Canonical returns the upper-cased tier used for table lookups.
func (t Tier) Canonical() Tier {
	return Tier(strings.ToUpper(strings.TrimSpace(string(t))))
}

// Mode selects which population of a bucket is listed.
type Mode string

const (
	// ModeCurrent lists live objects only.
	ModeCurrent Mode = "current"
	// ModeVersions lists every object version, delete markers included.
	ModeVersions Mode = "versions"
)

// ParseMode maps a user-supplied string to a Mode. Empty means ModeCurrent.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeCurrent:
		return ModeCurrent, nil
	case ModeVersions:
		return ModeVersions, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s (use current or versions)", s)
	}
}

// Bucket is a bucket handle returned by a provider listing.
type Bucket struct {
	Name         string     `json:"name"`
	CreationDate *time.Time `json:"creation_date,omitempty"`
}

// ObjectRecord is one object, or one object version, inside a bucket.
type ObjectRecord struct {
	Key          string
	Size         int64
	Tier         Tier
	LastModified time.Time
	VersionID    string
	DeleteMarker bool
}

// BucketFilter narrows a bucket listing.
type BucketFilter struct {
	// Names restricts the listing to these buckets. Unknown names are dropped.
	Names []string
	// Prefix keeps only buckets whose name starts with it.
	Prefix string
}

// Match reports whether a bucket name passes the filter.
func (f BucketFilter) Match(name string) bool {
	if f.Prefix != "" && !strings.HasPrefix(name, f.Prefix) {
		return false
	}
	if len(f.Names) == 0 {
		return true
	}
	for _, n := range f.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Progress reports scanning progress to callers.
type Progress struct {
	Bucket    string
	Message   string
	Timestamp time.Time
}
