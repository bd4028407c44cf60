package analyzer

import (
	"iter"

	"github.com/ppiankov/bucketspectre/internal/objstore"
	"github.com/ppiankov/bucketspectre/internal/pricing"
)

// Fold consumes the object sequence of one bucket and returns its summary.
// The first error yielded by the sequence abandons the bucket.
func Fold(bucket objstore.Bucket, objects iter.Seq2[objstore.ObjectRecord, error], table *pricing.Table) (BucketSummary, error) {
	s := NewSummary(bucket.Name, bucket.CreationDate, table)
	for rec, err := range objects {
		if err != nil {
			return BucketSummary{}, err
		}
		s.add(rec, table)
	}
	return s, nil
}

func (s *BucketSummary) add(rec objstore.ObjectRecord, table *pricing.Table) {
	s.ObjectCount++
	s.TotalSize += rec.Size
	s.TotalCost += table.ObjectCost(rec.Size, rec.Tier)
	if table.Tracks(rec.Tier) {
		s.Tiers[rec.Tier.Canonical()]++
	}
	if !rec.LastModified.IsZero() {
		s.LastModified = latest(s.LastModified, &rec.LastModified)
	}
}
