package objstore

import (
	"context"
	"iter"
)

// Provider is the read-only surface of an object storage account.
type Provider interface {
	// Name identifies the provider, e.g. "s3" or "gcs".
	Name() string
	// ListBuckets returns the buckets that pass the filter. A requested name
	// that does not exist is omitted rather than reported as an error.
	ListBuckets(ctx context.Context, filter BucketFilter) ([]Bucket, error)
	// ResolveRegion returns the region code a bucket lives in.
	ResolveRegion(ctx context.Context, bucket string) (string, error)
	ObjectLister
}

// ObjectLister yields the contents of a bucket page by page.
type ObjectLister interface {
	ListObjects(ctx context.Context, bucket Bucket, prefix string) iter.Seq2[ObjectRecord, error]
	ListObjectVersions(ctx context.Context, bucket Bucket, prefix string) iter.Seq2[ObjectRecord, error]
}

// Source produces the object sequence of one bucket.
type Source func(ctx context.Context, bucket Bucket, prefix string) iter.Seq2[ObjectRecord, error]

// Objects selects the listing used for a whole run.
func Objects(l ObjectLister, mode Mode) Source {
	if mode == ModeVersions {
		return l.ListObjectVersions
	}
	return l.ListObjects
}
