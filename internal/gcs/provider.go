package gcs

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/ppiankov/bucketspectre/internal/objstore"
)

// ProviderName identifies GCS in errors and reports.
const ProviderName = "gcs"

// DefaultLocation is reported for buckets without a location.
const DefaultLocation = "us"

// Provider implements objstore.Provider for one GCP project.
type Provider struct {
	client  GCSAPI
	project string
}

// NewProvider creates a provider for the given project.
func NewProvider(client GCSAPI, project string) *Provider {
	return &Provider{client: client, project: project}
}

// Name implements objstore.Provider.
func (p *Provider) Name() string { return ProviderName }

// ListBuckets returns the project's buckets that pass the filter. Named
// buckets are looked up directly; names that do not exist are skipped.
func (p *Provider) ListBuckets(ctx context.Context, filter objstore.BucketFilter) ([]objstore.Bucket, error) {
	if len(filter.Names) > 0 {
		return p.namedBuckets(ctx, filter)
	}

	infos, err := p.client.ListBuckets(ctx, p.project, filter.Prefix)
	if err != nil {
		return nil, objstore.WrapError(ProviderName, "list buckets", "", err)
	}
	buckets := make([]objstore.Bucket, 0, len(infos))
	for _, info := range infos {
		if filter.Match(info.Name) {
			buckets = append(buckets, toBucket(info))
		}
	}
	return buckets, nil
}

func (p *Provider) namedBuckets(ctx context.Context, filter objstore.BucketFilter) ([]objstore.Bucket, error) {
	var buckets []objstore.Bucket
	seen := make(map[string]bool, len(filter.Names))
	for _, name := range filter.Names {
		if seen[name] || !filter.Match(name) {
			continue
		}
		seen[name] = true
		info, err := p.client.BucketAttrs(ctx, name)
		if errors.Is(err, objstore.ErrBucketNotFound) {
			slog.Debug("Requested bucket not found", "bucket", name)
			continue
		}
		if err != nil {
			return nil, objstore.WrapError(ProviderName, "get bucket", name, err)
		}
		buckets = append(buckets, toBucket(info))
	}
	return buckets, nil
}

// ResolveRegion returns the bucket's location, lowercased.
func (p *Provider) ResolveRegion(ctx context.Context, bucket string) (string, error) {
	info, err := p.client.BucketAttrs(ctx, bucket)
	if err != nil {
		return "", objstore.WrapError(ProviderName, "get bucket location", bucket, err)
	}
	return NormalizeLocation(info.Location), nil
}

// NormalizeLocation lowercases a GCS location; empty maps to DefaultLocation.
func NormalizeLocation(loc string) string {
	loc = strings.ToLower(strings.TrimSpace(loc))
	if loc == "" {
		return DefaultLocation
	}
	return loc
}

// ListObjects yields the live objects of a bucket.
func (p *Provider) ListObjects(ctx context.Context, bucket objstore.Bucket, prefix string) iter.Seq2[objstore.ObjectRecord, error] {
	return p.objects(ctx, bucket.Name, &gcstorage.Query{Prefix: prefix}, "list objects")
}

// ListObjectVersions yields every generation of every object, noncurrent
// generations included.
func (p *Provider) ListObjectVersions(ctx context.Context, bucket objstore.Bucket, prefix string) iter.Seq2[objstore.ObjectRecord, error] {
	return p.objects(ctx, bucket.Name, &gcstorage.Query{Prefix: prefix, Versions: true}, "list object versions")
}

func (p *Provider) objects(ctx context.Context, bucket string, query *gcstorage.Query, op string) iter.Seq2[objstore.ObjectRecord, error] {
	return func(yield func(objstore.ObjectRecord, error) bool) {
		it := p.client.Objects(ctx, bucket, query)
		for {
			attrs, err := it.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				if errors.Is(err, gcstorage.ErrBucketNotExist) {
					err = fmt.Errorf("%w: %w", objstore.ErrBucketNotFound, err)
				}
				yield(objstore.ObjectRecord{}, objstore.WrapError(ProviderName, op, bucket, err))
				return
			}
			if !yield(toRecord(attrs, query.Versions), nil) {
				return
			}
		}
	}
}

func toBucket(info *BucketInfo) objstore.Bucket {
	b := objstore.Bucket{Name: info.Name}
	if !info.Created.IsZero() {
		created := info.Created
		b.CreationDate = &created
	}
	return b
}

func toRecord(attrs *gcstorage.ObjectAttrs, versions bool) objstore.ObjectRecord {
	rec := objstore.ObjectRecord{
		Key:          attrs.Name,
		Size:         attrs.Size,
		Tier:         objstore.Tier(attrs.StorageClass),
		LastModified: attrs.Updated,
	}
	if rec.Tier == "" {
		rec.Tier = objstore.TierStandard
	}
	if versions {
		rec.VersionID = strconv.FormatInt(attrs.Generation, 10)
	}
	return rec
}
