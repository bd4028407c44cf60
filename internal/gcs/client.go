package gcs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/ppiankov/bucketspectre/internal/objstore"
)

// BucketInfo is the part of a GCS bucket's metadata the provider uses.
type BucketInfo = gcstorage.BucketAttrs

// ObjectIterator yields object attributes until iterator.Done.
type ObjectIterator interface {
	Next() (*gcstorage.ObjectAttrs, error)
}

// GCSAPI defines the subset of the Cloud Storage API used by the provider.
type GCSAPI interface {
	ListBuckets(ctx context.Context, project, prefix string) ([]*BucketInfo, error)
	BucketAttrs(ctx context.Context, bucket string) (*BucketInfo, error)
	Objects(ctx context.Context, bucket string, query *gcstorage.Query) ObjectIterator
	Close() error
}

// Client implements GCSAPI using the real GCP SDK.
type Client struct {
	inner *gcstorage.Client
}

// NewClient creates a new Cloud Storage client. credentialsFile is optional;
// application default credentials are used when it is empty.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	c, err := gcstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Client{inner: c}, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.inner.Close()
}

// ListBuckets returns every bucket of the project whose name starts with prefix.
func (c *Client) ListBuckets(ctx context.Context, project, prefix string) ([]*BucketInfo, error) {
	it := c.inner.Buckets(ctx, project)
	it.Prefix = prefix

	var buckets []*BucketInfo
	for {
		b, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list buckets in %s: %w", project, err)
		}
		buckets = append(buckets, b)
	}

	slog.Debug("Listed GCS buckets", "project", project, "count", len(buckets))
	return buckets, nil
}

// BucketAttrs returns one bucket's metadata, or objstore.ErrBucketNotFound.
func (c *Client) BucketAttrs(ctx context.Context, bucket string) (*BucketInfo, error) {
	attrs, err := c.inner.Bucket(bucket).Attrs(ctx)
	if errors.Is(err, gcstorage.ErrBucketNotExist) {
		return nil, fmt.Errorf("%w: %s", objstore.ErrBucketNotFound, bucket)
	}
	if err != nil {
		return nil, fmt.Errorf("get attributes of %s: %w", bucket, err)
	}
	return attrs, nil
}

// Objects starts a lazy object listing.
func (c *Client) Objects(ctx context.Context, bucket string, query *gcstorage.Query) ObjectIterator {
	return c.inner.Bucket(bucket).Objects(ctx, query)
}
