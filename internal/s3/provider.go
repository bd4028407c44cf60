package s3

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/ppiankov/bucketspectre/internal/objstore"
)

// ProviderName identifies S3 in errors and reports.
const ProviderName = "s3"

// DefaultRegion is reported for buckets without a location constraint.
const DefaultRegion = "us-east-1"

// Provider implements objstore.Provider on top of the S3 API.
type Provider struct {
	client   S3API
	regional func(region string) S3API // nil sends every call through client
	regions  sync.Map                  // bucket name -> region
}

// NewProvider creates a provider. regional, when non-nil, returns a client
// for a bucket's home region and is used for object listings.
func NewProvider(client S3API, regional func(region string) S3API) *Provider {
	return &Provider{client: client, regional: regional}
}

// Name implements objstore.Provider.
func (p *Provider) Name() string { return ProviderName }

// ListBuckets returns all buckets passing the filter using pagination.
func (p *Provider) ListBuckets(ctx context.Context, filter objstore.BucketFilter) ([]objstore.Bucket, error) {
	var buckets []objstore.Bucket
	input := &awss3.ListBucketsInput{}
	if filter.Prefix != "" {
		input.Prefix = aws.String(filter.Prefix)
	}

	for {
		out, err := p.client.ListBuckets(ctx, input)
		if err != nil {
			return nil, wrapError("list buckets", "", err)
		}
		for _, b := range out.Buckets {
			name := aws.ToString(b.Name)
			if !filter.Match(name) {
				continue
			}
			buckets = append(buckets, objstore.Bucket{
				Name:         name,
				CreationDate: b.CreationDate,
			})
			if region := aws.ToString(b.BucketRegion); region != "" {
				p.regions.Store(name, region)
			}
		}
		if aws.ToString(out.ContinuationToken) == "" {
			break
		}
		input.ContinuationToken = out.ContinuationToken
	}

	logMissing(filter.Names, buckets)
	slog.Debug("Listed S3 buckets", "count", len(buckets))
	return buckets, nil
}

// ResolveRegion returns the bucket's region, asking S3 once per bucket.
func (p *Provider) ResolveRegion(ctx context.Context, bucket string) (string, error) {
	if region, ok := p.regions.Load(bucket); ok {
		return region.(string), nil
	}
	out, err := p.client.GetBucketLocation(ctx, &awss3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", wrapError("get bucket location", bucket, err)
	}
	region := NormalizeRegion(out.LocationConstraint)
	p.regions.Store(bucket, region)
	return region, nil
}

// NormalizeRegion maps a location constraint to a region code. An empty
// constraint means us-east-1 and the legacy EU constraint means eu-west-1.
func NormalizeRegion(c s3types.BucketLocationConstraint) string {
	switch c {
	case "":
		return DefaultRegion
	case s3types.BucketLocationConstraintEu:
		return "eu-west-1"
	default:
		return string(c)
	}
}

// ListObjects yields the live objects of a bucket page by page.
func (p *Provider) ListObjects(ctx context.Context, bucket objstore.Bucket, prefix string) iter.Seq2[objstore.ObjectRecord, error] {
	return func(yield func(objstore.ObjectRecord, error) bool) {
		api, err := p.objectClient(ctx, bucket.Name)
		if err != nil {
			yield(objstore.ObjectRecord{}, err)
			return
		}
		input := &awss3.ListObjectsV2Input{Bucket: aws.String(bucket.Name)}
		if prefix != "" {
			input.Prefix = aws.String(prefix)
		}

		pages := 0
		for {
			out, err := api.ListObjectsV2(ctx, input)
			if err != nil {
				yield(objstore.ObjectRecord{}, wrapError("list objects", bucket.Name, err))
				return
			}
			pages++
			for _, o := range out.Contents {
				rec := objstore.ObjectRecord{
					Key:          aws.ToString(o.Key),
					Size:         aws.ToInt64(o.Size),
					Tier:         normalizeTier(string(o.StorageClass)),
					LastModified: aws.ToTime(o.LastModified),
				}
				if !yield(rec, nil) {
					return
				}
			}
			if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
				break
			}
			input.ContinuationToken = out.NextContinuationToken
		}
		slog.Debug("Listed S3 objects", "bucket", bucket.Name, "pages", pages)
	}
}

// ListObjectVersions yields every version of every object, delete markers
// included as zero-byte records.
func (p *Provider) ListObjectVersions(ctx context.Context, bucket objstore.Bucket, prefix string) iter.Seq2[objstore.ObjectRecord, error] {
	return func(yield func(objstore.ObjectRecord, error) bool) {
		api, err := p.objectClient(ctx, bucket.Name)
		if err != nil {
			yield(objstore.ObjectRecord{}, err)
			return
		}
		input := &awss3.ListObjectVersionsInput{Bucket: aws.String(bucket.Name)}
		if prefix != "" {
			input.Prefix = aws.String(prefix)
		}

		for {
			out, err := api.ListObjectVersions(ctx, input)
			if err != nil {
				yield(objstore.ObjectRecord{}, wrapError("list object versions", bucket.Name, err))
				return
			}
			for _, v := range out.Versions {
				rec := objstore.ObjectRecord{
					Key:          aws.ToString(v.Key),
					Size:         aws.ToInt64(v.Size),
					Tier:         normalizeTier(string(v.StorageClass)),
					LastModified: aws.ToTime(v.LastModified),
					VersionID:    aws.ToString(v.VersionId),
				}
				if !yield(rec, nil) {
					return
				}
			}
			for _, m := range out.DeleteMarkers {
				rec := objstore.ObjectRecord{
					Key:          aws.ToString(m.Key),
					Tier:         objstore.TierStandard,
					LastModified: aws.ToTime(m.LastModified),
					VersionID:    aws.ToString(m.VersionId),
					DeleteMarker: true,
				}
				if !yield(rec, nil) {
					return
				}
			}
			if !aws.ToBool(out.IsTruncated) || (out.NextKeyMarker == nil && out.NextVersionIdMarker == nil) {
				break
			}
			input.KeyMarker = out.NextKeyMarker
			input.VersionIdMarker = out.NextVersionIdMarker
		}
	}
}

func (p *Provider) objectClient(ctx context.Context, bucket string) (S3API, error) {
	if p.regional == nil {
		return p.client, nil
	}
	region, err := p.ResolveRegion(ctx, bucket)
	if err != nil {
		return nil, err
	}
	return p.regional(region), nil
}

// normalizeTier maps an empty storage class, which S3 omits for STANDARD
// objects in some responses, to STANDARD.
func normalizeTier(class string) objstore.Tier {
	if class == "" {
		return objstore.TierStandard
	}
	return objstore.Tier(class)
}

func wrapError(op, bucket string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket" {
		err = fmt.Errorf("%w: %w", objstore.ErrBucketNotFound, err)
	}
	return objstore.WrapError(ProviderName, op, bucket, err)
}

func logMissing(names []string, found []objstore.Bucket) {
	if len(names) == 0 {
		return
	}
	seen := make(map[string]bool, len(found))
	for _, b := range found {
		seen[b.Name] = true
	}
	for _, n := range names {
		if !seen[n] {
			slog.Debug("Requested bucket not found", "bucket", n)
		}
	}
}
