package s3

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API defines the subset of the S3 API used by the provider.
type S3API interface {
	ListBuckets(ctx context.Context, input *awss3.ListBucketsInput, opts ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error)
	GetBucketLocation(ctx context.Context, input *awss3.GetBucketLocationInput, opts ...func(*awss3.Options)) (*awss3.GetBucketLocationOutput, error)
	ListObjectsV2(ctx context.Context, input *awss3.ListObjectsV2Input, opts ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
	ListObjectVersions(ctx context.Context, input *awss3.ListObjectVersionsInput, opts ...func(*awss3.Options)) (*awss3.ListObjectVersionsOutput, error)
}

// Client wraps the AWS SDK configuration for creating S3 service clients.
type Client struct {
	cfg aws.Config

	mu       sync.Mutex
	regional map[string]S3API
}

// NewClient creates a new AWS client using the specified profile and region.
func NewClient(ctx context.Context, profile, region string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error

	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	return &Client{cfg: cfg, regional: make(map[string]S3API)}, nil
}

// NewS3Client creates an S3 service client in the configured region.
func (c *Client) NewS3Client() S3API {
	return awss3.NewFromConfig(c.cfg)
}

// ForRegion returns an S3 client pinned to region, reusing clients
// already created for it. Object listings must be sent to the bucket's
// home region.
func (c *Client) ForRegion(region string) S3API {
	c.mu.Lock()
	defer c.mu.Unlock()
	if api, ok := c.regional[region]; ok {
		return api
	}
	api := awss3.NewFromConfig(c.cfg, func(o *awss3.Options) {
		o.Region = region
	})
	c.regional[region] = api
	return api
}

// Region returns the configured region.
func (c *Client) Region() string {
	return c.cfg.Region
}
