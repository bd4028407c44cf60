package s3

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// mockS3Client implements S3API for testing. Listings are served in pages
// of pageSize entries.
type mockS3Client struct {
	buckets     []s3types.Bucket
	locations   map[string]s3types.BucketLocationConstraint
	objects     map[string][]s3types.Object
	versions    map[string][]s3types.ObjectVersion
	markers     map[string][]s3types.DeleteMarkerEntry
	listErr     error
	locationErr map[string]error
	objectsErr  map[string]error
	pageSize    int

	mu            sync.Mutex
	locationCalls int
	prefixes      []string
}

func newMockClient() *mockS3Client {
	return &mockS3Client{
		locations:   make(map[string]s3types.BucketLocationConstraint),
		objects:     make(map[string][]s3types.Object),
		versions:    make(map[string][]s3types.ObjectVersion),
		markers:     make(map[string][]s3types.DeleteMarkerEntry),
		locationErr: make(map[string]error),
		objectsErr:  make(map[string]error),
		pageSize:    2,
	}
}

func (m *mockS3Client) page(token *string, total int) (start, end int, next *string) {
	if token != nil {
		start, _ = strconv.Atoi(*token)
	}
	end = min(start+m.pageSize, total)
	if end < total {
		next = aws.String(strconv.Itoa(end))
	}
	return start, end, next
}

func (m *mockS3Client) ListBuckets(_ context.Context, input *awss3.ListBucketsInput, _ ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	start, end, next := m.page(input.ContinuationToken, len(m.buckets))
	return &awss3.ListBucketsOutput{
		Buckets:           m.buckets[start:end],
		ContinuationToken: next,
	}, nil
}

func (m *mockS3Client) GetBucketLocation(_ context.Context, input *awss3.GetBucketLocationInput, _ ...func(*awss3.Options)) (*awss3.GetBucketLocationOutput, error) {
	m.mu.Lock()
	m.locationCalls++
	m.mu.Unlock()
	name := aws.ToString(input.Bucket)
	if err, ok := m.locationErr[name]; ok {
		return nil, err
	}
	return &awss3.GetBucketLocationOutput{LocationConstraint: m.locations[name]}, nil
}

func (m *mockS3Client) ListObjectsV2(_ context.Context, input *awss3.ListObjectsV2Input, _ ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	name := aws.ToString(input.Bucket)
	m.mu.Lock()
	m.prefixes = append(m.prefixes, aws.ToString(input.Prefix))
	m.mu.Unlock()
	if err, ok := m.objectsErr[name]; ok {
		return nil, err
	}
	objs := m.objects[name]
	start, end, next := m.page(input.ContinuationToken, len(objs))
	return &awss3.ListObjectsV2Output{
		Contents:              objs[start:end],
		IsTruncated:           aws.Bool(next != nil),
		NextContinuationToken: next,
	}, nil
}

func (m *mockS3Client) ListObjectVersions(_ context.Context, input *awss3.ListObjectVersionsInput, _ ...func(*awss3.Options)) (*awss3.ListObjectVersionsOutput, error) {
	name := aws.ToString(input.Bucket)
	if err, ok := m.objectsErr[name]; ok {
		return nil, err
	}
	versions := m.versions[name]
	start, end, next := m.page(input.KeyMarker, len(versions))
	out := &awss3.ListObjectVersionsOutput{
		Versions:    versions[start:end],
		IsTruncated: aws.Bool(next != nil),
	}
	if next != nil {
		out.NextKeyMarker = next
		out.NextVersionIdMarker = aws.String("v" + *next)
	} else {
		out.DeleteMarkers = m.markers[name]
	}
	return out, nil
}

// mockAPIError implements smithy.APIError.
type mockAPIError struct {
	code string
}

func (e *mockAPIError) Error() string                 { return e.code }
func (e *mockAPIError) ErrorCode() string             { return e.code }
func (e *mockAPIError) ErrorMessage() string          { return e.code }
func (e *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func makeBucket(name string, created time.Time) s3types.Bucket {
	return s3types.Bucket{Name: aws.String(name), CreationDate: aws.Time(created)}
}

func makeObject(key string, size int64, class s3types.ObjectStorageClass, modified time.Time) s3types.Object {
	return s3types.Object{
		Key:          aws.String(key),
		Size:         aws.Int64(size),
		StorageClass: class,
		LastModified: aws.Time(modified),
	}
}
