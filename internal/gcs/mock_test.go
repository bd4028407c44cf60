package gcs

import (
	"context"
	"time"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/ppiankov/bucketspectre/internal/objstore"
)

// mockGCSClient implements GCSAPI for testing.
type mockGCSClient struct {
	buckets    []*BucketInfo
	objects    map[string][]*gcstorage.ObjectAttrs
	listErr    error
	objectsErr map[string]error
	queries    []gcstorage.Query
	closed     bool
}

func newMockClient() *mockGCSClient {
	return &mockGCSClient{
		objects:    make(map[string][]*gcstorage.ObjectAttrs),
		objectsErr: make(map[string]error),
	}
}

func (m *mockGCSClient) ListBuckets(_ context.Context, _, _ string) ([]*BucketInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.buckets, nil
}

func (m *mockGCSClient) BucketAttrs(_ context.Context, bucket string) (*BucketInfo, error) {
	for _, b := range m.buckets {
		if b.Name == bucket {
			return b, nil
		}
	}
	return nil, objstore.ErrBucketNotFound
}

func (m *mockGCSClient) Objects(_ context.Context, bucket string, query *gcstorage.Query) ObjectIterator {
	m.queries = append(m.queries, *query)
	objs := m.objects[bucket]
	if !query.Versions {
		var live []*gcstorage.ObjectAttrs
		for _, o := range objs {
			if o.Deleted.IsZero() {
				live = append(live, o)
			}
		}
		objs = live
	}
	return &sliceIterator{objects: objs, err: m.objectsErr[bucket]}
}

func (m *mockGCSClient) Close() error {
	m.closed = true
	return nil
}

// sliceIterator serves objects, then err or iterator.Done.
type sliceIterator struct {
	objects []*gcstorage.ObjectAttrs
	err     error
	pos     int
}

func (it *sliceIterator) Next() (*gcstorage.ObjectAttrs, error) {
	if it.pos < len(it.objects) {
		o := it.objects[it.pos]
		it.pos++
		return o, nil
	}
	if it.err != nil {
		return nil, it.err
	}
	return nil, iterator.Done
}

func makeBucket(name, location string, created time.Time) *BucketInfo {
	return &BucketInfo{Name: name, Location: location, Created: created}
}

func makeObject(name string, size int64, class string, updated time.Time, generation int64) *gcstorage.ObjectAttrs {
	return &gcstorage.ObjectAttrs{
		Name:         name,
		Size:         size,
		StorageClass: class,
		Updated:      updated,
		Generation:   generation,
	}
}
