package analyzer

import (
	"context"
	"errors"
	"iter"
	"sync"
	"time"

	"github.com/ppiankov/bucketspectre/internal/objstore"
)

// fakeProvider implements objstore.Provider for testing.
type fakeProvider struct {
	objects     map[string][]objstore.ObjectRecord
	versions    map[string][]objstore.ObjectRecord
	regions     map[string]string
	listErr     map[string]error
	regionErr   map[string]error
	mu          sync.Mutex
	regionCalls int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		objects:   make(map[string][]objstore.ObjectRecord),
		versions:  make(map[string][]objstore.ObjectRecord),
		regions:   make(map[string]string),
		listErr:   make(map[string]error),
		regionErr: make(map[string]error),
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ListBuckets(_ context.Context, _ objstore.BucketFilter) ([]objstore.Bucket, error) {
	return nil, errors.New("not used")
}

func (f *fakeProvider) ResolveRegion(_ context.Context, bucket string) (string, error) {
	f.mu.Lock()
	f.regionCalls++
	f.mu.Unlock()
	if err, ok := f.regionErr[bucket]; ok {
		return "", err
	}
	return f.regions[bucket], nil
}

func (f *fakeProvider) ListObjects(_ context.Context, b objstore.Bucket, _ string) iter.Seq2[objstore.ObjectRecord, error] {
	return f.seq(f.objects[b.Name], f.listErr[b.Name])
}

func (f *fakeProvider) ListObjectVersions(_ context.Context, b objstore.Bucket, _ string) iter.Seq2[objstore.ObjectRecord, error] {
	return f.seq(f.versions[b.Name], f.listErr[b.Name])
}

// seq yields the records, then err if it is set.
func (f *fakeProvider) seq(records []objstore.ObjectRecord, err error) iter.Seq2[objstore.ObjectRecord, error] {
	return func(yield func(objstore.ObjectRecord, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
		if err != nil {
			yield(objstore.ObjectRecord{}, err)
		}
	}
}

func records(recs ...objstore.ObjectRecord) iter.Seq2[objstore.ObjectRecord, error] {
	return newFakeProvider().seq(recs, nil)
}

func obj(size int64, tier objstore.Tier, modified time.Time) objstore.ObjectRecord {
	return objstore.ObjectRecord{Key: "k", Size: size, Tier: tier, LastModified: modified}
}

func timePtr(t time.Time) *time.Time { return &t }
