package objstore

import (
	"errors"
	"fmt"
)

// ErrBucketNotFound is returned by provider clients when a bucket does not exist.
var ErrBucketNotFound = errors.New("bucket not found")

// ProviderError wraps a failure reported by the storage provider.
type ProviderError struct {
	Provider string
	Op       string
	Bucket   string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Bucket == "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Provider, e.Op, e.Bucket, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapError returns err as a *ProviderError unless it already is one or is nil.
func WrapError(provider, op, bucket string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Provider: provider, Op: op, Bucket: bucket, Err: err}
}
