package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/bucketspectre/internal/objstore"
	"github.com/ppiankov/bucketspectre/internal/pricing"
)

// DefaultWorkers bounds concurrent bucket scans when Config.Workers is unset.
const DefaultWorkers = 8

// TotalName names the summary of all scanned buckets.
const TotalName = "TOTAL"

// Analyze summarises every bucket concurrently, one task per bucket, and
// optionally merges the summaries per region. A bucket that fails to list
// or resolve is reported in Result.Errors and skipped. progress may be
// called from several goroutines at once.
func Analyze(ctx context.Context, p objstore.Provider, buckets []objstore.Bucket, table *pricing.Table, cfg Config, progress func(objstore.Progress)) *Result {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	source := objstore.Objects(p, cfg.Mode)

	summaries := make([]BucketSummary, len(buckets))
	regions := make([]string, len(buckets))
	errs := make([]error, len(buckets))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, b := range buckets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", b.Name, err)
				return nil
			}
			reportProgress(progress, b.Name, fmt.Sprintf("Scanning %s", b.Name))

			s, err := Fold(b, source(ctx, b, cfg.Prefix), table)
			if err != nil {
				errs[i] = objstore.WrapError(p.Name(), "list objects", b.Name, err)
				return nil
			}
			if cfg.GroupBy == GroupRegion {
				region, err := p.ResolveRegion(ctx, b.Name)
				if err != nil {
					errs[i] = objstore.WrapError(p.Name(), "resolve region", b.Name, err)
					return nil
				}
				regions[i] = region
			}
			summaries[i] = s
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{}
	var done []BucketSummary
	regionOf := make(map[string]string, len(buckets))
	for i, b := range buckets {
		if errs[i] != nil {
			slog.Warn("Skipping bucket", "bucket", b.Name, "error", errs[i])
			result.Errors = append(result.Errors, errs[i].Error())
			continue
		}
		done = append(done, summaries[i])
		regionOf[b.Name] = regions[i]
	}

	result.BucketsScanned = len(done)
	result.Totals = Total(TotalName, done, table)
	if cfg.GroupBy == GroupRegion {
		result.Summaries = Group(done, func(s BucketSummary) string {
			return regionOf[s.Name]
		}, table)
	} else {
		result.Summaries = done
	}

	slog.Debug("Analysis complete", "buckets", result.BucketsScanned, "errors", len(result.Errors))
	return result
}

func reportProgress(progress func(objstore.Progress), bucket, msg string) {
	if progress != nil {
		progress(objstore.Progress{
			Bucket:    bucket,
			Message:   msg,
			Timestamp: time.Now(),
		})
	}
}
