package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/bucketspectre/internal/analyzer"
	"github.com/ppiankov/bucketspectre/internal/objstore"
	"github.com/ppiankov/bucketspectre/internal/pricing"
	"github.com/ppiankov/bucketspectre/internal/report"
)

// runPlan is everything needed to produce one report.
type runPlan struct {
	target     report.Target
	config     report.ReportConfig
	filter     objstore.BucketFilter
	analysis   analyzer.Config
	display    report.FormatOptions
	format     string
	outputFile string
	noProgress bool
}

var progressWriter io.Writer = os.Stderr

// runReport lists buckets, summarises them and writes the report. The
// output file is only created once the buckets have been summarised.
func runReport(ctx context.Context, p objstore.Provider, plan runPlan) error {
	table, err := pricing.ForProvider(p.Name())
	if err != nil {
		return err
	}
	plan.display.Table = table

	buckets, err := p.ListBuckets(ctx, plan.filter)
	if err != nil {
		return enhanceError("list buckets", err)
	}
	slog.Info("Summarising buckets", "provider", p.Name(), "buckets", len(buckets), "mode", plan.analysis.Mode)

	var progressFn func(objstore.Progress)
	if !plan.noProgress {
		progressFn = func(pr objstore.Progress) {
			fmt.Fprintf(progressWriter, "[%s] %s\n", pr.Bucket, pr.Message)
		}
	}

	result := analyzer.Analyze(ctx, p, buckets, table, plan.analysis, progressFn)

	cfg := plan.config
	cfg.Buckets = plan.filter.Names
	cfg.BucketPrefix = plan.filter.Prefix
	cfg.Prefix = plan.analysis.Prefix
	cfg.Mode = string(plan.analysis.Mode)
	cfg.GroupBy = string(plan.analysis.GroupBy)
	cfg.SizeUnit = string(plan.display.Unit)

	data := report.Data{
		Tool:           "bucketspectre",
		Version:        version,
		Timestamp:      time.Now().UTC(),
		RunID:          uuid.NewString(),
		Target:         plan.target,
		Config:         cfg,
		Rows:           result.Summaries,
		Totals:         result.Totals,
		BucketsScanned: result.BucketsScanned,
		Errors:         result.Errors,
		Format:         plan.display,
	}

	w, closeOutput, err := openOutput(plan.outputFile)
	if err != nil {
		return err
	}
	reporter, err := selectReporter(plan.format, w)
	if err != nil {
		_ = closeOutput()
		return err
	}
	if err := reporter.Generate(data); err != nil {
		_ = closeOutput()
		return err
	}
	return closeOutput()
}

// openOutput returns stdout, or a created file and its close function.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output file: %w", err)
		}
		return nil
	}, nil
}

func validFormat(format string) bool {
	switch format {
	case "text", "json", "spectrehub":
		return true
	}
	return false
}

func selectReporter(format string, w io.Writer) (report.Reporter, error) {
	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "spectrehub":
		return &report.SpectreHubReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or spectrehub)", format)
	}
}
