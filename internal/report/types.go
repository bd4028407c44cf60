package report

import (
	"io"
	"time"

	"github.com/ppiankov/bucketspectre/internal/analyzer"
)

// Reporter is the interface for output formatters.
type Reporter interface {
	Generate(data Data) error
}

// Data holds all information needed to generate a report.
type Data struct {
	Tool           string                   `json:"tool"`
	Version        string                   `json:"version"`
	Timestamp      time.Time                `json:"timestamp"`
	RunID          string                   `json:"run_id"`
	Target         Target                   `json:"target"`
	Config         ReportConfig             `json:"config"`
	Rows           []analyzer.BucketSummary `json:"rows"`
	Totals         analyzer.BucketSummary   `json:"totals"`
	BucketsScanned int                      `json:"buckets_scanned"`
	Errors         []string                 `json:"errors,omitempty"`

	Format FormatOptions `json:"-"`
}

// Target identifies the storage account being summarised.
type Target struct {
	Type    string `json:"type"`
	URIHash string `json:"uri_hash"`
}

// ReportConfig captures the run configuration used.
type ReportConfig struct {
	Provider     string   `json:"provider"`
	Regions      []string `json:"regions,omitempty"`
	Project      string   `json:"project,omitempty"`
	Buckets      []string `json:"buckets,omitempty"`
	BucketPrefix string   `json:"bucket_prefix,omitempty"`
	Prefix       string   `json:"prefix,omitempty"`
	Mode         string   `json:"mode"`
	GroupBy      string   `json:"group_by"`
	SizeUnit     string   `json:"size_unit"`
}

// TextReporter generates human-readable terminal output.
type TextReporter struct {
	Writer io.Writer
}

// JSONReporter generates spectre/v1 envelope JSON output.
type JSONReporter struct {
	Writer io.Writer
}

// SpectreHubReporter generates SpectreHub envelope JSON output.
type SpectreHubReporter struct {
	Writer io.Writer
}
