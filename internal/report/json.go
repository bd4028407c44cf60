package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/bucketspectre/internal/analyzer"
)

// SchemaVersion is written as $schema in JSON envelopes.
const SchemaVersion = "spectre/v1"

type jsonEnvelope struct {
	Schema string `json:"$schema"`
	Data
}

// Generate writes the report as a spectre/v1 JSON envelope with raw summaries.
func (r *JSONReporter) Generate(data Data) error {
	if data.Rows == nil {
		data.Rows = []analyzer.BucketSummary{}
	}
	return writeJSON(r.Writer, jsonEnvelope{Schema: SchemaVersion, Data: data})
}

type hubEnvelope struct {
	Schema    string     `json:"schema"`
	Tool      string     `json:"tool"`
	Version   string     `json:"version"`
	Timestamp time.Time  `json:"timestamp"`
	RunID     string     `json:"run_id"`
	Target    Target     `json:"target"`
	Summary   hubSummary `json:"summary"`
	Rows      []hubRow   `json:"rows"`
	Errors    []string   `json:"errors,omitempty"`
}

type hubSummary struct {
	BucketsScanned int             `json:"buckets_scanned"`
	Objects        int64           `json:"objects"`
	TotalSizeBytes int64           `json:"total_size_bytes"`
	MonthlyCostUSD decimal.Decimal `json:"monthly_cost_usd"`
}

type hubRow struct {
	Name         string `json:"name"`
	Objects      string `json:"objects"`
	Size         string `json:"size"`
	Cost         string `json:"cost"`
	Created      string `json:"created"`
	LastModified string `json:"last_modified"`
	Tiers        string `json:"tiers"`
}

// Generate writes the report as a SpectreHub envelope with display-formatted rows.
func (r *SpectreHubReporter) Generate(data Data) error {
	rows := make([]hubRow, 0, len(data.Rows))
	for _, s := range data.Rows {
		f := Fields(s, data.Format)
		rows = append(rows, hubRow{
			Name:         f[0],
			Objects:      f[1],
			Size:         f[2] + " " + string(displayUnit(data.Format)),
			Cost:         f[3],
			Created:      f[4],
			LastModified: f[5],
			Tiers:        f[6],
		})
	}

	return writeJSON(r.Writer, hubEnvelope{
		Schema:    SchemaVersion,
		Tool:      data.Tool,
		Version:   data.Version,
		Timestamp: data.Timestamp,
		RunID:     data.RunID,
		Target:    data.Target,
		Summary: hubSummary{
			BucketsScanned: data.BucketsScanned,
			Objects:        data.Totals.ObjectCount,
			TotalSizeBytes: data.Totals.TotalSize,
			MonthlyCostUSD: costDecimal(data.Totals.TotalCost).Round(2),
		},
		Rows:   rows,
		Errors: data.Errors,
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
