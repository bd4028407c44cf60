package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bucketspectre/internal/analyzer"
	"github.com/ppiankov/bucketspectre/internal/config"
	"github.com/ppiankov/bucketspectre/internal/objstore"
	"github.com/ppiankov/bucketspectre/internal/report"
)

const (
	defaultFormat  = "text"
	defaultGroupBy = "none"
	defaultMode    = string(objstore.ModeCurrent)
	defaultTimeout = 10 * time.Minute
)

// reportFlags are shared by every provider command.
type reportFlags struct {
	buckets      []string
	bucketPrefix string
	prefix       string
	mode         string
	versions     bool
	groupBy      string
	unit         string
	dateFormat   string
	nameWidth    int
	workers      int
	format       string
	outputFile   string
	noProgress   bool
	timeout      time.Duration
}

func addReportFlags(cmd *cobra.Command, f *reportFlags) {
	cmd.Flags().StringArrayVar(&f.buckets, "bucket", nil, "Only report this bucket (repeatable)")
	cmd.Flags().StringVar(&f.bucketPrefix, "bucket-prefix", "", "Only report buckets whose name starts with this prefix")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Only count objects whose key starts with this prefix")
	cmd.Flags().StringVar(&f.mode, "mode", defaultMode, "Objects to count: current or versions")
	cmd.Flags().BoolVar(&f.versions, "versions", false, "Shorthand for --mode versions")
	cmd.Flags().StringVar(&f.groupBy, "group-by", defaultGroupBy, "Group rows: none or region")
	cmd.Flags().StringVar(&f.unit, "unit", string(report.DefaultSizeUnit), "Size unit: B, KB, MB, GB, TB")
	cmd.Flags().StringVar(&f.dateFormat, "date-format", report.DefaultDateFormat, "Go time layout for dates")
	cmd.Flags().IntVar(&f.nameWidth, "name-width", report.DefaultNameWidth, "Truncate names longer than this (0 disables)")
	cmd.Flags().IntVar(&f.workers, "workers", analyzer.DefaultWorkers, "Buckets scanned concurrently")
	cmd.Flags().StringVar(&f.format, "format", defaultFormat, "Output format: text, json, spectrehub")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, "Disable progress output")
	cmd.Flags().DurationVar(&f.timeout, "timeout", defaultTimeout, "Scan timeout")
}

// applyConfigDefaults fills flags still at their defaults from the config file.
func (f *reportFlags) applyConfigDefaults(cfg config.Config) {
	if len(f.buckets) == 0 && len(cfg.Buckets) > 0 {
		f.buckets = cfg.Buckets
	}
	if f.bucketPrefix == "" && cfg.BucketPrefix != "" {
		f.bucketPrefix = cfg.BucketPrefix
	}
	if f.prefix == "" && cfg.Prefix != "" {
		f.prefix = cfg.Prefix
	}
	if f.mode == defaultMode && cfg.Mode != "" {
		f.mode = cfg.Mode
	}
	if !f.versions && cfg.Versions {
		f.versions = true
	}
	if f.groupBy == defaultGroupBy && cfg.GroupBy != "" {
		f.groupBy = cfg.GroupBy
	}
	if f.unit == string(report.DefaultSizeUnit) && cfg.SizeUnit != "" {
		f.unit = cfg.SizeUnit
	}
	if f.dateFormat == report.DefaultDateFormat && cfg.DateFormat != "" {
		f.dateFormat = cfg.DateFormat
	}
	if f.nameWidth == report.DefaultNameWidth && cfg.NameWidth > 0 {
		f.nameWidth = cfg.NameWidth
	}
	if f.workers == analyzer.DefaultWorkers && cfg.Workers > 0 {
		f.workers = cfg.Workers
	}
	if f.format == defaultFormat && cfg.Format != "" {
		f.format = cfg.Format
	}
	if f.timeout == defaultTimeout && cfg.TimeoutDuration() > 0 {
		f.timeout = cfg.TimeoutDuration()
	}
}

// plan validates the flags and turns them into a run description. The
// pricing table is chosen later from the provider.
func (f *reportFlags) plan() (runPlan, error) {
	modeName := f.mode
	if f.versions {
		modeName = string(objstore.ModeVersions)
	}
	mode, err := objstore.ParseMode(modeName)
	if err != nil {
		return runPlan{}, err
	}
	groupBy, err := analyzer.ParseGroupBy(f.groupBy)
	if err != nil {
		return runPlan{}, err
	}
	unit, err := report.ParseSizeUnit(f.unit)
	if err != nil {
		return runPlan{}, err
	}
	if !validFormat(f.format) {
		return runPlan{}, fmt.Errorf("unsupported format: %s (use text, json, or spectrehub)", f.format)
	}

	display := report.DefaultFormatOptions(nil)
	display.Unit = unit
	display.NameWidth = f.nameWidth
	if f.dateFormat != "" {
		display.DateFormat = f.dateFormat
	}

	return runPlan{
		filter: objstore.BucketFilter{Names: f.buckets, Prefix: f.bucketPrefix},
		analysis: analyzer.Config{
			Mode:    mode,
			Prefix:  f.prefix,
			Workers: f.workers,
			GroupBy: groupBy,
		},
		display:    display,
		format:     f.format,
		outputFile: f.outputFile,
		noProgress: f.noProgress,
	}, nil
}
