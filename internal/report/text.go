package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// NoBuckets is printed when there is nothing to display.
const NoBuckets = "No buckets to display."

var columns = []string{"BUCKET", "OBJECTS", "SIZE", "COST/MO", "CREATED", "LAST MODIFIED", "TIERS"}

// Generate writes human-readable terminal output.
func (r *TextReporter) Generate(data Data) error {
	w := &errWriter{w: r.Writer}

	w.println("bucketspectre: Object Storage Usage Report")
	w.println(strings.Repeat("=", 42))
	w.println("")

	if len(data.Rows) == 0 {
		w.println(NoBuckets)
		w.println("")
		writeTextSummary(w, data)
		return w.err
	}

	tw := tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
	tw2 := &errWriter{w: tw}
	header := append([]string(nil), columns...)
	if data.Config.GroupBy == "region" {
		header[0] = "REGION"
	}
	header[2] = fmt.Sprintf("SIZE (%s)", displayUnit(data.Format))
	tw2.println(strings.Join(header, "\t"))
	tw2.println(strings.Join(underline(header), "\t"))

	for _, s := range data.Rows {
		tw2.println(strings.Join(Fields(s, data.Format), "\t"))
	}
	tw2.println(strings.Join(Fields(data.Totals, data.Format), "\t"))
	if tw2.err != nil {
		return tw2.err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	w.println("")
	writeTextSummary(w, data)
	return w.err
}

func writeTextSummary(w *errWriter, data Data) {
	w.println("Summary")
	w.println("-------")
	w.printf("Buckets scanned:         %d\n", data.BucketsScanned)
	w.printf("Objects:                 %d\n", data.Totals.ObjectCount)
	unit := displayUnit(data.Format)
	w.printf("Total size:              %s %s\n", FormatSize(data.Totals.TotalSize, unit), unit)
	w.printf("Estimated monthly cost:  $%s\n", FormatCost(data.Totals.TotalCost))
	if data.Config.Mode != "" {
		w.printf("Mode:                    %s\n", data.Config.Mode)
	}

	if len(data.Errors) > 0 {
		w.printf("\nWarnings (%d):\n", len(data.Errors))
		for _, e := range data.Errors {
			w.printf("  - %s\n", e)
		}
	}
}

func displayUnit(opts FormatOptions) SizeUnit {
	if _, ok := unitBytes[opts.Unit]; ok {
		return opts.Unit
	}
	return DefaultSizeUnit
}

func underline(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.Repeat("-", len(h))
	}
	return out
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
