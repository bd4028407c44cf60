package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bucketspectre/internal/config"
	"github.com/ppiankov/bucketspectre/internal/gcs"
	"github.com/ppiankov/bucketspectre/internal/report"
)

var gcpFlags struct {
	project     string
	credentials string
	reportFlags
}

var gcpCmd = &cobra.Command{
	Use:   "gcp",
	Short: "Report Google Cloud Storage bucket usage and estimated cost",
	Long: `Summarise every Cloud Storage bucket in a GCP project: object count, total
size, estimated monthly storage cost, creation date, last modification and the
number of objects per storage class.

With --versions, noncurrent object generations are counted too. GCS has no
delete markers, so none are reported.`,
	RunE: runGCP,
}

func init() {
	gcpCmd.Flags().StringVar(&gcpFlags.project, "project", "", "GCP project ID (required)")
	gcpCmd.Flags().StringVar(&gcpFlags.credentials, "credentials", "", "Service account key file (default: application default credentials)")
	addReportFlags(gcpCmd, &gcpFlags.reportFlags)
}

func runGCP(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyGCPConfigDefaults(cfg)

	if gcpFlags.project == "" {
		return fmt.Errorf("--project is required for GCP scans")
	}

	ctx := cmd.Context()
	if gcpFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gcpFlags.timeout)
		defer cancel()
	}

	plan, err := gcpFlags.plan()
	if err != nil {
		return err
	}

	slog.Info("Scanning Cloud Storage", "project", gcpFlags.project)
	client, err := gcs.NewClient(ctx, gcpFlags.credentials)
	if err != nil {
		return enhanceError("initialize GCP client", err)
	}
	defer func() { _ = client.Close() }()

	plan.target = report.Target{
		Type:    "gcs",
		URIHash: computeTargetHash("gcp", nil, gcpFlags.project),
	}
	plan.config = report.ReportConfig{
		Provider: "gcp",
		Project:  gcpFlags.project,
	}

	return runReport(ctx, gcs.NewProvider(client, gcpFlags.project), plan)
}

func applyGCPConfigDefaults(cfg config.Config) {
	if gcpFlags.project == "" && cfg.Project != "" {
		gcpFlags.project = cfg.Project
	}
	if gcpFlags.credentials == "" && cfg.CredentialsFile != "" {
		gcpFlags.credentials = cfg.CredentialsFile
	}
	gcpFlags.applyConfigDefaults(cfg)
}
