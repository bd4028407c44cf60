package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bucketspectre/internal/config"
	"github.com/ppiankov/bucketspectre/internal/report"
	"github.com/ppiankov/bucketspectre/internal/s3"
)

var awsFlags struct {
	region  string
	profile string
	reportFlags
}

var awsCmd = &cobra.Command{
	Use:   "aws",
	Short: "Report AWS S3 bucket usage and estimated cost",
	Long: `Summarise every S3 bucket in an AWS account: object count, total size,
estimated monthly storage cost, creation date, last modification and the
number of objects per storage class. Use --group-by region to merge buckets
per region and --versions to include noncurrent versions and delete markers.`,
	RunE: runAWS,
}

func init() {
	awsCmd.Flags().StringVar(&awsFlags.region, "region", "", "AWS region for API calls (default: from AWS config)")
	awsCmd.Flags().StringVar(&awsFlags.profile, "profile", "", "AWS profile name")
	addReportFlags(awsCmd, &awsFlags.reportFlags)
}

func runAWS(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyAWSConfigDefaults(cfg)

	ctx := cmd.Context()
	if awsFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, awsFlags.timeout)
		defer cancel()
	}

	plan, err := awsFlags.plan()
	if err != nil {
		return err
	}

	client, err := s3.NewClient(ctx, awsFlags.profile, awsFlags.region)
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}
	region := client.Region()
	slog.Info("Scanning S3", "region", region)

	plan.target = report.Target{
		Type:    "s3",
		URIHash: computeTargetHash("aws", []string{region}, awsFlags.profile),
	}
	plan.config = report.ReportConfig{
		Provider: "aws",
		Regions:  []string{region},
	}

	provider := s3.NewProvider(client.NewS3Client(), client.ForRegion)
	return runReport(ctx, provider, plan)
}

func applyAWSConfigDefaults(cfg config.Config) {
	if awsFlags.profile == "" && cfg.Profile != "" {
		awsFlags.profile = cfg.Profile
	}
	if awsFlags.region == "" && len(cfg.Regions) > 0 {
		awsFlags.region = cfg.Regions[0]
	}
	awsFlags.applyConfigDefaults(cfg)
}
