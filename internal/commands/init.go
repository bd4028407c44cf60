package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	configFile = ".bucketspectre.yaml"
	policyFile = "bucketspectre-policy.json"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample .bucketspectre.yaml config file and a read-only S3 IAM policy.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	wroteConfig, err := writeIfNotExists(configFile, sampleConfig, initFlags.force)
	if err != nil {
		return err
	}
	wrotePolicy, err := writeIfNotExists(policyFile, sampleIAMPolicy, initFlags.force)
	if err != nil {
		return err
	}

	if wroteConfig || wrotePolicy {
		fmt.Printf("Created %s and %s\n", configFile, policyFile)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit .bucketspectre.yaml to choose buckets, grouping and display units")
		fmt.Println("  2. For AWS: apply bucketspectre-policy.json to your IAM role/user")
		fmt.Println("  3. For GCP: grant Storage Object Viewer on the project to your account")
		fmt.Println("  4. Run: bucketspectre aws  OR  bucketspectre gcp --project=PROJECT_ID")
	}
	return nil
}

func writeIfNotExists(path, content string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

const sampleConfig = `# bucketspectre configuration
# See: https://github.com/ppiankov/bucketspectre

# AWS profile (or set AWS_PROFILE env var)
# profile: default

# Region used for API calls; objects are always listed in each bucket's region
# regions:
#   - us-east-1

# GCP project ID (required for gcp)
# project: my-project-id

# Restrict the report to these buckets, or to buckets with this name prefix
# buckets:
#   - my-logs
# bucket_prefix: prod-

# Only count objects under this key prefix
# prefix: 2026/

# Objects to count: current, or versions (every version and delete marker)
mode: current

# Group rows: none or region
group_by: none

# Display: size unit (B, KB, MB, GB, TB), Go date layout, name column width
size_unit: KB
date_format: "2006-01-02T15:04"
name_width: 40

# Buckets scanned concurrently
workers: 8

# Output format: text, json, or spectrehub
format: text

# Scan timeout
timeout: 10m
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "BucketSpectreReadOnly",
      "Effect": "Allow",
      "Action": [
        "s3:ListAllMyBuckets",
        "s3:GetBucketLocation",
        "s3:ListBucket",
        "s3:ListBucketVersions"
      ],
      "Resource": "*"
    }
  ]
}
`
