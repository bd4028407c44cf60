package commands

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/bucketspectre/internal/logging"
)

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "bucketspectre",
	Short: "bucketspectre: object storage usage and cost reporter",
	Long: `bucketspectre summarises AWS S3 and Google Cloud Storage buckets: how many
objects they hold, how large they are, when they were last written and what
they cost per month at list prices.

It only reads. Nothing in the storage account is modified.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(awsCmd)
	rootCmd.AddCommand(gcpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
