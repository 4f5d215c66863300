package cmd

import (
	"fmt"
	"os"

	"github.com/skymkmk/domain-list-to-srs/cmd/flags"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "domain-list-to-srs",
	Short: "Convert domain-list-community rules into SRS rule-sets.",
	Long: `domain-list-to-srs reads every rule file of a domain-list-community style data
directory and writes one SRS rule-set per file, plus one per @attribute.`,
	Args: cobra.NoArgs,
	Run:  runApp,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "f", "", "specify configuration file")
	RootCmd.PersistentFlags().StringVarP(&flags.LogLevel, "log-level", "", "", "log level: debug, info, warning, error or silent")
	RootCmd.PersistentFlags().StringVarP(&flags.LogFile, "log-file", "", "", "write logs to a rotated file instead of stderr")
	RootCmd.Flags().StringVarP(&flags.DataPath, "data", "d", "", "data directory holding rule files (env DATA_PATH)")
	RootCmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "output directory for SRS files (env OUTPUT_PATH)")
	RootCmd.Flags().BoolVarP(&flags.Force, "force", "y", false, "replace an existing output directory")
	RootCmd.Flags().IntVarP(&flags.Concurrency, "concurrency", "j", 0, "number of files converted in parallel, 0 for one per CPU")
	RootCmd.Flags().BoolVarP(&flags.Version, "version", "v", false, "show current version")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
