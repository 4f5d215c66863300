package cmd

import (
	"fmt"
	"runtime"

	C "github.com/skymkmk/domain-list-to-srs/constant"

	"github.com/spf13/cobra"
)

var commandVersion = &cobra.Command{
	Use:   "version",
	Short: "Show current version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
	},
}

func init() {
	RootCmd.AddCommand(commandVersion)
}

func printVersion() {
	fmt.Printf("domain-list-to-srs %s %s %s with %s %s\n",
		C.Version, runtime.GOOS, runtime.GOARCH, runtime.Version(), C.BuildTime)
}
