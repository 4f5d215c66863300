package cmd

import (
	"fmt"
	"os"

	"github.com/skymkmk/domain-list-to-srs/component/srs"
	C "github.com/skymkmk/domain-list-to-srs/constant"

	"github.com/spf13/cobra"
)

var commandInspect = &cobra.Command{
	Use:   "inspect <file.srs>...",
	Short: "Print the blocks of SRS rule-set files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := inspectFile(cmd, path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(commandInspect)
}

func inspectFile(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	summary, err := srs.Inspect(f)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: version %d, %d section(s)\n", path, summary.Version, len(summary.Sections))
	for i, blocks := range summary.Sections {
		for _, block := range blocks {
			switch block.Type {
			case C.Domain:
				fmt.Fprintf(out, "  [%d] %s: %d labels, %d leaf words, %d bitmap words\n",
					i, block.Type, block.Count, block.Words[0], block.Words[1])
			case C.DomainFinal:
				fmt.Fprintf(out, "  [%d] %s\n", i, block.Type)
			default:
				fmt.Fprintf(out, "  [%d] %s: %d entries\n", i, block.Type, block.Count)
			}
		}
	}
	return nil
}
