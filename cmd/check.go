package cmd

import (
	"fmt"

	C "github.com/skymkmk/domain-list-to-srs/constant"
	"github.com/skymkmk/domain-list-to-srs/rules/dlc"
	"github.com/skymkmk/domain-list-to-srs/rules/matcher"

	"github.com/spf13/cobra"
)

var checkRuleSet string

var commandCheck = &cobra.Command{
	Use:   "check <rule file> <domain>...",
	Short: "Report which domains a rule file matches",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ruleSets, err := dlc.ParseFile(args[0])
		if err != nil {
			return err
		}
		rule, ok := ruleSets.Get(checkRuleSet)
		if !ok {
			return fmt.Errorf("%s has no rule-set %q", args[0], checkRuleSet)
		}
		m, err := matcher.New(rule)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, domain := range args[1:] {
			ruleType, payload, ok := m.Match(domain)
			switch {
			case !ok:
				fmt.Fprintf(out, "%s\tno match\n", domain)
			case payload == "":
				fmt.Fprintf(out, "%s\t%s\n", domain, ruleType)
			default:
				fmt.Fprintf(out, "%s\t%s\t%s\n", domain, ruleType, payload)
			}
		}
		return nil
	},
}

func init() {
	commandCheck.Flags().StringVarP(&checkRuleSet, "rule-set", "r", C.DefaultRuleSetName, "rule-set to check, default or an attribute name")
	RootCmd.AddCommand(commandCheck)
}
