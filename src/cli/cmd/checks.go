package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tidyplan/guardrails/src/guardrail"
	_ "github.com/tidyplan/guardrails/src/guardrail/checks"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List registered checks",
	Long:  "List every registered check with its id, applicability, and documentation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := os.Stdout
		for _, c := range guardrail.All() {
			enabled := "enabled"
			if cc, ok := cfg.Guard.Checks[c.Meta.ID]; ok && cc.Enabled != nil && !*cc.Enabled {
				enabled = "disabled"
			}
			fmt.Fprintf(w, "%s  [%s, %s]\n", c.Meta.ID, c.Severity(), enabled)
			// Blank metadata is omitted, not rendered as empty fields.
			if c.Meta.What != "" {
				fmt.Fprintf(w, "  what:    %s\n", c.Meta.What)
			}
			if c.Meta.Why != "" {
				fmt.Fprintf(w, "  why:     %s\n", c.Meta.Why)
			}
			if c.Meta.Failure != "" {
				fmt.Fprintf(w, "  failure: %s\n", c.Meta.Failure)
			}
			if c.Meta.PolicyPath != "" {
				fmt.Fprintf(w, "  policy:  %s\n", c.Meta.PolicyPath)
			}
			fmt.Fprintln(w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
