package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dazhuang0717-violet/communicationscorer/internal/score"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show resolved tier rules",
	Long: `Prints the tier keyword rules that would apply to a scoring run,
after merging config, --tiers-file, and the inline --tierN flags.
With --name, also shows which tier a given outlet would land in.`,
	RunE: runTiers,
}

func init() {
	f := tiersCmd.Flags()
	f.String("tier1", "", "comma-separated tier 1 outlet keywords")
	f.String("tier2", "", "comma-separated tier 2 outlet keywords")
	f.String("tier3", "", "comma-separated tier 3 outlet keywords")
	f.String("tiers-file", "", "YAML file with tier keyword lists")
	f.String("name", "", "outlet name to test against the rules")

	rootCmd.AddCommand(tiersCmd)
}

func runTiers(cmd *cobra.Command, _ []string) error {
	applyScoreOverrides(cmd, cfg)

	rules, err := cfg.Tiers.TierRules()
	if err != nil {
		return err
	}

	if len(rules) == 0 {
		fmt.Printf("No tier rules configured; every outlet scores %d.\n", score.DefaultTierScore)
	}
	for _, rule := range rules {
		fmt.Printf("%-6s (score %2d): %s\n", rule.Label, rule.Score, strings.Join(rule.Keywords, ", "))
	}

	if name, _ := cmd.Flags().GetString("name"); name != "" {
		fmt.Printf("\n%q scores %d\n", name, score.ResolveTier(name, rules))
	}
	return nil
}
