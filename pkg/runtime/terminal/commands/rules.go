package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/qed-tools/fabric-atlas/pkg/services/config"
)

type RulesCmd struct {
	configPath string
}

func NewRulesCmd() *cobra.Command {
	rc := &RulesCmd{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule set",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.configPath, "config", "c", "", "Path to the master configuration file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (rc *RulesCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", rc.configPath, err)
	}

	ruleset := cfg.RuleSet()
	if len(ruleset) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No rules configured.")
		return nil
	}

	for i, rule := range ruleset {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s: %s %s %v%s (reason: %s)\n",
			i+1, rule.Name, rule.Field, rule.Comparator, rule.Threshold,
			toleranceSuffix(rule), rule.Reason)
	}

	return nil
}

func toleranceSuffix(rule domain.Rule) string {
	if rule.Comparator != domain.ComparatorToleranceBand {
		return ""
	}
	return fmt.Sprintf(" ±%v", rule.Tolerance)
}
