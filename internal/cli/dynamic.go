package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/greenlie/internal/engine"
	"github.com/ppiankov/greenlie/internal/model"
)

var (
	dynamicTarget string
	dynamicSource string

	suggestMissing string
	suggestText    string
	suggestTarget  string
)

var dynamicCmd = &cobra.Command{
	Use:   "dynamic <statement>",
	Short: "Evaluate free text from the target group's power profile",
	Long: `Dynamic evaluates any statement without curated facts. A criterion is
missing when the target group lacks structural control over it and the
statement's wording makes it relevant.

Example:
  greenlie dynamic "You should switch to solar panels" --target Consumers
  greenlie dynamic "Fines for littering start in May" --target Citizens --source "Government Policy"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		text := strings.TrimSpace(args[0])
		if text == "" {
			return errors.New("statement is empty")
		}
		result := eng.DynamicVerdict(text, dynamicTarget, dynamicSource)

		out := cmd.OutOrStdout()
		if cfg.Output.Format == "json" {
			return printJSON(out, result)
		}

		printHeader(out, "Dynamic evaluation")
		fmt.Fprintf(out, "%s %s\n\n", verdictMark(result.Verdict), result.Verdict.Label())
		for _, c := range model.AllCriteria() {
			a := result.Assessment[c]
			fmt.Fprintf(out, "  %s %-28s %s\n", statusMark(a.Status), c.Label(), a.Explanation)
		}
		printSuggestions(out, text, dynamicTarget, result.MissingConditions)
		return nil
	},
}

var contextCmd = &cobra.Command{
	Use:   "context [target-group]",
	Short: "Show the structural power of a target group",
	Long: `Context shows which criteria a target group controls and the advisory
power context used in messaging. Without an argument it lists the known groups.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			groups := engine.TargetGroups()
			if cfg.Output.Format == "json" {
				return printJSON(out, map[string][]string{"targetGroups": groups})
			}
			for _, g := range groups {
				fmt.Fprintf(out, "  %-28s controls %s\n", g, criteriaLabels(engine.PowerProfile(g)))
			}
			return nil
		}

		group := args[0]
		pc := engine.TypicalPowerContext(group)
		if cfg.Output.Format == "json" {
			return printJSON(out, map[string]any{
				"targetGroup": group,
				"known":       engine.KnownTargetGroup(group),
				"controls":    engine.PowerProfile(group),
				"context":     pc,
			})
		}

		printHeader(out, "Target group: "+group)
		if !engine.KnownTargetGroup(group) {
			fmt.Fprintf(out, "  (unknown group, showing %s)\n\n", engine.DefaultTargetGroup)
		}
		fmt.Fprintf(out, "  Power level:     %s\n", pc.PowerLevel)
		fmt.Fprintf(out, "  Controls:        %s\n", criteriaLabels(engine.PowerProfile(group)))
		fmt.Fprintf(out, "  Typically has:   %s\n", criteriaLabels(pc.TypicallyHas))
		fmt.Fprintf(out, "  Typically lacks: %s\n\n", criteriaLabels(pc.TypicallyLacks))
		fmt.Fprintln(out, pc.ContextNote)
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest remediations for missing conditions",
	Long: `Suggest prints the remediation for each missing criterion and, when the
statement text is given, the honest makeover suggestions for it.

Example:
  greenlie suggest --missing affordability,infrastructure_availability
  greenlie suggest --missing decision_authority --text "Recycle your cups" --target Youth`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		missing, err := parseCriteria(suggestMissing)
		if err != nil {
			return err
		}

		makeover := []string{}
		if suggestText != "" {
			makeover = engine.HonestMakeoverSuggestions(suggestText, suggestTarget, missing)
		}

		out := cmd.OutOrStdout()
		if cfg.Output.Format == "json" {
			return printJSON(out, map[string]any{
				"remediations": engine.RemediationSuggestions(missing),
				"makeover":     makeover,
			})
		}

		if len(missing) == 0 {
			fmt.Fprintln(out, "No missing conditions given.")
			return nil
		}
		for _, c := range missing {
			fmt.Fprintf(out, "  • %s: %s\n", c.Label(), engine.Remediation(c))
		}
		if len(makeover) > 0 {
			fmt.Fprintln(out)
			for _, s := range makeover {
				fmt.Fprintf(out, "  %s\n", s)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dynamicCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(suggestCmd)

	dynamicCmd.Flags().StringVar(&dynamicTarget, "target", engine.DefaultTargetGroup, "target group the statement addresses")
	dynamicCmd.Flags().StringVar(&dynamicSource, "source", "", "source type (e.g. Government Policy)")

	suggestCmd.Flags().StringVar(&suggestMissing, "missing", "", "comma separated missing criteria")
	suggestCmd.Flags().StringVar(&suggestText, "text", "", "statement text for makeover suggestions")
	suggestCmd.Flags().StringVar(&suggestTarget, "target", engine.DefaultTargetGroup, "target group for makeover suggestions")
	_ = suggestCmd.MarkFlagRequired("missing")
}
