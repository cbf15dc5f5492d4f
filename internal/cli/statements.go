package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/greenlie/internal/model"
)

var statementsCmd = &cobra.Command{
	Use:   "statements",
	Short: "Browse the reference statement catalog",
}

var statementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reference statements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		statements := eng.ListStatements()
		out := cmd.OutOrStdout()
		if cfg.Output.Format == "json" {
			return printJSON(out, statements)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTARGET\tSOURCE\tVERDICT\tSTATEMENT")
		for _, s := range statements {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.TargetGroup, s.SourceType, s.Verdict, truncate(s.Statement, 60))
		}
		return tw.Flush()
	},
}

var statementsShowCmd = &cobra.Command{
	Use:   "show <statement-id>",
	Short: "Show a reference statement with its curated assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		stmt, ok := eng.LookupStatement(args[0])
		if !ok {
			return fmt.Errorf("statement %s not found", args[0])
		}

		out := cmd.OutOrStdout()
		if cfg.Output.Format == "json" {
			return printJSON(out, stmt)
		}

		printHeader(out, stmt.ID+" · "+stmt.Verdict)
		fmt.Fprintf(out, "%q\n\n", stmt.Statement)
		fmt.Fprintf(out, "  Target group: %s\n", stmt.TargetGroup)
		fmt.Fprintf(out, "  Source:       %s\n", stmt.SourceType)
		fmt.Fprintf(out, "  Action:       %s\n\n", stmt.Action)
		for _, c := range model.AllCriteria() {
			a := stmt.CriteriaAssessment[c]
			fmt.Fprintf(out, "  %s %-28s %s\n", statusMark(a.Status), c.Label(), a.Status.Label())
			fmt.Fprintf(out, "      %s\n", a.Explanation)
		}
		fmt.Fprintf(out, "\n%s\n", stmt.Reasoning)
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	rootCmd.AddCommand(statementsCmd)
	statementsCmd.AddCommand(statementsListCmd)
	statementsCmd.AddCommand(statementsShowCmd)
}
