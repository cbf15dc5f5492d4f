package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/greenlie/internal/model"
	"github.com/ppiankov/greenlie/internal/questionnaire"
)

var (
	customTarget  string
	customSource  string
	customAnswers string
)

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Submit and evaluate your own statements",
}

var customAddCmd = &cobra.Command{
	Use:   "add <statement>",
	Short: "Submit a custom statement",
	Long: `Submit a custom statement for evaluation.

Example:
  greenlie custom add "Bring your own cup to the canteen" --target Students --source "University Campaign"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		id, err := a.service.SubmitCustomStatement(ctx, model.CustomStatementInput{
			Statement:   args[0],
			SourceType:  customSource,
			TargetGroup: customTarget,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if a.json() {
			return printJSON(out, map[string]string{"id": id})
		}
		fmt.Fprintf(out, "✓ Saved custom statement %s\n", id)
		fmt.Fprintf(out, "\nTo evaluate it:\n  greenlie custom evaluate %s\n", id)
		return nil
	},
}

var customListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom statements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		customs, err := a.service.CustomStatements(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if a.json() {
			return printJSON(out, customs)
		}
		if len(customs) == 0 {
			fmt.Fprintln(out, "No custom statements yet. Add one with: greenlie custom add")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTARGET\tSOURCE\tVERDICT\tSTATEMENT")
		for _, cs := range customs {
			verdict := "-"
			if cs.Analyzed && cs.AnalysisResult != nil {
				verdict = cs.AnalysisResult.Verdict.Label()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", cs.ID, cs.TargetGroup, cs.SourceType, verdict, truncate(cs.Statement, 50))
		}
		return tw.Flush()
	},
}

var customEvaluateCmd = &cobra.Command{
	Use:   "evaluate <custom-id>",
	Short: "Evaluate a custom statement with your own judgements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		cs, err := a.service.CustomStatement(ctx, args[0])
		if err != nil {
			return err
		}

		var answers map[model.Criterion]model.ConditionStatus
		if cmd.Flags().Changed("answers") {
			answers, err = parseAnswers(customAnswers)
		} else {
			answers, err = runQuestionnaire(cmd.InOrStdin(), cmd.ErrOrStderr(), questionnaire.NewCustomSession(cs))
		}
		if err != nil {
			return err
		}

		verdict, err := a.service.CompleteCustomAnalysis(ctx, cs.ID, answers)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if a.json() {
			return printJSON(out, verdict)
		}

		printHeader(out, "Result: "+cs.ID)
		printUserVerdict(out, verdict)
		printSuggestions(out, cs.Statement, cs.TargetGroup, verdict.MissingConditions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(customCmd)
	customCmd.AddCommand(customAddCmd)
	customCmd.AddCommand(customListCmd)
	customCmd.AddCommand(customEvaluateCmd)

	customAddCmd.Flags().StringVar(&customTarget, "target", "", "target group the statement addresses")
	customAddCmd.Flags().StringVar(&customSource, "source", "", "source type (e.g. Corporate Advertising)")
	_ = customAddCmd.MarkFlagRequired("target")
	_ = customAddCmd.MarkFlagRequired("source")

	customEvaluateCmd.Flags().StringVar(&customAnswers, "answers", "", "non-interactive answers as criterion=status,...")
}
