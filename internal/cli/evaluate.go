package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/greenlie/internal/model"
	"github.com/ppiankov/greenlie/internal/questionnaire"
)

var evaluateAnswers string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <statement-id>",
	Short: "Evaluate a reference statement and record the analysis",
	Long: `Evaluate walks the five criteria for a reference statement, shows
corrective feedback for each answer and records the analysis.

The verdict comes from the curated assessment; your answers are scored for
feedback only.

Example:
  greenlie evaluate stmt_001
  greenlie evaluate stmt_001 --answers decision_authority=no,affordability=partial`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evaluateAnswers, "answers", "", "non-interactive answers as criterion=status,...")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stmt, err := a.service.Statement(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var answers map[model.Criterion]model.ConditionStatus
	if cmd.Flags().Changed("answers") {
		answers, err = parseAnswers(evaluateAnswers)
		if err != nil {
			return err
		}
	} else {
		answers, err = runQuestionnaire(cmd.InOrStdin(), cmd.ErrOrStderr(), questionnaire.NewFactSession(stmt))
		if err != nil {
			return err
		}
	}

	result, err := a.service.CompleteFactAnalysis(context.Background(), stmt.ID, answers)
	if err != nil {
		return err
	}

	if a.json() {
		return printJSON(out, result)
	}

	printHeader(out, "Result: "+stmt.ID)
	fmt.Fprintf(out, "%s %s\n\n", verdictMark(result.Verdict), result.Verdict.Label())
	fmt.Fprintf(out, "  Missing conditions: %s\n", criteriaLabels(result.MissingConditions))
	fmt.Fprintf(out, "  Your answers:       %d/%d matched the curated assessment\n\n", result.CorrectCount(), len(result.UserSelections))
	if stmt.Reasoning != "" {
		fmt.Fprintln(out, stmt.Reasoning)
	}
	printSuggestions(out, stmt.Statement, stmt.TargetGroup, result.MissingConditions)
	return nil
}
