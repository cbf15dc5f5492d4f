package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/greenlie/internal/model"
	"github.com/ppiankov/greenlie/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

type batchSummary struct {
	Line              int      `json:"line"`
	TargetGroup       string   `json:"targetGroup"`
	SourceType        string   `json:"sourceType"`
	Statement         string   `json:"statement"`
	Verdict           string   `json:"verdict,omitempty"`
	MissingConditions []string `json:"missingConditions,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Evaluate many statements from a file in parallel",
	Long: `Batch runs the dynamic evaluation over a file of statements:
one statement per line as "target group | source type | statement".
Blank lines, lines starting with # and repeated lines are skipped.

Example:
  greenlie batch statements.txt
  greenlie batch statements.txt --concurrency 8 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from concurrency.workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	workers := concurrency
	if workers <= 0 {
		workers = cfg.Concurrency.Workers
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", rule)
	fmt.Fprintf(os.Stderr, "  greenlie Batch Evaluation\n")
	fmt.Fprintf(os.Stderr, "%s\n", rule)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	evaluator := worker.NewBatchEvaluator(eng, workers)
	results, err := evaluator.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	out := cmd.OutOrStdout()
	summaries := make([]batchSummary, 0, len(results))
	counts := map[model.Verdict]int{}
	failureCount := 0

	for _, result := range results {
		s := batchSummary{
			Line:        result.Line.LineNo,
			TargetGroup: result.Line.TargetGroup,
			SourceType:  result.Line.SourceType,
			Statement:   result.Line.Text,
		}
		if result.Error != nil {
			failureCount++
			s.Error = result.Error.Error()
			summaries = append(summaries, s)
			if cfg.Output.Format != "json" {
				fmt.Fprintf(os.Stderr, "✗ line %d: %v\n", result.Line.LineNo, result.Error)
			}
			continue
		}

		v := result.Verdict
		s.Verdict = v.Verdict.String()
		for _, c := range v.MissingConditions {
			s.MissingConditions = append(s.MissingConditions, c.String())
		}
		summaries = append(summaries, s)
		counts[v.Verdict]++

		if cfg.Output.Format != "json" {
			fmt.Fprintf(out, "%s line %d [%s] %s: %s\n", verdictMark(v.Verdict), result.Line.LineNo,
				result.Line.TargetGroup, v.Verdict.Label(), truncate(result.Line.Text, 60))
		}
	}

	if cfg.Output.Format == "json" {
		return printJSON(out, summaries)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", rule)
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "%s\n", rule)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d statements\n", len(results))
	for _, v := range []model.Verdict{model.VerdictDishonest, model.VerdictPartiallyValid, model.VerdictHonest} {
		fmt.Fprintf(os.Stderr, "  %-20s %d\n", v.Label()+":", counts[v])
	}
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "\n")

	if ctx.Err() != nil {
		return fmt.Errorf("batch stopped early: %w", ctx.Err())
	}
	return nil
}
