package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show aggregate figures over statements, analyses and votes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.service.Insights(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if a.json() {
			return printJSON(out, d)
		}

		printHeader(out, "Insights")
		fmt.Fprintf(out, "  Statements:       %d\n", d.TotalStatements)
		fmt.Fprintf(out, "  Green lies:       %d\n", d.GreenLies)
		fmt.Fprintf(out, "  Partially valid:  %d\n", d.PartiallyValid)
		fmt.Fprintf(out, "  Honest:           %d\n", d.Honest)
		fmt.Fprintf(out, "  Analyses:         %d\n", d.TotalAnalyses)
		fmt.Fprintf(out, "  Votes:            %d\n\n", d.TotalVotes)

		fmt.Fprintln(out, "Most frequently missing conditions:")
		for _, row := range d.RankedConditions {
			fmt.Fprintf(out, "  %-28s %d\n", row.Criterion.Label(), row.Count)
		}

		fmt.Fprintf(out, "\nMissing per analysis: mean %.1f, median %.1f, max %.0f\n\n",
			d.MissingStats.Mean, d.MissingStats.Median, d.MissingStats.Max)

		sources := make([]string, 0, len(d.SourceBreakdown))
		for s := range d.SourceBreakdown {
			sources = append(sources, s)
		}
		sort.Strings(sources)

		fmt.Fprintln(out, "By source type:")
		for _, s := range sources {
			b := d.SourceBreakdown[s]
			fmt.Fprintf(out, "  %-28s %3d total  %3d dishonest  %3d honest\n", s, b.Total, b.Dishonest, b.Honest)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
