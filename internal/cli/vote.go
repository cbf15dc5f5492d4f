package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/greenlie/internal/model"
)

// voteReceipt is the --json body of a successful vote. Criterion is unset on
// the custom path.
type voteReceipt struct {
	Recorded    bool            `json:"recorded"`
	StatementID string          `json:"statementId"`
	Criterion   model.Criterion `json:"criterion,omitempty"`
	VoteType    model.VoteType  `json:"voteType"`
}

var voteCmd = &cobra.Command{
	Use:   "vote <statement-id> <criterion> missing|available",
	Short: "Vote on whether a condition holds for a reference statement",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := model.ParseCriterion(args[1])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.service.CastVote(context.Background(), args[0], c, model.VoteType(args[2])); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if a.json() {
			return printJSON(out, voteReceipt{Recorded: true, StatementID: args[0], Criterion: c, VoteType: model.VoteType(args[2])})
		}
		fmt.Fprintf(out, "✓ Recorded %s vote for %s on %s\n", args[2], c.Label(), args[0])
		return nil
	},
}

var voteCustomCmd = &cobra.Command{
	Use:   "custom <custom-id> confirmMissing|confirmAvailable",
	Short: "Confirm or dispute the analysis of a custom statement",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.service.CastCustomVote(context.Background(), args[0], model.VoteType(args[1])); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if a.json() {
			return printJSON(out, voteReceipt{Recorded: true, StatementID: args[0], VoteType: model.VoteType(args[1])})
		}
		fmt.Fprintf(out, "✓ Recorded %s vote on %s\n", args[1], args[0])
		return nil
	},
}

var votesCmd = &cobra.Command{
	Use:   "votes <statement-id>",
	Short: "Show the community vote tally for a statement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		out := cmd.OutOrStdout()
		id := args[0]

		if strings.HasPrefix(id, "custom_") {
			tally, err := a.service.VotesForCustomStatement(ctx, id)
			if err != nil {
				return err
			}
			if a.json() {
				return printJSON(out, tally)
			}
			fmt.Fprintf(out, "  Confirmed missing:   %d\n", tally.ConfirmMissing)
			fmt.Fprintf(out, "  Confirmed available: %d\n", tally.ConfirmAvailable)
			return nil
		}

		tallies, err := a.service.VotesForStatement(ctx, id)
		if err != nil {
			return err
		}
		if a.json() {
			return printJSON(out, tallies)
		}
		fmt.Fprintf(out, "  %-28s %8s %10s\n", "CRITERION", "MISSING", "AVAILABLE")
		for _, c := range model.AllCriteria() {
			t := tallies[c]
			fmt.Fprintf(out, "  %-28s %8d %10d\n", c.Label(), t.Missing, t.Available)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(votesCmd)
	voteCmd.AddCommand(voteCustomCmd)
}
