package service

import (
	"context"
	"fmt"

	"github.com/ppiankov/greenlie/internal/model"
)

// VoteTally counts fact-based votes for one criterion
type VoteTally struct {
	Missing   int `json:"missing"`
	Available int `json:"available"`
}

// CustomVoteTally counts votes on a custom statement's verdict
type CustomVoteTally struct {
	ConfirmMissing   int `json:"confirmMissing"`
	ConfirmAvailable int `json:"confirmAvailable"`
}

// CastVote records a per-criterion vote on a curated statement. Votes are
// not deduplicated.
func (s *Service) CastVote(ctx context.Context, statementID string, c model.Criterion, voteType model.VoteType) error {
	if _, err := s.statement(statementID); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("%w: unknown criterion", ErrInvalidInput)
	}
	if voteType != model.VoteMissing && voteType != model.VoteAvailable {
		return fmt.Errorf("%w: vote type %q is not valid for statements", ErrInvalidInput, voteType)
	}

	vote := model.Vote{StatementID: statementID, Criterion: c, VoteType: voteType, Timestamp: s.nowMillis()}
	if err := s.store.SaveVote(ctx, vote); err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	s.logger.Debug("vote cast", "statement_id", statementID, "criterion", c, "vote", voteType)
	return nil
}

// CastCustomVote records a confirmation vote on a custom statement
func (s *Service) CastCustomVote(ctx context.Context, customID string, voteType model.VoteType) error {
	if _, err := s.CustomStatement(ctx, customID); err != nil {
		return err
	}
	if !voteType.ForCustom() {
		return fmt.Errorf("%w: vote type %q is not valid for custom statements", ErrInvalidInput, voteType)
	}

	vote := model.Vote{StatementID: customID, VoteType: voteType, Timestamp: s.nowMillis()}
	if err := s.store.SaveCustomVote(ctx, vote); err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	s.logger.Debug("custom vote cast", "custom_id", customID, "vote", voteType)
	return nil
}

// VotesForStatement tallies votes per criterion; every criterion is present
func (s *Service) VotesForStatement(ctx context.Context, statementID string) (map[model.Criterion]VoteTally, error) {
	votes, err := s.store.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	out := make(map[model.Criterion]VoteTally, model.CriteriaCount)
	for _, c := range model.AllCriteria() {
		out[c] = VoteTally{}
	}
	for _, v := range votes {
		if v.StatementID != statementID || !v.Criterion.Valid() {
			continue
		}
		tally := out[v.Criterion]
		switch v.VoteType {
		case model.VoteMissing:
			tally.Missing++
		case model.VoteAvailable:
			tally.Available++
		}
		out[v.Criterion] = tally
	}
	return out, nil
}

// VotesForCustomStatement tallies confirmation votes for a custom statement
func (s *Service) VotesForCustomStatement(ctx context.Context, customID string) (CustomVoteTally, error) {
	votes, err := s.store.ListCustomVotes(ctx)
	if err != nil {
		return CustomVoteTally{}, fmt.Errorf("failed to list votes: %w", err)
	}

	var tally CustomVoteTally
	for _, v := range votes {
		if v.StatementID != customID {
			continue
		}
		switch v.VoteType {
		case model.VoteConfirmMissing:
			tally.ConfirmMissing++
		case model.VoteConfirmAvailable:
			tally.ConfirmAvailable++
		}
	}
	return tally, nil
}
