// Package store persists analyses, votes and custom statements.
//
// Every collection is append-only and is read back in full, in append order.
// Malformed persisted data is logged and treated as empty, never returned as an error.
package store

import (
	"context"

	"github.com/ppiankov/greenlie/internal/model"
)

// Store is the persistence collaborator used by the service layer
type Store interface {
	SaveAnalysis(ctx context.Context, a model.StoredAnalysis) error
	ListAnalyses(ctx context.Context) ([]model.StoredAnalysis, error)

	SaveVote(ctx context.Context, v model.Vote) error
	ListVotes(ctx context.Context) ([]model.Vote, error)

	SaveCustomVote(ctx context.Context, v model.Vote) error
	ListCustomVotes(ctx context.Context) ([]model.Vote, error)

	SaveCustomStatement(ctx context.Context, cs model.CustomStatement) error
	GetCustomStatement(ctx context.Context, id string) (model.CustomStatement, bool, error)
	UpdateCustomStatementAnalysis(ctx context.Context, id string, result model.CustomAnalysis) (bool, error)
	ListCustomStatements(ctx context.Context) ([]model.CustomStatement, error)

	Close() error
}

// Collection keys, shared by both backends
const (
	KeyAnalyses         = "green_lie_analyses"
	KeyVotes            = "green_lie_votes"
	KeyCustomVotes      = "green_lie_custom_votes"
	KeyCustomStatements = "green_lie_custom_statements"
)
