// Package service holds the evaluation workflows around the engine: custom
// statement submission, questionnaire completion, votes and insights.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/greenlie/internal/engine"
	"github.com/ppiankov/greenlie/internal/insights"
	"github.com/ppiankov/greenlie/internal/model"
	"github.com/ppiankov/greenlie/internal/store"
)

var (
	// ErrNotFound marks an unknown statement or custom statement id
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks rejected user input
	ErrInvalidInput = errors.New("invalid input")
)

// Service coordinates the engine with the persistence collaborator
type Service struct {
	engine *engine.Engine
	store  store.Store
	clock  func() time.Time
	logger *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a service
func New(eng *engine.Engine, st store.Store, opts ...Option) *Service {
	s := &Service{
		engine: eng,
		store:  st,
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the underlying engine
func (s *Service) Engine() *engine.Engine {
	return s.engine
}

func (s *Service) nowMillis() int64 {
	return s.clock().UnixMilli()
}

func newCustomID(ms int64) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("custom_%d_%s", ms, suffix)
}

func newAnalysisID() string {
	return "analysis_" + uuid.NewString()
}

// SubmitCustomStatement validates and stores a new custom statement
func (s *Service) SubmitCustomStatement(ctx context.Context, input model.CustomStatementInput) (string, error) {
	text := strings.TrimSpace(input.Statement)
	source := strings.TrimSpace(input.SourceType)
	target := strings.TrimSpace(input.TargetGroup)

	if len([]rune(text)) < model.MinStatementLength {
		return "", fmt.Errorf("%w: statement must be at least %d characters", ErrInvalidInput, model.MinStatementLength)
	}
	if source == "" {
		return "", fmt.Errorf("%w: source type is required", ErrInvalidInput)
	}
	if target == "" {
		return "", fmt.Errorf("%w: target group is required", ErrInvalidInput)
	}

	now := s.nowMillis()
	cs := model.CustomStatement{
		ID:          newCustomID(now),
		Statement:   text,
		SourceType:  source,
		TargetGroup: target,
		Timestamp:   now,
	}
	if err := s.store.SaveCustomStatement(ctx, cs); err != nil {
		return "", fmt.Errorf("failed to save custom statement: %w", err)
	}

	s.logger.Info("custom statement submitted", "id", cs.ID, "target_group", target, "source_type", source)
	return cs.ID, nil
}

func (s *Service) statement(id string) (model.Statement, error) {
	stmt, ok := s.engine.LookupStatement(id)
	if !ok {
		return model.Statement{}, fmt.Errorf("%w: statement %s", ErrNotFound, id)
	}
	return stmt, nil
}

// Statement returns a curated statement
func (s *Service) Statement(id string) (model.Statement, error) {
	return s.statement(id)
}

// Statements lists the curated statements
func (s *Service) Statements() []model.Statement {
	return s.engine.ListStatements()
}

// Feedback returns the corrective feedback for one questionnaire step
func (s *Service) Feedback(statementID string, c model.Criterion, choice model.ConditionStatus) (engine.Feedback, error) {
	stmt, err := s.statement(statementID)
	if err != nil {
		return engine.Feedback{}, err
	}
	if !c.Valid() {
		return engine.Feedback{}, fmt.Errorf("%w: unknown criterion", ErrInvalidInput)
	}
	if !choice.Valid() {
		return engine.Feedback{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, choice)
	}
	return s.engine.CorrectiveFeedback(stmt, c, choice), nil
}

func validateAnswers(answers map[model.Criterion]model.ConditionStatus) error {
	for c, status := range answers {
		if !c.Valid() {
			return fmt.Errorf("%w: unknown criterion", ErrInvalidInput)
		}
		if !status.Valid() {
			return fmt.Errorf("%w: %s has unknown status %q", ErrInvalidInput, c, status)
		}
	}
	return nil
}

// CompleteFactAnalysis judges the answers against the curated facts, computes
// the fact-based verdict and records the analysis
func (s *Service) CompleteFactAnalysis(ctx context.Context, statementID string, answers map[model.Criterion]model.ConditionStatus) (model.AnalysisResult, error) {
	stmt, err := s.statement(statementID)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	if err := validateAnswers(answers); err != nil {
		return model.AnalysisResult{}, err
	}

	result := s.engine.EvaluateAgainstFacts(stmt, engine.JudgeAll(stmt, answers))

	record := model.StoredAnalysis{
		ID:                newAnalysisID(),
		StatementID:       stmt.ID,
		Statement:         stmt.Statement,
		TargetGroup:       stmt.TargetGroup,
		SourceType:        stmt.SourceType,
		UserSelections:    result.UserSelections,
		MissingConditions: result.MissingConditions,
		Verdict:           result.Verdict,
		Timestamp:         s.nowMillis(),
	}
	if err := s.store.SaveAnalysis(ctx, record); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to save analysis: %w", err)
	}

	s.logger.Info("fact analysis completed",
		"statement_id", stmt.ID,
		"verdict", result.Verdict,
		"missing", len(result.MissingConditions),
		"correct", result.CorrectCount())
	return result, nil
}

// CompleteCustomAnalysis scores the user's own judgements for a custom
// statement, attaches the result and records the analysis
func (s *Service) CompleteCustomAnalysis(ctx context.Context, customID string, answers map[model.Criterion]model.ConditionStatus) (engine.UserVerdict, error) {
	cs, err := s.CustomStatement(ctx, customID)
	if err != nil {
		return engine.UserVerdict{}, err
	}
	if err := validateAnswers(answers); err != nil {
		return engine.UserVerdict{}, err
	}

	filled := make(map[model.Criterion]model.ConditionStatus, model.CriteriaCount)
	selections := make([]model.UserSelection, 0, model.CriteriaCount)
	for _, c := range model.AllCriteria() {
		choice, ok := answers[c]
		if !ok {
			choice = model.StatusNotAvailable
		}
		filled[c] = choice
		// the user's judgement is the ground truth for their own statement
		selections = append(selections, model.UserSelection{Criterion: c, UserChoice: choice, IsCorrect: true})
	}

	verdict := s.engine.EvaluateFromUserSelections(filled)

	ok, err := s.store.UpdateCustomStatementAnalysis(ctx, cs.ID, model.CustomAnalysis{
		MissingConditions: verdict.MissingConditions,
		Verdict:           verdict.Verdict,
	})
	if err != nil {
		return engine.UserVerdict{}, fmt.Errorf("failed to update custom statement: %w", err)
	}
	if !ok {
		return engine.UserVerdict{}, fmt.Errorf("%w: custom statement %s", ErrNotFound, cs.ID)
	}

	record := model.StoredAnalysis{
		ID:                newAnalysisID(),
		StatementID:       cs.ID,
		Statement:         cs.Statement,
		TargetGroup:       cs.TargetGroup,
		SourceType:        cs.SourceType,
		UserSelections:    selections,
		MissingConditions: verdict.MissingConditions,
		Verdict:           verdict.Verdict,
		Timestamp:         s.nowMillis(),
	}
	if err := s.store.SaveAnalysis(ctx, record); err != nil {
		return engine.UserVerdict{}, fmt.Errorf("failed to save analysis: %w", err)
	}

	s.logger.Info("custom analysis completed",
		"custom_id", cs.ID,
		"verdict", verdict.Verdict,
		"honesty_score", verdict.Statistics.HonestyScore)
	return verdict, nil
}

// DynamicVerdict evaluates free text heuristically
func (s *Service) DynamicVerdict(text, group, sourceType string) engine.DynamicResult {
	return s.engine.DynamicVerdict(text, group, sourceType)
}

// CustomStatement returns a stored custom statement
func (s *Service) CustomStatement(ctx context.Context, id string) (model.CustomStatement, error) {
	cs, found, err := s.store.GetCustomStatement(ctx, id)
	if err != nil {
		return model.CustomStatement{}, fmt.Errorf("failed to load custom statement: %w", err)
	}
	if !found {
		return model.CustomStatement{}, fmt.Errorf("%w: custom statement %s", ErrNotFound, id)
	}
	return cs, nil
}

// CustomStatements lists every custom statement in submission order
func (s *Service) CustomStatements(ctx context.Context) ([]model.CustomStatement, error) {
	return s.store.ListCustomStatements(ctx)
}

// AnalyzedCustomStatements lists the custom statements with a completed analysis
func (s *Service) AnalyzedCustomStatements(ctx context.Context) ([]insights.AnalyzedStatement, error) {
	customs, err := s.store.ListCustomStatements(ctx)
	if err != nil {
		return nil, err
	}
	return insights.AnalyzedStatements(customs), nil
}

// Analyses returns the analysis log
func (s *Service) Analyses(ctx context.Context) ([]model.StoredAnalysis, error) {
	return s.store.ListAnalyses(ctx)
}

// Insights builds the dashboard from the catalog and everything stored
func (s *Service) Insights(ctx context.Context) (insights.Dashboard, error) {
	analyses, err := s.store.ListAnalyses(ctx)
	if err != nil {
		return insights.Dashboard{}, fmt.Errorf("failed to list analyses: %w", err)
	}
	analyzed, err := s.AnalyzedCustomStatements(ctx)
	if err != nil {
		return insights.Dashboard{}, fmt.Errorf("failed to list custom statements: %w", err)
	}
	votes, err := s.store.ListVotes(ctx)
	if err != nil {
		return insights.Dashboard{}, fmt.Errorf("failed to list votes: %w", err)
	}

	d := insights.BuildDashboard(s.engine.ListStatements(), analyzed, analyses)
	d.TotalVotes = len(votes)
	return d, nil
}
