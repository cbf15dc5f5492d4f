package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ppiankov/greenlie/internal/cache"
	"github.com/ppiankov/greenlie/internal/engine"
	"github.com/ppiankov/greenlie/internal/model"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func validateAnswers(answers map[model.Criterion]model.ConditionStatus) error {
	for c, status := range answers {
		if !status.Valid() {
			return fmt.Errorf("%s has unknown status %q", c, status)
		}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListStatements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"statements": s.engine.ListStatements()})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (model.Statement, bool) {
	id := chi.URLParam(r, "id")
	stmt, ok := s.engine.LookupStatement(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("statement %s not found", id))
	}
	return stmt, ok
}

func (s *Server) handleGetStatement(w http.ResponseWriter, r *http.Request) {
	stmt, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stmt)
}

type evaluateRequest struct {
	Answers map[model.Criterion]model.ConditionStatus `json:"answers"`
}

type evaluateResponse struct {
	model.AnalysisResult
	CorrectCount int `json:"correctCount"`
}

func (s *Server) handleEvaluateStatement(w http.ResponseWriter, r *http.Request) {
	stmt, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req evaluateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateAnswers(req.Answers); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.engine.EvaluateAgainstFacts(stmt, engine.JudgeAll(stmt, req.Answers))
	writeJSON(w, http.StatusOK, evaluateResponse{AnalysisResult: result, CorrectCount: result.CorrectCount()})
}

type feedbackRequest struct {
	Criterion  model.Criterion       `json:"criterion"`
	UserChoice model.ConditionStatus `json:"userChoice"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	stmt, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req feedbackRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Criterion.Valid() {
		writeError(w, http.StatusBadRequest, "criterion is required")
		return
	}
	if !req.UserChoice.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.UserChoice))
		return
	}

	writeJSON(w, http.StatusOK, s.engine.CorrectiveFeedback(stmt, req.Criterion, req.UserChoice))
}

type selectionsRequest struct {
	Selections map[model.Criterion]model.ConditionStatus `json:"selections"`
}

func (s *Server) handleEvaluateSelections(w http.ResponseWriter, r *http.Request) {
	var req selectionsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateAnswers(req.Selections); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.EvaluateFromUserSelections(req.Selections))
}

type dynamicRequest struct {
	Statement   string `json:"statement"`
	TargetGroup string `json:"targetGroup"`
	SourceType  string `json:"sourceType"`
}

func (s *Server) handleEvaluateDynamic(w http.ResponseWriter, r *http.Request) {
	var req dynamicRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Statement = strings.TrimSpace(req.Statement)
	if req.Statement == "" {
		writeError(w, http.StatusBadRequest, "statement is required")
		return
	}
	if strings.TrimSpace(req.TargetGroup) == "" {
		req.TargetGroup = engine.DefaultTargetGroup
	}

	key := cache.CacheKey(req.Statement, req.TargetGroup, req.SourceType)
	if body, ok := s.cache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	result := s.engine.DynamicVerdict(req.Statement, req.TargetGroup, req.SourceType)
	body, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("encode dynamic verdict", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}
	body = append(body, '\n')
	_ = s.cache.Set(key, body, s.cacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type targetGroupResponse struct {
	TargetGroup string              `json:"targetGroup"`
	Known       bool                `json:"known"`
	Controls    []model.Criterion   `json:"controls"`
	Context     engine.PowerContext `json:"context"`
}

func (s *Server) handleTargetGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"targetGroups": engine.TargetGroups()})
}

func (s *Server) handleTargetGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	writeJSON(w, http.StatusOK, targetGroupResponse{
		TargetGroup: group,
		Known:       engine.KnownTargetGroup(group),
		Controls:    s.engine.PowerProfile(group),
		Context:     s.engine.TypicalPowerContext(group),
	})
}

type suggestionsRequest struct {
	Missing     []model.Criterion `json:"missing"`
	Statement   string            `json:"statement"`
	TargetGroup string            `json:"targetGroup"`
}

type suggestionsResponse struct {
	Remediations map[model.Criterion]string `json:"remediations"`
	Makeover     []string                   `json:"makeover"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	group := req.TargetGroup
	if strings.TrimSpace(group) == "" {
		group = engine.DefaultTargetGroup
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{
		Remediations: s.engine.RemediationSuggestions(req.Missing),
		Makeover:     s.engine.HonestMakeoverSuggestions(req.Statement, group, req.Missing),
	})
}
