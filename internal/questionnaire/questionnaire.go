// Package questionnaire drives the step-by-step criterion questionnaire.
package questionnaire

import (
	"errors"

	"github.com/ppiankov/greenlie/internal/engine"
	"github.com/ppiankov/greenlie/internal/model"
)

// ErrNoSelection is returned by Next while the current step is unanswered
var ErrNoSelection = errors.New("select an answer before continuing")

// ErrComplete is returned when stepping past the end of a finished session
var ErrComplete = errors.New("questionnaire already complete")

// Mode tells whether answers are judged against curated facts
type Mode int

const (
	// ModeFact judges each answer against a curated statement
	ModeFact Mode = iota
	// ModeCustom collects the user's own judgements
	ModeCustom
)

// Session is one pass through the five criteria
type Session struct {
	mode      Mode
	statement model.Statement
	custom    model.CustomStatement
	steps     []model.Criterion
	step      int
	answers   map[model.Criterion]model.ConditionStatus
	done      bool
}

func newSession(mode Mode) *Session {
	return &Session{
		mode:    mode,
		steps:   model.AllCriteria(),
		answers: make(map[model.Criterion]model.ConditionStatus, model.CriteriaCount),
	}
}

// NewFactSession starts a questionnaire for a curated statement
func NewFactSession(stmt model.Statement) *Session {
	s := newSession(ModeFact)
	s.statement = stmt
	return s
}

// NewCustomSession starts a questionnaire for a custom statement
func NewCustomSession(cs model.CustomStatement) *Session {
	s := newSession(ModeCustom)
	s.custom = cs
	return s
}

// Mode returns the session mode
func (s *Session) Mode() Mode {
	return s.mode
}

// Text returns the statement under evaluation
func (s *Session) Text() string {
	if s.mode == ModeFact {
		return s.statement.Statement
	}
	return s.custom.Statement
}

// TargetGroup returns the group the statement addresses
func (s *Session) TargetGroup() string {
	if s.mode == ModeFact {
		return s.statement.TargetGroup
	}
	return s.custom.TargetGroup
}

// Step returns the zero-based index of the current step
func (s *Session) Step() int {
	return s.step
}

// Steps returns the number of steps
func (s *Session) Steps() int {
	return len(s.steps)
}

// Current returns the criterion being asked
func (s *Session) Current() model.Criterion {
	return s.steps[s.step]
}

// Selected returns the answer recorded for the current step, if any
func (s *Session) Selected() (model.ConditionStatus, bool) {
	v, ok := s.answers[s.Current()]
	return v, ok
}

// Select records the answer for the current step. In fact mode it returns
// the corrective feedback for the answer; in custom mode the feedback is nil.
func (s *Session) Select(status model.ConditionStatus) (*engine.Feedback, error) {
	if !status.Valid() {
		return nil, errors.New("unknown status " + string(status))
	}
	c := s.Current()
	s.answers[c] = status

	if s.mode != ModeFact {
		return nil, nil
	}
	fb := engine.CorrectiveFeedback(s.statement, c, status)
	return &fb, nil
}

// Next advances to the following step. On the last step it marks the session done.
func (s *Session) Next() error {
	if s.done {
		return ErrComplete
	}
	if _, ok := s.answers[s.Current()]; !ok {
		return ErrNoSelection
	}
	if s.step == len(s.steps)-1 {
		s.done = true
		return nil
	}
	s.step++
	return nil
}

// Prev goes back one step. It is a no-op on the first step.
func (s *Session) Prev() {
	if s.done {
		s.done = false
		return
	}
	if s.step > 0 {
		s.step--
	}
}

// Progress returns the completion percentage
func (s *Session) Progress() int {
	if s.done {
		return 100
	}
	return s.step * 100 / len(s.steps)
}

// Done reports whether every step has been confirmed
func (s *Session) Done() bool {
	return s.done
}

// Answers returns the collected answers with unanswered criteria filled as not_available
func (s *Session) Answers() map[model.Criterion]model.ConditionStatus {
	out := make(map[model.Criterion]model.ConditionStatus, model.CriteriaCount)
	for _, c := range s.steps {
		if v, ok := s.answers[c]; ok {
			out[c] = v
		} else {
			out[c] = model.StatusNotAvailable
		}
	}
	return out
}
