package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/greenlie/internal/engine"
)

// Evaluator produces a dynamic verdict for free text
type Evaluator interface {
	DynamicVerdict(text, group, sourceType string) engine.DynamicResult
}

// BatchLine is one parsed input line: target group | source type | statement text
type BatchLine struct {
	LineNo      int    `json:"line"`
	Raw         string `json:"raw"`
	TargetGroup string `json:"targetGroup"`
	SourceType  string `json:"sourceType"`
	Text        string `json:"statement"`
	ParseError  error  `json:"-"`
}

// ParseBatchLine splits a line into its three fields
func ParseBatchLine(lineNo int, raw string) BatchLine {
	bl := BatchLine{LineNo: lineNo, Raw: raw}
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) != 3 {
		bl.ParseError = fmt.Errorf("line %d: want \"target group | source type | statement\", got %d field(s)", lineNo, len(parts))
		return bl
	}
	bl.TargetGroup = strings.TrimSpace(parts[0])
	bl.SourceType = strings.TrimSpace(parts[1])
	bl.Text = strings.TrimSpace(parts[2])

	switch {
	case bl.TargetGroup == "":
		bl.ParseError = fmt.Errorf("line %d: empty target group", lineNo)
	case bl.SourceType == "":
		bl.ParseError = fmt.Errorf("line %d: empty source type", lineNo)
	case bl.Text == "":
		bl.ParseError = fmt.Errorf("line %d: empty statement", lineNo)
	}
	return bl
}

// EvalJob evaluates one batch line
type EvalJob struct {
	Line      BatchLine
	Evaluator Evaluator
}

// Execute executes the evaluation
func (j *EvalJob) Execute(ctx context.Context) Result {
	if j.Line.ParseError != nil {
		return &EvalResult{Line: j.Line, Error: j.Line.ParseError}
	}
	if err := ctx.Err(); err != nil {
		return &EvalResult{Line: j.Line, Error: err}
	}
	r := j.Evaluator.DynamicVerdict(j.Line.Text, j.Line.TargetGroup, j.Line.SourceType)
	return &EvalResult{Line: j.Line, Verdict: &r}
}

// EvalResult is the outcome for one line
type EvalResult struct {
	Line    BatchLine
	Verdict *engine.DynamicResult
	Error   error
}

// GetError returns the error from the evaluation
func (r *EvalResult) GetError() error {
	return r.Error
}

// BatchEvaluator evaluates many statements concurrently
type BatchEvaluator struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchEvaluator creates a new batch evaluator
func NewBatchEvaluator(evaluator Evaluator, concurrency int) *BatchEvaluator {
	return &BatchEvaluator{
		evaluator:   evaluator,
		concurrency: concurrency,
	}
}

// ProcessLines evaluates the lines concurrently; results follow input order
func (b *BatchEvaluator) ProcessLines(ctx context.Context, lines []BatchLine) []*EvalResult {
	if len(lines) == 0 {
		return []*EvalResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, line := range lines {
		if !pool.Submit(&EvalJob{Line: line, Evaluator: b.evaluator}) {
			break
		}
	}

	results := pool.Wait()

	out := make([]*EvalResult, len(results))
	for i, result := range results {
		out[i] = result.(*EvalResult)
	}
	return out
}

// ProcessFile reads statements from a file and evaluates them concurrently
func (b *BatchEvaluator) ProcessFile(ctx context.Context, filePath string) ([]*EvalResult, error) {
	lines, err := ReadBatchFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return b.ProcessLines(ctx, lines), nil
}

// ReadBatchFile reads one statement per line, skipping blanks, comments and
// repeated lines
func ReadBatchFile(filePath string) ([]BatchLine, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []BatchLine
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, ParseBatchLine(lineNo, line))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}
