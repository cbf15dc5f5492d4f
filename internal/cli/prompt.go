package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/greenlie/internal/model"
	"github.com/ppiankov/greenlie/internal/questionnaire"
)

// runQuestionnaire walks the session on a line-based terminal.
// Answers: 1/y available, 2/p partial, 3/n not available, b goes back.
func runQuestionnaire(in io.Reader, out io.Writer, sess *questionnaire.Session) (map[model.Criterion]model.ConditionStatus, error) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Statement: %q\n", sess.Text())
	fmt.Fprintf(out, "Target group: %s\n\n", sess.TargetGroup())

	for !sess.Done() {
		c := sess.Current()
		fmt.Fprintf(out, "[%d/%d] %s\n", sess.Step()+1, sess.Steps(), c.Label())
		fmt.Fprintf(out, "  %s\n", c.Question())
		fmt.Fprint(out, "  (1) available  (2) partially available  (3) not available  (b) back: ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read answer: %w", err)
			}
			return nil, errors.New("questionnaire aborted: input closed")
		}
		line := strings.TrimSpace(scanner.Text())

		if strings.EqualFold(line, "b") {
			sess.Prev()
			fmt.Fprintln(out)
			continue
		}

		status, err := model.ParseConditionStatus(line)
		if err != nil {
			fmt.Fprintf(out, "  %v\n\n", err)
			continue
		}

		fb, err := sess.Select(status)
		if err != nil {
			return nil, err
		}
		if fb != nil {
			if fb.IsCorrect {
				fmt.Fprintf(out, "  ✓ Correct: %s\n", fb.CorrectStatus.Label())
			} else {
				fmt.Fprintf(out, "  ✗ Not quite, the condition is %s\n", fb.CorrectStatus.Label())
			}
			if fb.Explanation != "" {
				fmt.Fprintf(out, "    %s\n", fb.Explanation)
			}
		}

		if err := sess.Next(); err != nil {
			return nil, err
		}
		fmt.Fprintln(out)
	}

	return sess.Answers(), nil
}
