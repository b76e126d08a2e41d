package termination

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/markpollack/agentloop"
)

// Stagnation terminates with stuck_detected when the agent's responses stop
// changing across turns.
//
// Each turn the strategy compares the current last-response text with the
// one it saw on the previous turn. When the similarity ratio stays at or
// above the configured threshold for `window` consecutive turns, the loop
// is judged non-progressing.
//
// The response history is strategy-private state: a Stagnation instance
// belongs to one run and assumes Check is called once per turn. Composing
// it inside [AnyOf] after a member that may short-circuit makes it skip
// turns; place it early in the list if every turn must be observed.
type Stagnation struct {
	window     int
	similarity float64

	prev  string
	seen  bool
	count int
}

// NewStagnation creates a Stagnation strategy. window is the number of
// consecutive near-identical responses required to stop (values below 1 are
// treated as 1); similarity is the ratio in [0, 1] at or above which two
// responses count as "the same".
func NewStagnation(window int, similarity float64) *Stagnation {
	if window < 1 {
		window = 1
	}
	return &Stagnation{window: window, similarity: similarity}
}

// Check implements [agentloop.TerminationStrategy].
func (s *Stagnation) Check(
	_ context.Context,
	state *agentloop.LoopState,
	_ *agentloop.Verdict,
) agentloop.TerminationResult {
	resp := state.LastResponse()
	if resp == "" {
		// Nothing to compare yet; missing data is never a reason to stop.
		return agentloop.Continue()
	}

	if !s.seen {
		s.prev = resp
		s.seen = true
		return agentloop.Continue()
	}

	ratio := similarityRatio(s.prev, resp)
	s.prev = resp
	if ratio >= s.similarity {
		s.count++
	} else {
		s.count = 0
	}

	if s.count >= s.window {
		return agentloop.Terminate(
			agentloop.TerminationStuck,
			fmt.Sprintf(
				"no progress detected: %d consecutive responses with similarity >= %.2f",
				s.count, s.similarity,
			),
		)
	}
	return agentloop.Continue()
}

// similarityRatio returns the difflib sequence-match ratio between two
// texts, compared line by line.
func similarityRatio(a, b string) float64 {
	m := difflib.NewMatcher(
		difflib.SplitLines(a),
		difflib.SplitLines(b),
	)
	return m.Ratio()
}
