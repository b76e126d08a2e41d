package termination

import (
	"context"
	"errors"
	"fmt"

	"github.com/markpollack/agentloop"
)

// Jury bridges an external evaluation backend into the termination-strategy
// contract.
//
// # Modes
//
// In require-pass mode (the default) the strategy terminates with
// score_threshold_met exactly when the verdict's pass flag is true,
// regardless of the numeric score. In threshold mode (enabled by
// [Jury.WithThreshold]) it terminates when the normalized score reaches the
// configured threshold; the comparison is inclusive (>=).
//
// # Evaluation
//
// When the caller supplies a verdict for the turn, it is used as-is; the
// backend is not asked again, so an expensive external evaluation never
// runs twice for the same turn. When no verdict is supplied, the strategy
// invokes the backend itself. Either way the verdict actually used this
// call (possibly nil) is cached and readable through [Jury.LastVerdict].
//
// A missing verdict, or a backend error, is never a reason to stop: the
// strategy votes continue.
//
// Like every stateful strategy, a Jury instance belongs to a single run.
type Jury struct {
	backend     agentloop.Jury
	workDir     string
	requirePass bool
	threshold   float64
	norm        agentloop.ScoreNormalization

	last *agentloop.Verdict
}

// NewJury creates a Jury strategy in require-pass mode.
//
// Both the evaluation backend and the working directory are required
// collaborators; a missing one is a configuration error reported here, at
// build time, never deferred to evaluation time.
func NewJury(backend agentloop.Jury, workDir string) (*Jury, error) {
	if backend == nil {
		return nil, errors.New("termination: jury evaluation backend is required")
	}
	if workDir == "" {
		return nil, errors.New("termination: jury working directory is required")
	}
	return &Jury{
		backend:     backend,
		workDir:     workDir,
		requirePass: true,
		threshold:   1.0,
	}, nil
}

// WithThreshold switches the strategy to threshold mode: terminate when the
// normalized score is >= threshold, ignoring the verdict's pass flag.
// Returns the strategy for chaining.
func (j *Jury) WithThreshold(threshold float64) *Jury {
	j.requirePass = false
	j.threshold = threshold
	return j
}

// WithNormalization sets how the backend's raw score maps onto [0, 1] for
// threshold comparison. The default (zero) normalization assumes the raw
// score is already in [0, 1]. Returns the strategy for chaining.
func (j *Jury) WithNormalization(norm agentloop.ScoreNormalization) *Jury {
	j.norm = norm
	return j
}

// LastVerdict returns the verdict used by the most recent Check call, or
// nil when the last call had no verdict to work with. It is overwritten on
// every call, so nil deliberately exposes "no verdict yet" as a state.
func (j *Jury) LastVerdict() *agentloop.Verdict {
	return j.last
}

// Check implements [agentloop.TerminationStrategy].
func (j *Jury) Check(
	ctx context.Context,
	state *agentloop.LoopState,
	verdict *agentloop.Verdict,
) agentloop.TerminationResult {
	v := verdict
	if v == nil {
		evaluated, err := j.backend.Evaluate(ctx, state, j.last, j.workDir)
		if err == nil {
			v = evaluated
		}
		// A failed evaluation leaves v nil: no verdict this turn.
	}
	j.last = v

	if v == nil {
		return agentloop.Continue()
	}

	if j.requirePass {
		if !v.Pass {
			return agentloop.Continue()
		}
		return agentloop.Terminate(
			agentloop.TerminationScoreThresholdMet,
			passMessage(v),
		)
	}

	score := j.norm.Normalize(v.Score)
	if score < j.threshold {
		return agentloop.Continue()
	}
	return agentloop.Terminate(
		agentloop.TerminationScoreThresholdMet,
		fmt.Sprintf("jury score %.2f met threshold %.2f: %s", score, j.threshold, v.Rationale),
	)
}

func passMessage(v *agentloop.Verdict) string {
	if v.Rationale == "" {
		return "jury verdict passed"
	}
	return "jury verdict passed: " + v.Rationale
}
