package agentloop

import "context"

// Jury is the boundary to the external evaluation backend that judges run
// quality and produces a [Verdict].
//
// How a verdict is computed (the judges, their criteria, the aggregation)
// lives entirely behind this interface; the termination core only consumes
// the resulting pass/score/rationale triple.
type Jury interface {
	// Evaluate judges the current loop state against the working
	// directory and returns a verdict, or nil when no evaluation applies
	// (backend unavailable, nothing to judge yet). A nil verdict is a
	// normal transient condition, not an error.
	//
	// prior is the most recent verdict from an earlier turn, or nil;
	// backends may use it to judge incrementally.
	//
	// Evaluate must return nil, nil rather than an error for "no
	// applicable evaluation". Errors are reserved for genuine faults, and
	// callers treat them as "no verdict this turn".
	Evaluate(ctx context.Context, state *LoopState, prior *Verdict, workDir string) (*Verdict, error)
}

// JuryFunc adapts a plain function to the [Jury] interface.
type JuryFunc func(ctx context.Context, state *LoopState, prior *Verdict, workDir string) (*Verdict, error)

// Evaluate calls f.
func (f JuryFunc) Evaluate(ctx context.Context, state *LoopState, prior *Verdict, workDir string) (*Verdict, error) {
	return f(ctx, state, prior, workDir)
}
