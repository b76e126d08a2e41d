package agentloop

import "context"

// TerminationResult is a strategy's vote for the current turn: either
// continue (the zero value) or terminate with a reason and message.
//
// Construct results with [Continue] and [Terminate]; a result is never
// both.
type TerminationResult struct {
	// Terminate is true when the strategy votes to stop the loop.
	Terminate bool

	// Reason is set only when Terminate is true.
	Reason TerminationReason

	// Message is a human-readable explanation of the vote, set only when
	// Terminate is true.
	Message string
}

// Continue returns the continue vote.
func Continue() TerminationResult {
	return TerminationResult{}
}

// Terminate returns a terminate vote with the given reason and message.
func Terminate(reason TerminationReason, message string) TerminationResult {
	return TerminationResult{
		Terminate: true,
		Reason:    reason,
		Message:   message,
	}
}

// TerminationStrategy decides, once per turn, whether the loop should stop.
//
// # Contract
//
// The executor calls Check exactly once per turn, after the turn's work and
// any external evaluation have completed. verdict is nil when no evaluation
// ran this turn.
//
// Strategies are advisory, never loop-fatal: Check must not panic for
// well-formed input, and when a strategy cannot evaluate (missing verdict,
// unavailable backend) it votes [Continue] rather than failing the run.
//
// Strategies may keep private state across turns (e.g. the stagnation
// detector's response history). That state is invisible outside the
// instance, and it makes instances single-run: never share a strategy
// across simultaneous runs.
type TerminationStrategy interface {
	// Check returns the strategy's vote for the current turn.
	Check(ctx context.Context, state *LoopState, verdict *Verdict) TerminationResult
}

// StrategyFunc adapts a plain function to the [TerminationStrategy]
// interface, for one-off stateless policies.
type StrategyFunc func(ctx context.Context, state *LoopState, verdict *Verdict) TerminationResult

// Check calls f.
func (f StrategyFunc) Check(ctx context.Context, state *LoopState, verdict *Verdict) TerminationResult {
	return f(ctx, state, verdict)
}
