package termination

import (
	"context"

	"github.com/markpollack/agentloop"
)

// All is the conjunction of an ordered list of strategies: it terminates
// only when every sub-strategy independently votes terminate on the same
// turn. Use it for "all conditions simultaneously satisfied" loop-ending,
// not for sequential escalation.
//
// Every sub-strategy is evaluated on every call, in declared order, even
// after one of them has voted continue. Stateful strategies (e.g. the
// stagnation detector) therefore observe every turn regardless of how the
// other members vote.
//
// When all members agree, the reason and message of the overall result come
// from the first terminating vote in declared order.
type All struct {
	strategies []agentloop.TerminationStrategy
}

// AllOf composes strategies into an [All]. An empty AllOf never terminates.
func AllOf(strategies ...agentloop.TerminationStrategy) *All {
	return &All{strategies: strategies}
}

// Check implements [agentloop.TerminationStrategy].
func (a *All) Check(
	ctx context.Context,
	state *agentloop.LoopState,
	verdict *agentloop.Verdict,
) agentloop.TerminationResult {
	if len(a.strategies) == 0 {
		return agentloop.Continue()
	}

	var first agentloop.TerminationResult
	agreed := true
	for _, s := range a.strategies {
		res := s.Check(ctx, state, verdict)
		if !res.Terminate {
			agreed = false
			continue
		}
		if !first.Terminate {
			first = res
		}
	}
	if !agreed {
		return agentloop.Continue()
	}
	return first
}

// Any is the disjunction of an ordered list of strategies: the first
// terminating vote, in declared order, wins.
//
// Any short-circuits: once a member votes terminate, the remaining members
// are not evaluated that turn. Stateful members placed after an earlier
// terminating member will miss that turn, so order matters; document the
// ordering at the call site when composing stateful strategies.
type Any struct {
	strategies []agentloop.TerminationStrategy
}

// AnyOf composes strategies into an [Any]. An empty AnyOf never terminates.
func AnyOf(strategies ...agentloop.TerminationStrategy) *Any {
	return &Any{strategies: strategies}
}

// Check implements [agentloop.TerminationStrategy].
func (a *Any) Check(
	ctx context.Context,
	state *agentloop.LoopState,
	verdict *agentloop.Verdict,
) agentloop.TerminationResult {
	for _, s := range a.strategies {
		if res := s.Check(ctx, state, verdict); res.Terminate {
			return res
		}
	}
	return agentloop.Continue()
}
