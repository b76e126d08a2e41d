package termination

import (
	"context"
	"fmt"
	"time"

	"github.com/markpollack/agentloop"
)

// MaxTurns terminates with max_turns_reached once the current turn index
// reaches the configured budget.
type MaxTurns struct {
	maxTurns int
}

// NewMaxTurns creates a MaxTurns strategy that votes terminate when
// state.Turn() >= n.
func NewMaxTurns(n int) *MaxTurns {
	return &MaxTurns{maxTurns: n}
}

// Check implements [agentloop.TerminationStrategy].
func (s *MaxTurns) Check(
	_ context.Context,
	state *agentloop.LoopState,
	_ *agentloop.Verdict,
) agentloop.TerminationResult {
	if state.Turn() >= s.maxTurns {
		return agentloop.Terminate(
			agentloop.TerminationMaxTurns,
			fmt.Sprintf("turn budget exhausted: %d/%d", state.Turn(), s.maxTurns),
		)
	}
	return agentloop.Continue()
}

// Timeout terminates with timeout once the run's elapsed wall time reaches
// the configured budget. Time is measured by the LoopState's clock, so the
// strategy itself is stateless.
type Timeout struct {
	budget time.Duration
}

// NewTimeout creates a Timeout strategy that votes terminate when
// state.Elapsed() >= budget.
func NewTimeout(budget time.Duration) *Timeout {
	return &Timeout{budget: budget}
}

// Check implements [agentloop.TerminationStrategy].
func (s *Timeout) Check(
	_ context.Context,
	state *agentloop.LoopState,
	_ *agentloop.Verdict,
) agentloop.TerminationResult {
	if elapsed := state.Elapsed(); elapsed >= s.budget {
		return agentloop.Terminate(
			agentloop.TerminationTimeout,
			fmt.Sprintf("time budget exhausted: %s elapsed, budget %s", elapsed, s.budget),
		)
	}
	return agentloop.Continue()
}

// CostLimit terminates with cost_limit_exceeded once the run's accumulated
// spend reaches the configured ceiling.
type CostLimit struct {
	maxCost float64
}

// NewCostLimit creates a CostLimit strategy that votes terminate when
// state.Cost() >= maxCost.
func NewCostLimit(maxCost float64) *CostLimit {
	return &CostLimit{maxCost: maxCost}
}

// Check implements [agentloop.TerminationStrategy].
func (s *CostLimit) Check(
	_ context.Context,
	state *agentloop.LoopState,
	_ *agentloop.Verdict,
) agentloop.TerminationResult {
	if cost := state.Cost(); cost >= s.maxCost {
		return agentloop.Terminate(
			agentloop.TerminationCostLimit,
			fmt.Sprintf("cost budget exhausted: %.4f spent, ceiling %.4f", cost, s.maxCost),
		)
	}
	return agentloop.Continue()
}
