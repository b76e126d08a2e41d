package agentloop

// TerminationReason identifies why an agent run ended.
//
// The set is closed: every run ends with exactly one of the ten values
// below. Four reasons are successful outcomes, one is a failure, and the
// remaining five mean "stopped, not succeeded, not erred" (a budget ran out
// or the loop was stopped from outside).
type TerminationReason string

const (
	// TerminationFinishTool means the agent explicitly signaled completion
	// by calling its finish tool.
	TerminationFinishTool TerminationReason = "finish_tool_called"

	// TerminationScoreThresholdMet means an external evaluation verdict
	// crossed the configured bar (a passing verdict or a score at or above
	// the threshold).
	TerminationScoreThresholdMet TerminationReason = "score_threshold_met"

	// TerminationUserApproval means a human approved the result
	// interactively.
	TerminationUserApproval TerminationReason = "user_approval"

	// TerminationWorkflowComplete means an enclosing multi-step workflow
	// reported that it is done.
	TerminationWorkflowComplete TerminationReason = "workflow_complete"

	// TerminationMaxTurns means the turn budget was exhausted.
	TerminationMaxTurns TerminationReason = "max_turns_reached"

	// TerminationTimeout means the wall-clock budget was exhausted.
	TerminationTimeout TerminationReason = "timeout"

	// TerminationCostLimit means the spend budget was exhausted.
	TerminationCostLimit TerminationReason = "cost_limit_exceeded"

	// TerminationStuck means the loop was judged to be making no forward
	// progress.
	TerminationStuck TerminationReason = "stuck_detected"

	// TerminationExternalSignal means the run was aborted from outside,
	// e.g. a user cancel.
	TerminationExternalSignal TerminationReason = "external_signal"

	// TerminationError means an unrecoverable fault occurred during
	// execution. This is the only reason paired with a non-nil error in
	// [AgentResult].
	TerminationError TerminationReason = "error"
)

// IsSuccess reports whether the reason is a successful outcome:
// finish_tool_called, score_threshold_met, user_approval, or
// workflow_complete.
func (r TerminationReason) IsSuccess() bool {
	switch r {
	case TerminationFinishTool,
		TerminationScoreThresholdMet,
		TerminationUserApproval,
		TerminationWorkflowComplete:
		return true
	default:
		return false
	}
}

// IsError reports whether the reason is TerminationError.
func (r TerminationReason) IsError() bool {
	return r == TerminationError
}
