package agentloop

import "fmt"

// AgentResult is the immutable record of how a run concluded.
//
// Invariant: Err != nil if and only if Reason is [TerminationError], and an
// error result always has an empty Response (a failed run produced no final
// response). Every constructor below maintains this invariant.
//
// AgentResult is a comparable value type: two results built from the same
// constructor with identical arguments compare equal with ==, and results
// can be used as map keys. Err compares by identity.
type AgentResult struct {
	// Response is the final response text. Always empty when Reason is
	// TerminationError; may also be empty if the run ended before the
	// agent produced any response.
	Response string

	// Reason is why the run ended.
	Reason TerminationReason

	// Turns is the number of turns used. Never negative.
	Turns int

	// Err is the unrecoverable fault that ended the run. Non-nil exactly
	// when Reason is TerminationError.
	Err error
}

// NewResult constructs a result for any non-error termination reason.
// It is the generic form behind the named constructors; the executor uses
// it to map a strategy's terminate vote onto a result.
//
// Panics if reason is [TerminationError]: error results carry a cause and
// must be built with [ErrorResult].
func NewResult(reason TerminationReason, response string, turns int) AgentResult {
	if reason == TerminationError {
		panic("agentloop: NewResult called with TerminationError, use ErrorResult")
	}
	return AgentResult{
		Response: response,
		Reason:   reason,
		Turns:    turns,
	}
}

// SuccessResult records a run that ended because the agent signaled
// completion (reason finish_tool_called).
func SuccessResult(response string, turns int) AgentResult {
	return NewResult(TerminationFinishTool, response, turns)
}

// MaxTurnsResult records a run that exhausted its turn budget.
func MaxTurnsResult(response string, turns int) AgentResult {
	return NewResult(TerminationMaxTurns, response, turns)
}

// TimeoutResult records a run that exhausted its wall-clock budget.
func TimeoutResult(response string, turns int) AgentResult {
	return NewResult(TerminationTimeout, response, turns)
}

// AbortedResult records a run that was stopped by an external signal.
func AbortedResult(response string, turns int) AgentResult {
	return NewResult(TerminationExternalSignal, response, turns)
}

// ErrorResult records a run that ended with an unrecoverable fault.
// The response is empty and Err carries the cause.
//
// Panics if err is nil: an error result without a cause would break the
// Err invariant above.
func ErrorResult(err error, turns int) AgentResult {
	if err == nil {
		panic("agentloop: ErrorResult called with nil error, use NewResult")
	}
	return AgentResult{
		Reason: TerminationError,
		Turns:  turns,
		Err:    err,
	}
}

// IsSuccess reports whether the run ended with one of the successful
// reasons (see [TerminationReason.IsSuccess]).
func (r AgentResult) IsSuccess() bool {
	return r.Reason.IsSuccess()
}

// IsError reports whether the run ended with TerminationError.
func (r AgentResult) IsError() bool {
	return r.Reason.IsError()
}

// String returns a short human-readable summary, mainly for logs.
func (r AgentResult) String() string {
	if r.IsError() {
		return fmt.Sprintf("AgentResult{reason=%s, turns=%d, err=%v}", r.Reason, r.Turns, r.Err)
	}
	return fmt.Sprintf("AgentResult{reason=%s, turns=%d}", r.Reason, r.Turns)
}
