// Package tt provides shared test doubles for the agentloop packages.
package tt

import (
	"context"
	"fmt"

	"github.com/markpollack/agentloop"
)

// -----------------------------------------------------------------------------
// Recorder - implements agentloop.AgentCallback, recording event order
// -----------------------------------------------------------------------------

// Recorder records every callback invocation as a compact string, in order,
// so tests can assert on the exact event sequence.
//
// Event encodings:
//
//	thinking
//	tool_call:<name>:<input>
//	tool_result:<name>:<result>
//	response:partial:<text> / response:final:<text>
//	question:<text>
//	error:<message>
//	complete
type Recorder struct {
	Events []string

	// Answers is returned from OnQuestion. Nil means no answers.
	Answers map[string]string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnThinking implements agentloop.AgentCallback.
func (r *Recorder) OnThinking() {
	r.Events = append(r.Events, "thinking")
}

// OnToolCall implements agentloop.AgentCallback.
func (r *Recorder) OnToolCall(toolName, toolInput string) {
	r.Events = append(r.Events, "tool_call:"+toolName+":"+toolInput)
}

// OnToolResult implements agentloop.AgentCallback.
func (r *Recorder) OnToolResult(toolName, result string) {
	r.Events = append(r.Events, "tool_result:"+toolName+":"+result)
}

// OnResponse implements agentloop.AgentCallback.
func (r *Recorder) OnResponse(text string, final bool) {
	kind := "partial"
	if final {
		kind = "final"
	}
	r.Events = append(r.Events, "response:"+kind+":"+text)
}

// OnQuestion implements agentloop.AgentCallback.
func (r *Recorder) OnQuestion(questions []agentloop.Question) map[string]string {
	for _, q := range questions {
		r.Events = append(r.Events, "question:"+q.Text)
	}
	if r.Answers == nil {
		return map[string]string{}
	}
	return r.Answers
}

// OnError implements agentloop.AgentCallback.
func (r *Recorder) OnError(err error) {
	r.Events = append(r.Events, "error:"+err.Error())
}

// OnComplete implements agentloop.AgentCallback.
func (r *Recorder) OnComplete() {
	r.Events = append(r.Events, "complete")
}

// -----------------------------------------------------------------------------
// Strategy doubles
// -----------------------------------------------------------------------------

// VoteStrategy always returns the configured vote and counts its calls.
type VoteStrategy struct {
	Vote      agentloop.TerminationResult
	CallCount int
}

// NewVoteStrategy creates a VoteStrategy with the given fixed vote.
func NewVoteStrategy(vote agentloop.TerminationResult) *VoteStrategy {
	return &VoteStrategy{Vote: vote}
}

// Check implements agentloop.TerminationStrategy.
func (s *VoteStrategy) Check(
	_ context.Context,
	_ *agentloop.LoopState,
	_ *agentloop.Verdict,
) agentloop.TerminationResult {
	s.CallCount++
	return s.Vote
}

// TurnCounterStrategy counts its own Check calls in private state and votes
// terminate once the count reaches Threshold. Used to verify combinators do
// not corrupt stateful sub-strategies.
type TurnCounterStrategy struct {
	Threshold int
	Reason    agentloop.TerminationReason

	Count int
}

// Check implements agentloop.TerminationStrategy.
func (s *TurnCounterStrategy) Check(
	_ context.Context,
	_ *agentloop.LoopState,
	_ *agentloop.Verdict,
) agentloop.TerminationResult {
	s.Count++
	if s.Count >= s.Threshold {
		return agentloop.Terminate(s.Reason, fmt.Sprintf("counted %d calls", s.Count))
	}
	return agentloop.Continue()
}

// -----------------------------------------------------------------------------
// StubJury - implements agentloop.Jury with queued verdicts
// -----------------------------------------------------------------------------

// StubJury returns queued verdicts (or errors) in order and records the
// arguments of every Evaluate call.
type StubJury struct {
	verdicts []*agentloop.Verdict
	errs     []error
	calls    int

	// CapturedPriors stores the prior verdict passed to each call.
	CapturedPriors []*agentloop.Verdict

	// CapturedWorkDirs stores the working directory passed to each call.
	CapturedWorkDirs []string
}

// NewStubJury creates an empty StubJury. With no queued verdicts, Evaluate
// returns nil, nil ("no applicable evaluation").
func NewStubJury() *StubJury {
	return &StubJury{}
}

// AddVerdict queues a verdict for the next Evaluate call.
func (j *StubJury) AddVerdict(v *agentloop.Verdict) *StubJury {
	for len(j.errs) < len(j.verdicts) {
		j.errs = append(j.errs, nil)
	}
	j.verdicts = append(j.verdicts, v)
	j.errs = append(j.errs, nil)
	return j
}

// AddError queues an error for the next Evaluate call.
func (j *StubJury) AddError(err error) *StubJury {
	for len(j.errs) < len(j.verdicts) {
		j.errs = append(j.errs, nil)
	}
	j.verdicts = append(j.verdicts, nil)
	j.errs = append(j.errs, err)
	return j
}

// CallCount returns how many times Evaluate has been called.
func (j *StubJury) CallCount() int {
	return j.calls
}

// Evaluate implements agentloop.Jury.
func (j *StubJury) Evaluate(
	_ context.Context,
	_ *agentloop.LoopState,
	prior *agentloop.Verdict,
	workDir string,
) (*agentloop.Verdict, error) {
	idx := j.calls
	j.calls++
	j.CapturedPriors = append(j.CapturedPriors, prior)
	j.CapturedWorkDirs = append(j.CapturedWorkDirs, workDir)

	if idx >= len(j.verdicts) {
		return nil, nil
	}
	return j.verdicts[idx], j.errs[idx]
}

// Compile-time checks.
var (
	_ agentloop.AgentCallback       = (*Recorder)(nil)
	_ agentloop.TerminationStrategy = (*VoteStrategy)(nil)
	_ agentloop.TerminationStrategy = (*TurnCounterStrategy)(nil)
	_ agentloop.Jury                = (*StubJury)(nil)
)
