package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markpollack/agentloop"
	"github.com/markpollack/agentloop/internal/tt"
)

// scriptedToolCall is one tool invocation replayed during a scripted turn.
type scriptedToolCall struct {
	name   string
	input  string
	result string
}

// scriptedTurn is one turn of a scripted engine run: the callback events to
// fire, then the output to return. A turn with err set fails immediately,
// firing no events.
type scriptedTurn struct {
	toolCalls []scriptedToolCall
	partials  []string
	finalText string

	output *TurnOutput
	err    error
}

// scriptedEngine replays a fixed sequence of turns, firing callbacks the
// way a real engine would. Past the end of the script it keeps returning
// empty continue turns.
type scriptedEngine struct {
	turns []scriptedTurn
	calls int
}

func (e *scriptedEngine) Turn(
	_ context.Context,
	_ *agentloop.LoopState,
	cb agentloop.AgentCallback,
) (*TurnOutput, error) {
	idx := e.calls
	e.calls++
	if idx >= len(e.turns) {
		return &TurnOutput{}, nil
	}
	turn := e.turns[idx]
	if turn.err != nil {
		return nil, turn.err
	}

	cb.OnThinking()
	for _, call := range turn.toolCalls {
		cb.OnToolCall(call.name, call.input)
		cb.OnToolResult(call.name, call.result)
	}
	for _, chunk := range turn.partials {
		cb.OnResponse(chunk, false)
	}
	if turn.finalText != "" {
		cb.OnResponse(turn.finalText, true)
	}
	return turn.output, nil
}

func continueTurn(response string, cost float64) scriptedTurn {
	return scriptedTurn{output: &TurnOutput{Response: response, CostUSD: cost}}
}

func finishTurn(response string) scriptedTurn {
	return scriptedTurn{output: &TurnOutput{Response: response, Finished: true}}
}

func neverTerminate() agentloop.TerminationStrategy {
	return tt.NewVoteStrategy(agentloop.Continue())
}

func TestNew_RequiredCollaborators(t *testing.T) {
	engine := &scriptedEngine{}

	_, err := New(nil, Config{Strategy: neverTerminate()})
	assert.Error(t, err)

	_, err = New(engine, Config{})
	assert.Error(t, err)

	_, err = New(engine, Config{Strategy: neverTerminate(), Jury: tt.NewStubJury()})
	assert.Error(t, err, "jury without working directory is a configuration error")

	exec, err := New(engine, Config{Strategy: neverTerminate()})
	require.NoError(t, err)
	assert.NotNil(t, exec)
}

func TestRun_FinishToolEndsWithSuccess(t *testing.T) {
	engine := &scriptedEngine{turns: []scriptedTurn{
		continueTurn("working on it", 0.10),
		finishTurn("all done"),
	}}
	exec, err := New(engine, Config{Strategy: neverTerminate()})
	require.NoError(t, err)

	result := exec.Run(context.Background())

	assert.Equal(t, agentloop.SuccessResult("all done", 2), result)
	assert.True(t, result.IsSuccess())
}

func TestRun_StrategyTerminationMapsToResult(t *testing.T) {
	type input struct {
		vote agentloop.TerminationResult
	}

	type expected struct {
		reason agentloop.TerminationReason
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "max turns",
			input:    input{vote: agentloop.Terminate(agentloop.TerminationMaxTurns, "turns")},
			expected: expected{reason: agentloop.TerminationMaxTurns},
		},
		{
			name:     "timeout",
			input:    input{vote: agentloop.Terminate(agentloop.TerminationTimeout, "late")},
			expected: expected{reason: agentloop.TerminationTimeout},
		},
		{
			name:     "score threshold",
			input:    input{vote: agentloop.Terminate(agentloop.TerminationScoreThresholdMet, "passed")},
			expected: expected{reason: agentloop.TerminationScoreThresholdMet},
		},
		{
			name:     "stuck",
			input:    input{vote: agentloop.Terminate(agentloop.TerminationStuck, "looping")},
			expected: expected{reason: agentloop.TerminationStuck},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := &scriptedEngine{turns: []scriptedTurn{
				continueTurn("latest answer", 0),
			}}
			exec, err := New(engine, Config{Strategy: tt.NewVoteStrategy(tc.input.vote)})
			require.NoError(t, err)

			result := exec.Run(context.Background())

			assert.Equal(t, tc.expected.reason, result.Reason)
			assert.Equal(t, "latest answer", result.Response)
			assert.Equal(t, 1, result.Turns)
			assert.NoError(t, result.Err)
		})
	}
}

func TestRun_StrategyErrorVoteBecomesErrorResult(t *testing.T) {
	engine := &scriptedEngine{turns: []scriptedTurn{continueTurn("r", 0)}}
	vote := agentloop.Terminate(agentloop.TerminationError, "unrecoverable drift")
	exec, err := New(engine, Config{Strategy: tt.NewVoteStrategy(vote)})
	require.NoError(t, err)

	result := exec.Run(context.Background())

	assert.True(t, result.IsError())
	assert.Empty(t, result.Response)
	assert.ErrorContains(t, result.Err, "unrecoverable drift")
}

func TestRun_ConsecutiveTurnFaultsBecomeError(t *testing.T) {
	fault := errors.New("model unavailable")
	engine := &scriptedEngine{turns: []scriptedTurn{
		{err: fault},
		{err: fault},
		{err: fault},
	}}
	recorder := tt.NewRecorder()
	exec, err := New(engine, Config{
		Strategy: neverTerminate(),
		Callback: recorder,
	})
	require.NoError(t, err)

	result := exec.Run(context.Background())

	assert.True(t, result.IsError())
	assert.Equal(t, 3, result.Turns)
	assert.ErrorIs(t, result.Err, fault)

	// OnError fired for every fault, and OnComplete still closed the run.
	assert.Equal(t, []string{
		"error:model unavailable",
		"error:model unavailable",
		"error:model unavailable",
		"complete",
	}, recorder.Events)
}

func TestRun_FaultStreakResetsOnGoodTurn(t *testing.T) {
	fault := errors.New("flaky backend")
	engine := &scriptedEngine{turns: []scriptedTurn{
		{err: fault},
		{err: fault},
		continueTurn("recovered", 0),
		{err: fault},
		{err: fault},
		finishTurn("done"),
	}}
	exec, err := New(engine, Config{Strategy: neverTerminate()})
	require.NoError(t, err)

	result := exec.Run(context.Background())

	assert.True(t, result.IsSuccess())
	assert.Equal(t, "done", result.Response)
	assert.Equal(t, 6, result.Turns)
}

func TestRun_CancellationAbortsBetweenTurns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	engine := &scriptedEngine{turns: []scriptedTurn{
		continueTurn("first turn output", 0),
	}}
	// Cancel while the strategy is consulted: the current turn completes,
	// the run stops before the next one.
	strategy := agentloop.StrategyFunc(func(
		_ context.Context,
		_ *agentloop.LoopState,
		_ *agentloop.Verdict,
	) agentloop.TerminationResult {
		cancel()
		return agentloop.Continue()
	})
	exec, err := New(engine, Config{Strategy: strategy})
	require.NoError(t, err)

	result := exec.Run(ctx)

	assert.Equal(t, agentloop.TerminationExternalSignal, result.Reason)
	assert.Equal(t, "first turn output", result.Response)
	assert.Equal(t, 1, result.Turns)
}

func TestRun_EngineSurfacedCancellationIsAbort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancelingEngine := engineFunc(func(
		c context.Context,
		_ *agentloop.LoopState,
		_ agentloop.AgentCallback,
	) (*TurnOutput, error) {
		cancel()
		return nil, c.Err()
	})
	exec, err := New(cancelingEngine, Config{Strategy: neverTerminate()})
	require.NoError(t, err)

	result := exec.Run(ctx)

	assert.Equal(t, agentloop.TerminationExternalSignal, result.Reason)
	assert.False(t, result.IsError())
}

// engineFunc adapts a function to TurnEngine for one-off test engines.
type engineFunc func(ctx context.Context, state *agentloop.LoopState, cb agentloop.AgentCallback) (*TurnOutput, error)

func (f engineFunc) Turn(ctx context.Context, state *agentloop.LoopState, cb agentloop.AgentCallback) (*TurnOutput, error) {
	return f(ctx, state, cb)
}

func TestRun_CallbackOrdering(t *testing.T) {
	engine := &scriptedEngine{turns: []scriptedTurn{
		{
			toolCalls: []scriptedToolCall{
				{name: "Read", input: `{"path":"main.go"}`, result: "package main"},
			},
			partials:  []string{"thinking about"},
			finalText: "here is the file",
			output:    &TurnOutput{Response: "here is the file", Finished: true},
		},
	}}
	recorder := tt.NewRecorder()
	exec, err := New(engine, Config{Strategy: neverTerminate(), Callback: recorder})
	require.NoError(t, err)

	exec.Run(context.Background())

	assert.Equal(t, []string{
		"thinking",
		`tool_call:Read:{"path":"main.go"}`,
		"tool_result:Read:package main",
		"response:partial:thinking about",
		"response:final:here is the file",
		"complete",
	}, recorder.Events)
}

func TestRun_OnCompleteFiresOnceAndLast(t *testing.T) {
	engine := &scriptedEngine{turns: []scriptedTurn{finishTurn("done")}}
	recorder := tt.NewRecorder()
	exec, err := New(engine, Config{Strategy: neverTerminate(), Callback: recorder})
	require.NoError(t, err)

	exec.Run(context.Background())

	count := 0
	for _, e := range recorder.Events {
		if e == "complete" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "complete", recorder.Events[len(recorder.Events)-1])
}

func TestRun_JuryVerdictReachesStrategy(t *testing.T) {
	jury := tt.NewStubJury().
		AddVerdict(&agentloop.Verdict{Pass: false, Score: 0.5}).
		AddVerdict(&agentloop.Verdict{Pass: true, Score: 0.9})

	var seen []*agentloop.Verdict
	strategy := agentloop.StrategyFunc(func(
		_ context.Context,
		_ *agentloop.LoopState,
		verdict *agentloop.Verdict,
	) agentloop.TerminationResult {
		seen = append(seen, verdict)
		if verdict != nil && verdict.Pass {
			return agentloop.Terminate(agentloop.TerminationScoreThresholdMet, "passed")
		}
		return agentloop.Continue()
	})

	engine := &scriptedEngine{turns: []scriptedTurn{
		continueTurn("attempt one", 0),
		continueTurn("attempt two", 0),
	}}
	exec, err := New(engine, Config{
		Strategy: strategy,
		Jury:     jury,
		WorkDir:  "/repo",
	})
	require.NoError(t, err)

	result := exec.Run(context.Background())

	assert.Equal(t, agentloop.TerminationScoreThresholdMet, result.Reason)
	require.Len(t, seen, 2)
	assert.False(t, seen[0].Pass)
	assert.True(t, seen[1].Pass)

	// The jury saw the working directory and the prior verdict.
	assert.Equal(t, []string{"/repo", "/repo"}, jury.CapturedWorkDirs)
	require.Len(t, jury.CapturedPriors, 2)
	assert.Nil(t, jury.CapturedPriors[0])
	require.NotNil(t, jury.CapturedPriors[1])
	assert.InDelta(t, 0.5, jury.CapturedPriors[1].Score, 1e-9)
}

func TestRun_JuryErrorMeansNoVerdict(t *testing.T) {
	jury := tt.NewStubJury().AddError(errors.New("evaluation backend down"))

	var sawVerdict bool
	strategy := agentloop.StrategyFunc(func(
		_ context.Context,
		state *agentloop.LoopState,
		verdict *agentloop.Verdict,
	) agentloop.TerminationResult {
		sawVerdict = verdict != nil
		return agentloop.Terminate(agentloop.TerminationMaxTurns, "stop after one")
	})

	engine := &scriptedEngine{turns: []scriptedTurn{continueTurn("r", 0)}}
	exec, err := New(engine, Config{Strategy: strategy, Jury: jury, WorkDir: "/repo"})
	require.NoError(t, err)

	result := exec.Run(context.Background())

	assert.False(t, sawVerdict)
	assert.Equal(t, agentloop.TerminationMaxTurns, result.Reason)
}

func TestRun_AccumulatesCostIntoState(t *testing.T) {
	engine := &scriptedEngine{turns: []scriptedTurn{
		continueTurn("a", 1.25),
		continueTurn("b", 0.75),
	}}
	exec, err := New(engine, Config{
		Strategy: termStrategyAtCost(2.0),
	})
	require.NoError(t, err)

	result := exec.Run(context.Background())

	assert.Equal(t, agentloop.TerminationCostLimit, result.Reason)
	assert.Equal(t, 2, result.Turns)
	assert.Equal(t, "b", result.Response)
}

func termStrategyAtCost(ceiling float64) agentloop.TerminationStrategy {
	return agentloop.StrategyFunc(func(
		_ context.Context,
		state *agentloop.LoopState,
		_ *agentloop.Verdict,
	) agentloop.TerminationResult {
		if state.Cost() >= ceiling {
			return agentloop.Terminate(agentloop.TerminationCostLimit, "spent")
		}
		return agentloop.Continue()
	})
}
