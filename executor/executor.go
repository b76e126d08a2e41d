// Package executor drives an agent loop until a termination strategy, the
// agent itself, or an external signal ends the run.
package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/markpollack/agentloop"
)

// TurnOutput is what the turn engine reports back after advancing the loop
// by one turn.
type TurnOutput struct {
	// Response is the response text produced this turn ("" when the turn
	// produced none).
	Response string

	// CostUSD is the spend incurred by this turn.
	CostUSD float64

	// Finished is true when the agent explicitly signaled completion
	// (e.g. called its finish tool).
	Finished bool
}

// TurnEngine is the collaborator that actually executes one turn of the
// loop: model invocation, tool dispatch, conversation bookkeeping. All of
// that stays behind this interface; the executor only consumes the turn's
// output and the callback notifications the engine fires (OnThinking,
// OnToolCall/OnToolResult, OnResponse, OnQuestion) while the turn runs.
type TurnEngine interface {
	// Turn advances the loop by one turn. The engine must fire the
	// per-turn callbacks on cb in the documented order and may read, but
	// not mutate, state.
	Turn(ctx context.Context, state *agentloop.LoopState, cb agentloop.AgentCallback) (*TurnOutput, error)
}

// Config holds the executor's collaborators and policies.
type Config struct {
	// Strategy decides when the loop stops. Required.
	Strategy agentloop.TerminationStrategy

	// Callback observes loop progress. Optional; defaults to
	// [agentloop.NoopCallback].
	Callback agentloop.AgentCallback

	// Jury, when set, is invoked once per turn to produce a verdict that
	// is handed to the strategy. Optional.
	Jury agentloop.Jury

	// WorkDir is the working directory handed to the Jury. Required only
	// when Jury is set.
	WorkDir string

	// MaxConsecutiveErrors is how many turn-level faults in a row convert
	// into a terminal error result. Zero means the default of 3.
	MaxConsecutiveErrors int

	// Clock measures elapsed time for the run. Optional; defaults to the
	// system clock.
	Clock agentloop.Clock

	// Logger receives structured run/turn logs. Optional; defaults to a
	// no-op logger.
	Logger zerolog.Logger
}

// defaultMaxConsecutiveErrors bounds how long the executor keeps retrying
// after turn-level faults before giving up with a terminal error.
const defaultMaxConsecutiveErrors = 3

// Executor runs an agent loop to completion.
//
// Turns run strictly sequentially; strategy checks and callback
// notifications are synchronous, blocking calls on the turn-processing
// path. An Executor holds no per-run state and may be reused for
// sequential runs, but the strategy it was configured with may be
// stateful, so concurrent runs each need their own Executor and strategy.
type Executor struct {
	engine    TurnEngine
	strategy  agentloop.TerminationStrategy
	callback  agentloop.AgentCallback
	jury      agentloop.Jury
	workDir   string
	maxErrors int
	clock     agentloop.Clock
	logger    zerolog.Logger
}

// New creates an Executor. The engine and cfg.Strategy are required
// collaborators; a missing one is a configuration error reported here,
// never at run time.
func New(engine TurnEngine, cfg Config) (*Executor, error) {
	if engine == nil {
		return nil, errors.New("executor: turn engine is required")
	}
	if cfg.Strategy == nil {
		return nil, errors.New("executor: termination strategy is required")
	}
	if cfg.Jury != nil && cfg.WorkDir == "" {
		return nil, errors.New("executor: working directory is required when a jury is set")
	}

	cb := cfg.Callback
	if cb == nil {
		cb = agentloop.NoopCallback{}
	}
	maxErrors := cfg.MaxConsecutiveErrors
	if maxErrors <= 0 {
		maxErrors = defaultMaxConsecutiveErrors
	}
	clock := cfg.Clock
	if clock == nil {
		clock = agentloop.NewSystemClock()
	}

	return &Executor{
		engine:    engine,
		strategy:  cfg.Strategy,
		callback:  cb,
		jury:      cfg.Jury,
		workDir:   cfg.WorkDir,
		maxErrors: maxErrors,
		clock:     clock,
		logger:    cfg.Logger,
	}, nil
}

// Run executes the loop until a terminal outcome and returns the result.
//
// Per turn: advance the engine, then (optionally) obtain a verdict from the
// jury, then ask the strategy whether to stop. Cancellation of ctx is a
// termination vote, not an interrupt: an in-flight turn completes, and the
// run ends with reason external_signal before the next turn starts.
//
// OnComplete fires exactly once, after the terminal result is constructed,
// regardless of outcome.
func (e *Executor) Run(ctx context.Context) (result agentloop.AgentResult) {
	runID := uuid.NewString()
	state := agentloop.NewLoopStateWithClock(e.clock)
	log := e.logger.With().Str("run_id", runID).Logger()

	defer func() {
		log.Info().
			Str("reason", string(result.Reason)).
			Int("turns", result.Turns).
			Msg("run finished")
		e.callback.OnComplete()
	}()

	log.Info().Msg("run started")

	var lastVerdict *agentloop.Verdict
	consecutiveErrs := 0
	for {
		if ctx.Err() != nil {
			result = agentloop.AbortedResult(state.LastResponse(), state.Turn())
			return result
		}

		state.AdvanceTurn()
		out, err := e.engine.Turn(ctx, state, e.callback)
		if err != nil {
			if ctx.Err() != nil {
				// The engine surfaced our own cancellation; this is an
				// abort, not a fault.
				result = agentloop.AbortedResult(state.LastResponse(), state.Turn())
				return result
			}
			e.callback.OnError(err)
			consecutiveErrs++
			log.Warn().
				Err(err).
				Int("turn", state.Turn()).
				Int("consecutive", consecutiveErrs).
				Msg("turn failed")
			if consecutiveErrs >= e.maxErrors {
				result = agentloop.ErrorResult(
					fmt.Errorf("turn %d: %d consecutive failures: %w", state.Turn(), consecutiveErrs, err),
					state.Turn(),
				)
				return result
			}
			continue
		}
		consecutiveErrs = 0

		state.AddCost(out.CostUSD)
		if out.Response != "" {
			state.SetLastResponse(out.Response)
		}
		log.Debug().
			Int("turn", state.Turn()).
			Float64("cost", state.Cost()).
			Bool("finished", out.Finished).
			Msg("turn complete")

		if out.Finished {
			result = agentloop.SuccessResult(state.LastResponse(), state.Turn())
			return result
		}

		var verdict *agentloop.Verdict
		if e.jury != nil {
			v, jerr := e.jury.Evaluate(ctx, state, lastVerdict, e.workDir)
			if jerr != nil {
				// No verdict this turn; evaluation faults never stop the run.
				log.Warn().Err(jerr).Int("turn", state.Turn()).Msg("jury evaluation failed")
			} else {
				verdict = v
				if v != nil {
					lastVerdict = v
				}
			}
		}

		vote := e.strategy.Check(ctx, state, verdict)
		if vote.Terminate {
			log.Info().
				Str("reason", string(vote.Reason)).
				Str("message", vote.Message).
				Int("turn", state.Turn()).
				Msg("strategy voted terminate")
			result = resultFor(vote, state)
			return result
		}
	}
}

// resultFor maps a strategy's terminate vote onto the terminal AgentResult.
func resultFor(vote agentloop.TerminationResult, state *agentloop.LoopState) agentloop.AgentResult {
	if vote.Reason == agentloop.TerminationError {
		return agentloop.ErrorResult(errors.New(vote.Message), state.Turn())
	}
	return agentloop.NewResult(vote.Reason, state.LastResponse(), state.Turn())
}
