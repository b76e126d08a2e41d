// Package agentloop provides the termination-decision core for iterative
// "think, act, observe" agent loops.
//
// The package answers one question, turn by turn: should the loop keep
// running, and if not, why did it stop? It does so with three cooperating
// pieces:
//
//   - [TerminationStrategy]: a composable decision unit that inspects the
//     current [LoopState] (and an optional externally computed [Verdict])
//     and votes continue-or-terminate. Strategies combine through
//     termination.AllOf and termination.AnyOf.
//   - [AgentResult]: the immutable record of how a run ended, tagged with a
//     [TerminationReason] from a closed set of ten outcomes.
//   - [AgentCallback]: a synchronous event stream fired as the loop
//     progresses (thinking, tool calls, partial and final responses,
//     interactive questions, errors, completion).
//
// How a turn is actually executed, and how a quality verdict is computed,
// are deliberately outside this package. The loop engine and the evaluation
// backend (the [Jury]) are collaborators specified only at their boundary.
//
// # Quick Start
//
//	policy := termination.AnyOf(
//	    termination.NewMaxTurns(20),
//	    termination.NewTimeout(10*time.Minute),
//	    termination.NewCostLimit(5.00),
//	    termination.NewStagnation(3, 0.95),
//	)
//
//	exec, err := executor.New(engine, executor.Config{
//	    Strategy: policy,
//	    Callback: callbacks.NewLogger(log),
//	})
//	if err != nil {
//	    return err
//	}
//
//	result := exec.Run(ctx)
//	if result.IsSuccess() {
//	    fmt.Println(result.Response)
//	}
//
// # Termination Strategies
//
// Each turn the executor calls [TerminationStrategy.Check] exactly once,
// after the turn's work and any evaluation have completed. Strategies are
// advisory: they never fail the loop. When a strategy cannot evaluate (for
// example, no verdict was produced this turn) it votes continue.
//
// Strategies may keep private state across turns (the stagnation detector
// counts near-identical responses). Because of that state, a strategy
// instance belongs to a single run; build a fresh instance per run.
//
// # External Evaluation
//
// termination.NewJury bridges an external pass/score/rationale verdict into
// the strategy contract, either in require-pass mode (terminate when the
// verdict passes) or threshold mode (terminate when the normalized score
// reaches a configured bar). The backend itself stays behind the [Jury]
// interface.
//
// # Callbacks
//
// [AgentCallback] is a flat capability interface. Embed [NoopCallback] and
// override only the events you care about:
//
//	type progress struct {
//	    agentloop.NoopCallback
//	}
//
//	func (progress) OnResponse(text string, final bool) {
//	    if final {
//	        fmt.Println(text)
//	    }
//	}
//
// The callbacks package provides ready-made observers: Multi (fan-out),
// Logger (structured logging), and Console (interactive question answering).
package agentloop
