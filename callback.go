package agentloop

// Option is one selectable answer to a [Question].
type Option struct {
	// ID identifies the option; it is the value returned as the answer
	// when the option is selected.
	ID string

	// Description is the human-readable label shown for the option.
	Description string
}

// Question is a prompt for human input raised by the agent mid-loop,
// delivered through [AgentCallback.OnQuestion].
//
// Questions are immutable values: constructed by the tool layer, consumed
// by the observer.
type Question struct {
	// Text is the prompt shown to the human.
	Text string

	// Category is a label grouping related questions (e.g.
	// "clarification", "approval").
	Category string

	// Options are the selectable answers, possibly empty.
	Options []Option

	// FreeText indicates whether free-text answers are accepted in
	// addition to the listed options.
	FreeText bool
}

// AgentCallback is the event-notification contract fired synchronously as
// the loop progresses. Implementations observe; they cannot steer
// termination (that is the strategy's job).
//
// # Partial Implementations
//
// Every method has a no-op default via [NoopCallback]; embed it and
// override only the events you need:
//
//	type toolLogger struct {
//	    agentloop.NoopCallback
//	}
//
//	func (toolLogger) OnToolCall(name, input string) {
//	    log.Printf("calling %s", name)
//	}
//
// # Ordering
//
// Within one turn, OnThinking precedes any OnToolCall or OnResponse for
// that turn; each OnToolCall precedes its matching OnToolResult; a partial
// OnResponse precedes the turn's final one, and at most one final
// OnResponse fires per turn. OnComplete is always the last callback of a
// run, fired exactly once.
//
// All callbacks are synchronous, blocking calls made from the executor's
// turn-processing path: a slow observer stalls the loop for that duration.
type AgentCallback interface {
	// OnThinking fires when the agent begins deliberation for a turn,
	// before any output is produced.
	OnThinking()

	// OnToolCall fires immediately before a tool invocation. toolInput is
	// the tool's arguments in a stable, parseable encoding (JSON), not
	// free text.
	OnToolCall(toolName, toolInput string)

	// OnToolResult fires immediately after the tool invocation returns,
	// paired 1:1 with the preceding OnToolCall for the same tool name
	// within the turn. A tool may be called several times per turn.
	OnToolResult(toolName, result string)

	// OnResponse fires as response text becomes available. final=false
	// marks an incremental chunk; final=true marks the turn's complete
	// text and fires at most once per turn.
	OnResponse(text string, final bool)

	// OnQuestion fires when the agent needs human input mid-loop. It
	// returns answers keyed by question text; a missing key means the
	// question went unanswered, and an empty map means no answers were
	// supplied at all. Callers must treat an empty map as "unanswered",
	// never as an error.
	OnQuestion(questions []Question) map[string]string

	// OnError fires when a turn-level fault occurs. It does not by itself
	// stop the loop; converting repeated faults into a terminal error
	// outcome is the executor's policy.
	OnError(err error)

	// OnComplete fires exactly once, after the terminal [AgentResult] has
	// been constructed, regardless of outcome.
	OnComplete()
}

// NoopCallback implements [AgentCallback] with no-ops. Embed it to build
// partial observers; a bare NoopCallback is also the executor's default
// when no callback is configured.
type NoopCallback struct{}

// OnThinking does nothing.
func (NoopCallback) OnThinking() {}

// OnToolCall does nothing.
func (NoopCallback) OnToolCall(toolName, toolInput string) {}

// OnToolResult does nothing.
func (NoopCallback) OnToolResult(toolName, result string) {}

// OnResponse does nothing.
func (NoopCallback) OnResponse(text string, final bool) {}

// OnQuestion supplies no answers: it returns an empty map for any input.
func (NoopCallback) OnQuestion(questions []Question) map[string]string {
	return map[string]string{}
}

// OnError does nothing.
func (NoopCallback) OnError(err error) {}

// OnComplete does nothing.
func (NoopCallback) OnComplete() {}

// Compile-time check that NoopCallback implements AgentCallback.
var _ AgentCallback = NoopCallback{}
