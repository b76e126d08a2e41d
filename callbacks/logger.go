package callbacks

import (
	"github.com/rs/zerolog"

	"github.com/markpollack/agentloop"
)

// Logger is an observing callback that logs every loop event through
// zerolog. It never answers questions; pair it with an answering observer
// via [Multi] when interactive input is needed.
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a Logger writing to the given zerolog logger.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// OnThinking implements [agentloop.AgentCallback].
func (l *Logger) OnThinking() {
	l.log.Debug().Msg("agent thinking")
}

// OnToolCall implements [agentloop.AgentCallback].
func (l *Logger) OnToolCall(toolName, toolInput string) {
	l.log.Info().
		Str("tool", toolName).
		Str("input", toolInput).
		Msg("tool call")
}

// OnToolResult implements [agentloop.AgentCallback].
func (l *Logger) OnToolResult(toolName, result string) {
	l.log.Info().
		Str("tool", toolName).
		Int("result_bytes", len(result)).
		Msg("tool result")
}

// OnResponse implements [agentloop.AgentCallback]. Partial chunks log at
// debug level, the turn's final text at info.
func (l *Logger) OnResponse(text string, final bool) {
	if !final {
		l.log.Debug().Int("chunk_bytes", len(text)).Msg("partial response")
		return
	}
	l.log.Info().Str("response", text).Msg("final response")
}

// OnQuestion implements [agentloop.AgentCallback]. It logs the questions
// and supplies no answers.
func (l *Logger) OnQuestion(questions []agentloop.Question) map[string]string {
	for _, q := range questions {
		l.log.Info().
			Str("category", q.Category).
			Str("question", q.Text).
			Int("options", len(q.Options)).
			Bool("free_text", q.FreeText).
			Msg("agent question")
	}
	return map[string]string{}
}

// OnError implements [agentloop.AgentCallback].
func (l *Logger) OnError(err error) {
	l.log.Error().Err(err).Msg("turn error")
}

// OnComplete implements [agentloop.AgentCallback].
func (l *Logger) OnComplete() {
	l.log.Info().Msg("run complete")
}

// Compile-time check that Logger implements AgentCallback.
var _ agentloop.AgentCallback = (*Logger)(nil)
