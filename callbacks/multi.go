// Package callbacks provides ready-made [agentloop.AgentCallback]
// observers: fan-out to multiple observers, structured logging, and
// interactive console question answering.
package callbacks

import "github.com/markpollack/agentloop"

// Multi fans every event out to an ordered list of observers. Observers are
// notified in registration order, synchronously.
//
// For OnQuestion, the first observer that returns a non-empty answer map
// wins and later observers are not asked; purely observing callbacks
// (which return an empty map) are therefore safe to register ahead of an
// answering one.
type Multi struct {
	callbacks []agentloop.AgentCallback
}

// NewMulti creates a Multi over the given observers.
func NewMulti(cbs ...agentloop.AgentCallback) *Multi {
	return &Multi{callbacks: cbs}
}

// Add appends an observer. Returns the Multi for chaining.
func (m *Multi) Add(cb agentloop.AgentCallback) *Multi {
	m.callbacks = append(m.callbacks, cb)
	return m
}

// OnThinking implements [agentloop.AgentCallback].
func (m *Multi) OnThinking() {
	for _, cb := range m.callbacks {
		cb.OnThinking()
	}
}

// OnToolCall implements [agentloop.AgentCallback].
func (m *Multi) OnToolCall(toolName, toolInput string) {
	for _, cb := range m.callbacks {
		cb.OnToolCall(toolName, toolInput)
	}
}

// OnToolResult implements [agentloop.AgentCallback].
func (m *Multi) OnToolResult(toolName, result string) {
	for _, cb := range m.callbacks {
		cb.OnToolResult(toolName, result)
	}
}

// OnResponse implements [agentloop.AgentCallback].
func (m *Multi) OnResponse(text string, final bool) {
	for _, cb := range m.callbacks {
		cb.OnResponse(text, final)
	}
}

// OnQuestion implements [agentloop.AgentCallback]. The first non-empty
// answer map wins.
func (m *Multi) OnQuestion(questions []agentloop.Question) map[string]string {
	for _, cb := range m.callbacks {
		if answers := cb.OnQuestion(questions); len(answers) > 0 {
			return answers
		}
	}
	return map[string]string{}
}

// OnError implements [agentloop.AgentCallback].
func (m *Multi) OnError(err error) {
	for _, cb := range m.callbacks {
		cb.OnError(err)
	}
}

// OnComplete implements [agentloop.AgentCallback].
func (m *Multi) OnComplete() {
	for _, cb := range m.callbacks {
		cb.OnComplete()
	}
}

// Compile-time check that Multi implements AgentCallback.
var _ agentloop.AgentCallback = (*Multi)(nil)
