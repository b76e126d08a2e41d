package agentloop

import (
	"sync"
	"time"
)

// LoopState is the snapshot of loop progress passed to termination
// strategies each turn: the current turn index, accumulated cost, elapsed
// wall time, and the most recent response text.
//
// The state is owned and mutated exclusively by the loop executor.
// Strategies and callbacks receive it read-only for the duration of a call
// and must not retain it beyond the call. Lifetime is one run.
type LoopState struct {
	mu sync.RWMutex

	turn         int
	cost         float64
	lastResponse string

	clock Clock
	start time.Time
}

// NewLoopState creates a fresh LoopState with the run clock started now.
func NewLoopState() *LoopState {
	return NewLoopStateWithClock(NewSystemClock())
}

// NewLoopStateWithClock creates a LoopState measuring elapsed time against
// the given clock. Used by tests to drive time-based strategies.
func NewLoopStateWithClock(clock Clock) *LoopState {
	return &LoopState{
		clock: clock,
		start: clock.Now(),
	}
}

// Turn returns the current turn index (1-indexed).
// Returns 0 before the first turn has started.
func (s *LoopState) Turn() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turn
}

// Cost returns the accumulated spend for this run.
func (s *LoopState) Cost() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cost
}

// Elapsed returns the wall time spent since the run started.
func (s *LoopState) Elapsed() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.Now().Sub(s.start)
}

// LastResponse returns the most recent response text produced by the
// agent, or "" if no response has been recorded yet.
func (s *LoopState) LastResponse() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResponse
}

// AdvanceTurn increments the turn index. Called by the executor at the
// start of each turn.
func (s *LoopState) AdvanceTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turn++
}

// AddCost accumulates spend for the current turn. Called by the executor.
func (s *LoopState) AddCost(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cost += delta
}

// SetLastResponse records the most recent response text. Called by the
// executor after each turn that produced output.
func (s *LoopState) SetLastResponse(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResponse = text
}
