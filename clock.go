package agentloop

import "time"

// Clock provides the time source used to measure elapsed wall time for a
// run. Inject a [MockClock] in tests to make time-based strategies
// deterministic.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is the standard Clock backed by the system time.
type SystemClock struct{}

// NewSystemClock creates a new SystemClock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time.
func (*SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a Clock that returns a fixed time, adjustable from tests.
type MockClock struct {
	current time.Time
}

// NewMockClock creates a MockClock fixed at the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// SetTime updates the time returned by Now.
func (m *MockClock) SetTime(t time.Time) {
	m.current = t
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

// Now returns the mocked time.
func (m *MockClock) Now() time.Time {
	return m.current
}

// Compile-time check that both implementations satisfy Clock.
var (
	_ Clock = (*SystemClock)(nil)
	_ Clock = (*MockClock)(nil)
)
