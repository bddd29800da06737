package notify

import "sync"

// MockNotifier captures notifications for test assertions.
type MockNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

// NewMockNotifier creates a capturing notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Success records the message.
func (m *MockNotifier) Success(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, msg)
}

// Error records the message.
func (m *MockNotifier) Error(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

// Successes returns a copy of the captured success messages.
func (m *MockNotifier) Successes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.successes))
	copy(out, m.successes)
	return out
}

// Errors returns a copy of the captured error messages.
func (m *MockNotifier) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.errors))
	copy(out, m.errors)
	return out
}

// Reset clears all captured messages.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = nil
	m.errors = nil
}
