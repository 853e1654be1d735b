package notifier

import "sync"

// Mock records notifications. It is safe for concurrent use.
type Mock struct {
	mu    sync.Mutex
	calls []Notification
}

var _ Notifier = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Notify(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, n)
}

// Notifications returns everything received so far.
func (m *Mock) Notifications() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.calls))
	copy(out, m.calls)
	return out
}

// Last returns the latest notification, if any.
func (m *Mock) Last() (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Notification{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
