package storage

import "sync"

// Mock is an in-memory KeyValueStore. It backs the "memory" backend and the tests.
// It is safe for concurrent use.
type Mock struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites makes Set and Remove drop the write, simulating a full or disabled store.
	FailWrites bool

	SetCalls    int
	RemoveCalls int
}

var _ KeyValueStore = (*Mock)(nil)

// NewMock creates an empty in-memory store.
func NewMock() *Mock {
	return &Mock{values: make(map[string]string)}
}

func (m *Mock) Get(key Key) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key.Namespaced()]
	return v, ok
}

func (m *Mock) Set(key Key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.FailWrites {
		return
	}
	m.values[key.Namespaced()] = value
}

func (m *Mock) Remove(key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	if m.FailWrites {
		return
	}
	delete(m.values, key.Namespaced())
}

// Put seeds a raw value, bypassing FailWrites.
func (m *Mock) Put(key Key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key.Namespaced()] = value
}

// Len returns the number of stored keys.
func (m *Mock) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}
