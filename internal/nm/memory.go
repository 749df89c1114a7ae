package nm

import (
	"context"
	"sort"
	"sync"
)

// Request records a SetActive call made against a Memory source
type Request struct {
	Name string
	Up   bool
}

// Memory is an in-memory Source. Activation requests take effect immediately
// unless SetErr is set.
type Memory struct {
	mu       sync.Mutex
	tunnels  []string
	active   map[string]bool
	requests []Request

	// Injected failures
	ListErr   error
	ActiveErr error
	SetErr    error
}

// NewMemory creates a source with the given tunnels and active set
func NewMemory(tunnels []string, active ...string) *Memory {
	m := &Memory{
		tunnels: append([]string(nil), tunnels...),
		active:  make(map[string]bool),
	}
	for _, name := range active {
		m.active[name] = true
	}
	return m
}

func (m *Memory) ListTunnels(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	names := append([]string(nil), m.tunnels...)
	sort.Strings(names)
	return names, nil
}

func (m *Memory) ListActive(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ActiveErr != nil {
		return nil, m.ActiveErr
	}
	names := make([]string, 0, len(m.active))
	for name := range m.active {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) SetActive(_ context.Context, name string, up bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, Request{Name: name, Up: up})
	if m.SetErr != nil {
		return m.SetErr
	}
	if up {
		m.active[name] = true
	} else {
		delete(m.active, name)
	}
	return nil
}

// Requests returns a copy of the SetActive calls seen so far
func (m *Memory) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Request(nil), m.requests...)
}
