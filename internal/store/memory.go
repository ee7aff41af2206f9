package store

import (
	"context"
	"sync"
)

type Memory struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemory() *Memory {
	return &Memory{states: make(map[string]State)}
}

func (m *Memory) Create(ctx context.Context, slug string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.states[slug]; ok {
		return ErrSlugTaken
	}
	m.states[slug] = state
	return nil
}

func (m *Memory) Save(ctx context.Context, slug string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[slug] = state
	return nil
}

func (m *Memory) Load(ctx context.Context, slug string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[slug]
	if !ok {
		return State{}, ErrNotFound
	}
	return state, nil
}

func (m *Memory) Delete(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, slug)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
