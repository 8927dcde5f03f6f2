package store

import "sync"

// Memory is an in-process Sessions, handy in tests.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Sessions = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *Memory) SaveSession(token string, user []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[KeyToken] = token
	m.values[KeyUser] = string(user)
	return nil
}

func (m *Memory) LoadSession() (string, []byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok1 := m.values[KeyToken]
	user, ok2 := m.values[KeyUser]
	if !ok1 || !ok2 || token == "" || user == "" {
		delete(m.values, KeyToken)
		delete(m.values, KeyUser)
		return "", nil, false
	}
	return token, []byte(user), true
}

func (m *Memory) ClearSession() error {
	return m.Delete(KeyToken, KeyUser)
}
