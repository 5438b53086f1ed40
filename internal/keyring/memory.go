package keyring

import (
	"fmt"
	"sync"
)

// Memory keeps credentials in process memory.
type Memory struct {
	mu      *sync.Mutex
	secrets map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		mu:      new(sync.Mutex),
		secrets: make(map[string]map[string]string),
	}
}

func (m *Memory) Put(namespace, account, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.secrets[namespace] == nil {
		m.secrets[namespace] = make(map[string]string)
	}
	m.secrets[namespace][account] = secret
	return nil
}

func (m *Memory) Get(namespace, account string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	secret, ok := m.secrets[namespace][account]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, account)
	}
	return secret, nil
}
