package blob

import (
	"context"
	"strings"
	"sync"
)

// Memory keeps objects in a map. Used by tests and the dry-run CLI mode.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	base    string
}

func NewMemory(publicBase string) *Memory {
	return &Memory{objects: make(map[string][]byte), base: strings.TrimRight(publicBase, "/")}
}

func (m *Memory) Driver() string { return "memory" }

func (m *Memory) Put(_ context.Context, key string, data []byte, contentType string) (Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return Object{Key: key, URL: m.base + "/" + key, ContentType: contentType, Size: int64(len(data))}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) KeyFromURL(raw string) (string, bool) {
	key, found := strings.CutPrefix(raw, m.base+"/")
	return key, found && key != ""
}

// Get returns a stored object's bytes.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return b, ok
}

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
