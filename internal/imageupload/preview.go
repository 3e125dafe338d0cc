package imageupload

import (
	"errors"
	"sync"
	"time"

	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
)

// ErrReleased is returned when a handle is used after release.
var ErrReleased = errors.New("preview handle released")

// Handle identifies a live preview of a pending file.
type Handle string

// PreviewRegistry hands out preview handles for pending files. Every
// acquired handle must be released exactly once.
type PreviewRegistry interface {
	Acquire(f *File) (Handle, error)
	Release(h Handle)
}

type preview struct {
	file     *File
	acquired time.Time
}

// MemoryPreviews keeps preview payloads in memory until released.
type MemoryPreviews struct {
	mu    sync.Mutex
	items map[Handle]preview
	now   func() time.Time
}

func NewMemoryPreviews() *MemoryPreviews {
	return &MemoryPreviews{items: make(map[Handle]preview), now: time.Now}
}

func (m *MemoryPreviews) Acquire(f *File) (Handle, error) {
	if f == nil {
		return "", errors.New("preview of nil file")
	}
	h := Handle(idgen.New())
	m.mu.Lock()
	m.items[h] = preview{file: f, acquired: m.now()}
	m.mu.Unlock()
	return h, nil
}

func (m *MemoryPreviews) Release(h Handle) {
	m.mu.Lock()
	delete(m.items, h)
	m.mu.Unlock()
}

// Open returns the file behind a live handle.
func (m *MemoryPreviews) Open(h Handle) (*File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[h]
	if !ok {
		return nil, ErrReleased
	}
	return p.file, nil
}

// Outstanding counts handles that have not been released.
func (m *MemoryPreviews) Outstanding() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Sweep releases handles older than maxAge that held does not claim and
// returns how many it dropped. A nil held claims nothing.
func (m *MemoryPreviews) Sweep(maxAge time.Duration, held func(Handle) bool) int {
	cutoff := m.now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for h, p := range m.items {
		if p.acquired.Before(cutoff) && (held == nil || !held(h)) {
			delete(m.items, h)
			n++
		}
	}
	return n
}
