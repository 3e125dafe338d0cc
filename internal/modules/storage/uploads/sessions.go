// Package uploads serves image slot editing sessions and the previews of
// files that have been selected but not stored yet.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
	"go.uber.org/zap"
)

// ErrNoSession is returned for unknown or closed session ids.
var ErrNoSession = errors.New("upload session not found")

// Session is one image field being edited.
type Session struct {
	ID     string
	Type   string
	editor *imageupload.Editor

	mu      sync.Mutex
	touched time.Time
}

// SessionView is the client view of a session.
type SessionView struct {
	ID     string                 `json:"id"`
	Type   string                 `json:"type"`
	Single bool                   `json:"single"`
	Slots  []imageupload.SlotView `json:"slots"`
}

func (s *Session) View() SessionView {
	return SessionView{ID: s.ID, Type: s.Type, Single: s.editor.Single(), Slots: s.editor.Views()}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.touched = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// Sessions keeps the open editing sessions in memory.
type Sessions struct {
	previews *imageupload.MemoryPreviews
	uploader *imageupload.Uploader
	log      *zap.Logger
	now      func() time.Time

	mu    sync.Mutex
	items map[string]*Session
}

func NewSessions(previews *imageupload.MemoryPreviews, uploader *imageupload.Uploader, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{previews: previews, uploader: uploader, log: log, now: time.Now, items: make(map[string]*Session)}
}

// Previews returns the registry the sessions acquire handles from.
func (m *Sessions) Previews() *imageupload.MemoryPreviews { return m.previews }

// Open starts a session seeded with already stored urls.
func (m *Sessions) Open(typ string, single bool, urls []string) (*Session, error) {
	if typ == "" {
		typ = "image"
	}
	if !blob.IsSafeSegment(typ) {
		return nil, fmt.Errorf("%w: invalid type %q", blob.ErrRejected, typ)
	}
	slots := make([]imageupload.Slot, 0, len(urls))
	for _, u := range urls {
		slots = append(slots, imageupload.URLSlot(u))
	}
	ed := imageupload.NewEditor(m.previews, single)
	if len(slots) > 0 {
		if err := ed.SetSlots(slots); err != nil {
			return nil, err
		}
	}
	s := &Session{ID: idgen.New(), Type: typ, editor: ed, touched: m.now()}
	m.mu.Lock()
	m.items[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns a live session and marks it used.
func (m *Sessions) Get(id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.items[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNoSession
	}
	s.touch(m.now())
	return s, nil
}

func (m *Sessions) Select(id string, i int, f *imageupload.File) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return s, s.editor.Select(i, f)
}

func (m *Sessions) Remove(id string, i int) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return s, s.editor.Remove(i)
}

// Commit stores the pending files of a session and returns the final URL
// list. The session continues with the stored URLs.
func (m *Sessions) Commit(ctx context.Context, id string) ([]string, *Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if m.uploader == nil {
		return nil, nil, resource.ErrNoUploader
	}
	urls, err := m.uploader.Commit(ctx, s.Type, s.editor)
	if err != nil {
		return nil, nil, err
	}
	slots := make([]imageupload.Slot, 0, len(urls))
	for _, u := range urls {
		slots = append(slots, imageupload.URLSlot(u))
	}
	if err := s.editor.SetSlots(slots); err != nil {
		return nil, nil, err
	}
	return urls, s, nil
}

// Close ends a session and releases its previews.
func (m *Sessions) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.items[id]
	delete(m.items, id)
	m.mu.Unlock()
	if ok {
		s.editor.Close()
	}
	return ok
}

// Len counts open sessions.
func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Sweep closes sessions idle for longer than maxAge and then drops preview
// handles older than maxAge that no open session still shows.
func (m *Sessions) Sweep(maxAge time.Duration) (sessions, previews int) {
	cutoff := m.now().Add(-maxAge)
	m.mu.Lock()
	var stale []*Session
	held := map[imageupload.Handle]bool{}
	for id, s := range m.items {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(m.items, id)
			continue
		}
		for _, h := range s.editor.Handles() {
			held[h] = true
		}
	}
	m.mu.Unlock()
	for _, s := range stale {
		s.editor.Close()
	}
	previews = m.previews.Sweep(maxAge, func(h imageupload.Handle) bool { return held[h] })
	if len(stale) > 0 || previews > 0 {
		m.log.Info("stale uploads swept", zap.Int("sessions", len(stale)), zap.Int("previews", previews))
	}
	return len(stale), previews
}
