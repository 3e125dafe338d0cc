package imageupload

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrClosed    = errors.New("image editor closed")
	ErrSlotIndex = errors.New("slot index out of range")
)

// Editor owns an ordered slot array and the previews of its pending files.
// Whenever the array is replaced, every handle of the previous array is
// released before handles for the new one are acquired.
type Editor struct {
	mu       sync.Mutex
	single   bool
	slots    []Slot
	handles  map[int]Handle
	previews PreviewRegistry
	closed   bool
}

// NewEditor creates an editor. In single mode the array always has exactly
// one slot.
func NewEditor(previews PreviewRegistry, single bool) *Editor {
	e := &Editor{single: single, previews: previews, handles: map[int]Handle{}}
	if single {
		e.slots = []Slot{{}}
	}
	return e
}

// Single reports whether the editor is in single-image mode.
func (e *Editor) Single() bool { return e.single }

// SetSlots replaces the whole array.
func (e *Editor) SetSlots(slots []Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replace(slots)
}

func (e *Editor) replace(slots []Slot) error {
	if e.closed {
		return ErrClosed
	}
	next := append([]Slot(nil), slots...)
	if e.single {
		first := Slot{}
		if len(next) > 0 {
			first = next[0]
		}
		next = []Slot{first}
	}

	e.releaseAll()
	e.slots = next
	for i, s := range next {
		if s.File == nil {
			continue
		}
		h, err := e.previews.Acquire(s.File)
		if err != nil {
			e.releaseAll()
			return fmt.Errorf("preview slot %d: %w", i, err)
		}
		e.handles[i] = h
	}
	return nil
}

func (e *Editor) releaseAll() {
	for i, h := range e.handles {
		e.previews.Release(h)
		delete(e.handles, i)
	}
}

// Slots returns a copy of the current array.
func (e *Editor) Slots() []Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Slot(nil), e.slots...)
}

// Select puts f in slot i. In multi mode i == len appends a slot; in single
// mode the index is ignored and the sole slot is replaced.
func (e *Editor) Select(i int, f *File) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.single {
		return e.replace([]Slot{FileSlot(f)})
	}
	if i < 0 || i > len(e.slots) {
		return fmt.Errorf("%w: %d", ErrSlotIndex, i)
	}
	next := append([]Slot(nil), e.slots...)
	if i == len(next) {
		next = append(next, FileSlot(f))
	} else {
		next[i] = FileSlot(f)
	}
	return e.replace(next)
}

// Remove deletes slot i in multi mode and clears the sole slot in single mode.
func (e *Editor) Remove(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.single {
		return e.replace([]Slot{{}})
	}
	if i < 0 || i >= len(e.slots) {
		return fmt.Errorf("%w: %d", ErrSlotIndex, i)
	}
	next := make([]Slot, 0, len(e.slots)-1)
	next = append(next, e.slots[:i]...)
	next = append(next, e.slots[i+1:]...)
	return e.replace(next)
}

// Preview returns the handle of the pending file in slot i.
func (e *Editor) Preview(i int) (Handle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.handles[i]
	return h, ok
}

// Handles lists the preview handles the editor currently holds.
func (e *Editor) Handles() []Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Handle, 0, len(e.handles))
	for _, h := range e.handles {
		out = append(out, h)
	}
	return out
}

// Close releases every outstanding handle. The editor is unusable afterwards.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.releaseAll()
	e.closed = true
}

// SlotView is how a slot is shown to a client.
type SlotView struct {
	Index   int    `json:"index"`
	URL     string `json:"url,omitempty"`
	Preview Handle `json:"preview,omitempty"`
	Name    string `json:"name,omitempty"`
	Pending bool   `json:"pending"`
}

// Views describes the current slots.
func (e *Editor) Views() []SlotView {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]SlotView, len(e.slots))
	for i, s := range e.slots {
		v := SlotView{Index: i, URL: s.URL, Pending: s.File != nil}
		if s.File != nil {
			v.Name = s.File.Name
			v.Preview = e.handles[i]
		}
		out[i] = v
	}
	return out
}
