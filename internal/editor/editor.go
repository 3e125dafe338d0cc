// Package editor implements the ordered sub-record lists of an itinerary
// (days, hotels, packages, batches) as pure functions over snapshots.
//
// No function mutates its input. Each returns a fresh slice whose elements
// are deep copies, so callers can compare old and new snapshots freely.
package editor

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record carries the requested id.
var ErrNotFound = errors.New("record not found")

// Record is a list element addressable by id and updatable field by field.
type Record[T any] interface {
	RecordID() string
	Clone() T
	With(field string, value any) (T, error)
}

func cloneAll[T Record[T]](items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Add appends rec to a copy of items.
func Add[T Record[T]](items []T, rec T) []T {
	return append(cloneAll(items), rec)
}

// Remove drops the record with the given id. Unknown ids leave the copy unchanged.
func Remove[T Record[T]](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.RecordID() != id {
			out = append(out, it.Clone())
		}
	}
	return out
}

// MoveUp swaps the record at i with its predecessor. Index 0 and
// out-of-range indexes are no-ops.
func MoveUp[T Record[T]](items []T, i int) []T {
	out := cloneAll(items)
	if i <= 0 || i >= len(out) {
		return out
	}
	out[i-1], out[i] = out[i], out[i-1]
	return out
}

// MoveDown swaps the record at i with its successor. The last index and
// out-of-range indexes are no-ops.
func MoveDown[T Record[T]](items []T, i int) []T {
	out := cloneAll(items)
	if i < 0 || i >= len(out)-1 {
		return out
	}
	out[i], out[i+1] = out[i+1], out[i]
	return out
}

// Update sets one field on the record with the given id.
func Update[T Record[T]](items []T, id, field string, value any) ([]T, error) {
	out := cloneAll(items)
	for i, it := range out {
		if it.RecordID() != id {
			continue
		}
		next, err := it.With(field, value)
		if err != nil {
			return nil, err
		}
		out[i] = next
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Index returns the position of id in items, or -1.
func Index[T Record[T]](items []T, id string) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

// ListView is what a list editor shows: a placeholder panel when empty,
// otherwise the items followed by an "add another" control.
type ListView[T any] struct {
	Empty          bool   `json:"empty"`
	Placeholder    string `json:"placeholder,omitempty"`
	Items          []T    `json:"items"`
	ShowAddAnother bool   `json:"show_add_another"`
}

// View builds the editor view of items. noun names the records in the
// placeholder text, e.g. "days".
func View[T any](items []T, noun string) ListView[T] {
	if len(items) == 0 {
		return ListView[T]{
			Empty:       true,
			Placeholder: fmt.Sprintf("No %s added yet", noun),
			Items:       []T{},
		}
	}
	return ListView[T]{Items: items, ShowAddAnother: true}
}
