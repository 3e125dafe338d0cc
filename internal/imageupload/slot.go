// Package imageupload manages ordered image slots, the preview handles of
// pending files and their promotion to stored URLs.
package imageupload

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/tripdesk/crm-admin/internal/pkg/blob"
)

// File is a selected upload that has not been stored yet.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileName satisfies form.FileLike.
func (f *File) FileName() string { return f.Name }

// Size is the payload length in bytes.
func (f *File) Size() int64 { return int64(len(f.Data)) }

// ReadFile loads a multipart file header into memory. maxBytes <= 0 disables the limit.
func ReadFile(fh *multipart.FileHeader, maxBytes int64) (*File, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", blob.ErrRejected, fh.Filename, maxBytes)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}

// Slot holds either a pending File or a URL. The zero Slot is the empty
// sentinel.
type Slot struct {
	URL  string
	File *File
}

// URLSlot wraps an already stored URL.
func URLSlot(url string) Slot { return Slot{URL: url} }

// FileSlot wraps a pending file.
func FileSlot(f *File) Slot { return Slot{File: f} }

// Filled reports whether the slot carries a file or a non-empty URL.
func (s Slot) Filled() bool { return s.File != nil || s.URL != "" }

// Pending reports whether the slot still needs uploading.
func (s Slot) Pending() bool { return s.File != nil }

// MarshalJSON renders stored slots as their URL and pending ones as an object.
func (s Slot) MarshalJSON() ([]byte, error) {
	if s.File != nil {
		return json.Marshal(map[string]any{"name": s.File.Name, "size": s.File.Size(), "pending": true})
	}
	return json.Marshal(s.URL)
}

// SlotsFrom converts submitted slot values: URL strings, JSON encoded
// string arrays, *File values or existing slots.
func SlotsFrom(raw any) ([]Slot, error) {
	switch x := raw.(type) {
	case nil:
		return []Slot{}, nil
	case []Slot:
		return append([]Slot(nil), x...), nil
	case Slot:
		return []Slot{x}, nil
	case *File:
		return []Slot{FileSlot(x)}, nil
	case []string:
		out := make([]Slot, len(x))
		for i, u := range x {
			out[i] = URLSlot(u)
		}
		return out, nil
	case string:
		trimmed := strings.TrimSpace(x)
		if !strings.HasPrefix(trimmed, "[") {
			return []Slot{URLSlot(x)}, nil
		}
		var urls []string
		if err := json.Unmarshal([]byte(trimmed), &urls); err != nil {
			return nil, fmt.Errorf("image list: %w", err)
		}
		return SlotsFrom(urls)
	case []any:
		out := make([]Slot, 0, len(x))
		for _, item := range x {
			switch v := item.(type) {
			case nil:
				out = append(out, Slot{})
			case string:
				out = append(out, URLSlot(v))
			case *File:
				out = append(out, FileSlot(v))
			case Slot:
				out = append(out, v)
			default:
				return nil, fmt.Errorf("image list: unsupported slot %T", item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("image list: unsupported value %T", raw)
	}
}

// URLs returns the non-empty stored URLs of slots, skipping pending files.
func URLs(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.File == nil && s.URL != "" {
			out = append(out, s.URL)
		}
	}
	return out
}
