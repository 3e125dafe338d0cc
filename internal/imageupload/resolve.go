package imageupload

import (
	"context"
	"fmt"
	"time"

	"github.com/tripdesk/crm-admin/internal/pkg/blob"
)

// Tracker is told about every object stored by Resolve.
type Tracker interface {
	Track(ctx context.Context, obj blob.Object) error
}

// Uploader stores pending slot files.
type Uploader struct {
	Store          blob.Store
	KeyTemplate    string
	AllowedFormats []string
	MaxSizeMB      int
	Tracker        Tracker
}

// Resolve stores every pending file and returns the URL list. Empty slots
// are dropped. Either every file is stored or an error is returned.
func (u *Uploader) Resolve(ctx context.Context, typ string, slots []Slot) ([]string, error) {
	for _, s := range slots {
		if s.File == nil {
			continue
		}
		if err := blob.ValidateUpload(s.File.Name, s.File.Size(), u.AllowedFormats, u.MaxSizeMB); err != nil {
			return nil, err
		}
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.File == nil {
			if s.URL != "" {
				out = append(out, s.URL)
			}
			continue
		}
		obj, err := u.store(ctx, typ, s.File)
		if err != nil {
			return nil, err
		}
		out = append(out, obj.URL)
	}
	return out, nil
}

// Commit resolves the slots of an editor.
func (u *Uploader) Commit(ctx context.Context, typ string, e *Editor) ([]string, error) {
	return u.Resolve(ctx, typ, e.Slots())
}

// Save validates and stores one file.
func (u *Uploader) Save(ctx context.Context, typ string, f *File) (blob.Object, error) {
	if err := blob.ValidateUpload(f.Name, f.Size(), u.AllowedFormats, u.MaxSizeMB); err != nil {
		return blob.Object{}, err
	}
	return u.store(ctx, typ, f)
}

func (u *Uploader) store(ctx context.Context, typ string, f *File) (blob.Object, error) {
	key := blob.RenderKey(u.KeyTemplate, typ, f.Name, f.Data, time.Now())
	contentType := blob.DetectContentType(f.Name, f.Data, f.ContentType)
	obj, err := u.Store.Put(ctx, key, f.Data, contentType)
	if err != nil {
		return blob.Object{}, fmt.Errorf("store %s: %w", f.Name, err)
	}
	if u.Tracker != nil {
		if err := u.Tracker.Track(ctx, obj); err != nil {
			return blob.Object{}, err
		}
	}
	return obj, nil
}
