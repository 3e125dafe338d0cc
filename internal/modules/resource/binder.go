package resource

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/imageupload"
)

// Bind reads a JSON, urlencoded or multipart submission into raw values.
// Multipart files are attached to the file field of the same name, or to
// the first file field of the form when no field matches (the client sends
// every image under "images").
func Bind(c *gin.Context, fields []form.FieldDescriptor, maxFileBytes int64) (map[string]any, error) {
	switch c.ContentType() {
	case binding.MIMEMultipartPOSTForm:
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
		}
		return bindMultipart(mf, fields, maxFileBytes)
	case binding.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
		}
		return formValues(c.Request.PostForm), nil
	default:
		raw := map[string]any{}
		if err := c.ShouldBindJSON(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
		}
		return raw, nil
	}
}

func formValues(values map[string][]string) map[string]any {
	raw := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			raw[k] = vs[0]
		default:
			items := make([]any, len(vs))
			for i, v := range vs {
				items[i] = v
			}
			raw[k] = items
		}
	}
	return raw
}

func bindMultipart(mf *multipart.Form, fields []form.FieldDescriptor, maxFileBytes int64) (map[string]any, error) {
	raw := formValues(mf.Value)

	keys := make([]string, 0, len(mf.File))
	for k := range mf.File {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		target, ok := fileTarget(fields, key)
		if !ok {
			return nil, fmt.Errorf("%w: no file field accepts %q", ErrBadInput, key)
		}
		slots, err := imageupload.SlotsFrom(raw[target.Name])
		if err != nil {
			return nil, &form.DecodeError{Field: target.Name, Err: err}
		}
		slots = dropEmpty(slots)
		for _, fh := range mf.File[key] {
			f, err := imageupload.ReadFile(fh, maxFileBytes)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
			}
			if target.SingleImage {
				slots = []imageupload.Slot{imageupload.FileSlot(f)}
				continue
			}
			slots = append(slots, imageupload.FileSlot(f))
		}
		raw[target.Name] = slots
	}
	return raw, nil
}

func fileTarget(fields []form.FieldDescriptor, key string) (form.FieldDescriptor, bool) {
	var first *form.FieldDescriptor
	for i, f := range fields {
		if f.Type != form.TypeFile {
			continue
		}
		if f.Name == key {
			return f, true
		}
		if first == nil {
			first = &fields[i]
		}
	}
	if first == nil {
		return form.FieldDescriptor{}, false
	}
	return *first, true
}

func dropEmpty(slots []imageupload.Slot) []imageupload.Slot {
	out := slots[:0:0]
	for _, s := range slots {
		if s.Filled() {
			out = append(out, s)
		}
	}
	return out
}
