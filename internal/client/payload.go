package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"

	"github.com/tripdesk/crm-admin/internal/imageupload"
)

// Multipart file parts are sent under these names, once per file.
const (
	ImagesField = "images"
	VideosField = "videos"
)

// Payload is the body of a create or update call. File slots may hold
// pending *imageupload.File values; when any does, the payload is sent as
// multipart form data.
type Payload map[string]any

// encode returns the request body and its content type.
func (p Payload) encode() (io.Reader, string, error) {
	files, rest := p.split()
	if len(files) == 0 {
		b, err := json.Marshal(rest)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(b), "application/json", nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	keys := make([]string, 0, len(rest))
	for k := range rest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s, err := fieldString(rest[k])
		if err != nil {
			return nil, "", fmt.Errorf("client: field %s: %w", k, err)
		}
		if err := mw.WriteField(k, s); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		name := ImagesField
		if strings.HasPrefix(f.ContentType, "video/") {
			name = VideosField
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// split pulls pending files out of slot values. What remains of a slot list
// is its stored URLs.
func (p Payload) split() ([]*imageupload.File, map[string]any) {
	var files []*imageupload.File
	rest := make(map[string]any, len(p))
	for k, v := range p {
		slots, ok := asSlots(v)
		if !ok {
			rest[k] = v
			continue
		}
		for _, s := range slots {
			if s.Pending() {
				files = append(files, s.File)
			}
		}
		rest[k] = imageupload.URLs(slots)
	}
	return files, rest
}

func asSlots(v any) ([]imageupload.Slot, bool) {
	switch x := v.(type) {
	case []imageupload.Slot, imageupload.Slot, *imageupload.File:
		slots, err := imageupload.SlotsFrom(x)
		return slots, err == nil
	case []any:
		for _, item := range x {
			switch item.(type) {
			case *imageupload.File, imageupload.Slot:
				slots, err := imageupload.SlotsFrom(x)
				return slots, err == nil
			}
		}
	}
	return nil, false
}

// fieldString renders a multipart value. Arrays and objects are sent as
// JSON strings.
func fieldString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool, int, int64, float64, json.Number:
		return fmt.Sprint(x), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
