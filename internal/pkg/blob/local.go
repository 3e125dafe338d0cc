package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects below a directory and serves them under PublicBase.
type Local struct {
	root       string
	publicBase string
}

// NewLocal creates a local store. publicBase is the URL prefix objects are
// served from, e.g. "/api/v1/files".
func NewLocal(root, publicBase string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create static dir: %w", err)
	}
	return &Local{root: root, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (l *Local) Driver() string { return "local" }

// Path maps a key to its file on disk.
func (l *Local) Path(key string) (string, bool) {
	if !SafeKey(key) {
		return "", false
	}
	return filepath.Join(l.root, filepath.FromSlash(key)), true
}

func (l *Local) Put(_ context.Context, key string, data []byte, contentType string) (Object, error) {
	path, ok := l.Path(key)
	if !ok {
		return Object{}, fmt.Errorf("invalid object key %q", key)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Object{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Object{}, err
	}
	return Object{Key: key, URL: l.publicBase + "/" + key, ContentType: contentType, Size: int64(len(data))}, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	path, ok := l.Path(key)
	if !ok {
		return fmt.Errorf("invalid object key %q", key)
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (l *Local) KeyFromURL(raw string) (string, bool) {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	base := l.publicBase
	if u, err := url.Parse(base); err == nil && u.Path != "" {
		base = u.Path
	}
	key, found := strings.CutPrefix(p, base+"/")
	if !found || !SafeKey(key) {
		return "", false
	}
	return key, true
}
