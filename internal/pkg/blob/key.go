package blob

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tripdesk/crm-admin/internal/pkg/datefmt"
)

// DefaultKeyTemplate places uploads under their type, year and month.
const DefaultKeyTemplate = "{type}/{Y}{m}/{uuid}.{ext}"

// RenderKey expands a key template. Besides the datefmt tokens it knows
// {type} {uuid} {md5} {md5-16} {filename} {ext} and {timestamp}.
func RenderKey(template, typ, originalName string, payload []byte, now time.Time) string {
	tpl := strings.TrimSpace(template)
	if tpl == "" {
		tpl = DefaultKeyTemplate
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	if ext == "" || len(ext) > 10 || !IsSafeSegment(ext) {
		ext = "dat"
	}
	name := strings.TrimSpace(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName)))
	if name == "" || !IsSafeSegment(name) {
		name = "file"
	}

	sum := md5.Sum(payload)
	md5Hex := hex.EncodeToString(sum[:])
	uuidValue := strings.ReplaceAll(uuid.NewString(), "-", "")

	key := strings.NewReplacer(
		"{type}", typ,
		"{timestamp}", strconv.FormatInt(now.Unix(), 10),
		"{uuid}", uuidValue,
		"{md5}", md5Hex,
		"{md5-16}", md5Hex[:16],
		"{filename}", name,
		"{ext}", ext,
	).Replace(tpl)
	key = datefmt.Expand(key, now)

	key = strings.TrimPrefix(strings.ReplaceAll(key, "\\", "/"), "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	if key == "" {
		return fmt.Sprintf("%s/%s.%s", typ, uuidValue, ext)
	}
	return key
}

// ValidateUpload checks the extension and size of an upload against limits.
// An empty allow list accepts every extension.
func ValidateUpload(filename string, size int64, allowedFormats []string, maxSizeMB int) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(filename))), ".")
	if ext == "" {
		return fmt.Errorf("%w: file extension is required", ErrRejected)
	}
	if maxSizeMB > 0 && size > int64(maxSizeMB)*1024*1024 {
		return fmt.Errorf("%w: file size exceeds %dMB", ErrRejected, maxSizeMB)
	}
	if len(allowedFormats) == 0 {
		return nil
	}
	for _, item := range allowedFormats {
		if strings.TrimPrefix(strings.ToLower(strings.TrimSpace(item)), ".") == ext {
			return nil
		}
	}
	return fmt.Errorf("%w: file format .%s is not allowed", ErrRejected, ext)
}

// DetectContentType prefers the declared type, then the extension, then sniffing.
func DetectContentType(filename string, payload []byte, declared string) string {
	if ct := strings.TrimSpace(declared); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename))); ext != "" {
		if guessed := mime.TypeByExtension(ext); guessed != "" {
			return guessed
		}
	}
	if len(payload) > 0 {
		return http.DetectContentType(payload)
	}
	return "application/octet-stream"
}

// IsSafeSegment reports whether s only holds alphanumerics, '-', '_' or '.'.
func IsSafeSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			continue
		}
		return false
	}
	return true
}

// SafeKey reports whether every segment of key is safe.
func SafeKey(key string) bool {
	if key == "" {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if !IsSafeSegment(seg) {
			return false
		}
	}
	return true
}
