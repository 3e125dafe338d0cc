package blob

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRenderKey(t *testing.T) {
	now := time.Date(2025, 6, 6, 9, 30, 0, 0, time.UTC)
	key := RenderKey("", "image", "Beach Day.JPG", []byte("x"), now)
	if !strings.HasPrefix(key, "image/202506/") || !strings.HasSuffix(key, ".jpg") {
		t.Errorf("default key = %q", key)
	}

	key = RenderKey("/uploads//{Y}/{d}/{md5-16}.{ext}", "image", "a.png", []byte("hello"), now)
	if key != "uploads/2025/06/5d41402abc4b2a76.png" {
		t.Errorf("templated key = %q", key)
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		size    int64
		allowed []string
		maxMB   int
		wantErr bool
	}{
		{"allowed", "a.jpg", 10, []string{"jpg", ".png"}, 1, false},
		{"dotted allow list", "a.png", 10, []string{"jpg", ".png"}, 1, false},
		{"too big", "a.jpg", 2 << 20, nil, 1, true},
		{"wrong format", "a.gif", 10, []string{"jpg"}, 0, true},
		{"no extension", "README", 10, nil, 0, true},
		{"open allow list", "clip.mp4", 10, nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.file, tt.size, tt.allowed, tt.maxMB)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir(), "/api/v1/files")
	if err != nil {
		t.Fatal(err)
	}

	obj, err := l.Put(ctx, "image/202506/abc.jpg", []byte("data"), "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	if obj.URL != "/api/v1/files/image/202506/abc.jpg" {
		t.Errorf("URL = %q", obj.URL)
	}
	key, ok := l.KeyFromURL("http://localhost:2333" + obj.URL)
	if !ok || key != obj.Key {
		t.Errorf("KeyFromURL = %q %v", key, ok)
	}
	path, _ := l.Path(obj.Key)
	if b, err := os.ReadFile(path); err != nil || string(b) != "data" {
		t.Errorf("file = %q %v", b, err)
	}

	if _, err := l.Put(ctx, "../escape.txt", nil, ""); err == nil {
		t.Error("unsafe key accepted")
	}
	if err := l.Delete(ctx, obj.Key); err != nil {
		t.Fatal(err)
	}
	if err := l.Delete(ctx, obj.Key); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestS3PublicURL(t *testing.T) {
	tests := []struct {
		opts S3Options
		want string
	}{
		{S3Options{Bucket: "b", Region: "ap-south-1", AccessKeyID: "k", SecretAccessKey: "s"}, "https://b.s3.ap-south-1.amazonaws.com/x.jpg"},
		{S3Options{Bucket: "b", Endpoint: "https://r2.example.com", PathStyle: true, AccessKeyID: "k", SecretAccessKey: "s"}, "https://r2.example.com/b/x.jpg"},
		{S3Options{Bucket: "b", Endpoint: "https://r2.example.com", AccessKeyID: "k", SecretAccessKey: "s"}, "https://b.r2.example.com/x.jpg"},
		{S3Options{Bucket: "b", CustomDomain: "https://cdn.example.com/", AccessKeyID: "k", SecretAccessKey: "s"}, "https://cdn.example.com/x.jpg"},
	}
	for _, tt := range tests {
		s, err := NewS3(tt.opts)
		if err != nil {
			t.Fatal(err)
		}
		if got := s.publicURL("x.jpg"); got != tt.want {
			t.Errorf("publicURL = %q, want %q", got, tt.want)
		}
		if key, ok := s.KeyFromURL(tt.want); !ok || key != "x.jpg" {
			t.Errorf("KeyFromURL(%q) = %q %v", tt.want, key, ok)
		}
	}

	if _, err := NewS3(S3Options{Bucket: "b"}); err == nil {
		t.Error("missing credentials accepted")
	}
}
