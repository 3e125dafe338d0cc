package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/pkg/nativelog"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func allow(c *gin.Context) { c.Next() }

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group(""), allow)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		db   Pinger
		want int
	}{
		{"no checks", nil, http.StatusOK},
		{"database up", pinger{}, http.StatusOK},
		{"database down", pinger{errors.New("refused")}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(NewHandler(tt.db, nil, t.TempDir()))
			if w := serve(r, http.MethodGet, "/health"); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestLogFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)
	today := nativelog.TodayFilename(now)
	for _, name := range []string{today, "old.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("line\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	h := NewHandler(nil, nil, dir)
	h.now = func() time.Time { return now }
	r := newRouter(h)

	if w := serve(r, http.MethodGet, "/health/logs"); w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/health/logs/old.log"); w.Code != http.StatusOK || w.Body.String() != "line\n" {
		t.Fatalf("read = %d %q", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodGet, "/health/logs/passwd"); w.Code != http.StatusBadRequest {
		t.Errorf("non-log file = %d", w.Code)
	}

	if w := serve(r, http.MethodDelete, "/health/logs/old.log"); w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, "old.log")); !os.IsNotExist(err) {
		t.Errorf("old.log still present: %v", err)
	}

	if w := serve(r, http.MethodDelete, "/health/logs/"+today); w.Code != http.StatusNoContent {
		t.Fatalf("delete today = %d", w.Code)
	}
	info, err := os.Stat(filepath.Join(dir, today))
	if err != nil || info.Size() != 0 {
		t.Errorf("today's log should be truncated: %v %v", info, err)
	}
}
