package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	previews *imageupload.MemoryPreviews
	blobs    *blob.Memory
	sessions *Sessions
	router   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := &fixture{previews: imageupload.NewMemoryPreviews(), blobs: blob.NewMemory("/api/v1/objects")}
	f.sessions = NewSessions(f.previews, &imageupload.Uploader{Store: f.blobs}, zaptest.NewLogger(t))
	f.router = gin.New()
	NewHandler(f.sessions, 1<<20).RegisterRoutes(f.router.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	ct := "application/json"
	switch b := body.(type) {
	case nil:
	case string:
		mw := multipart.NewWriter(&buf)
		part, _ := mw.CreateFormFile("file", b)
		_, _ = part.Write([]byte("image bytes"))
		_ = mw.Close()
		ct = mw.FormDataContentType()
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	w, out := f.do(t, http.MethodPost, "/api/v1/uploads/sessions", openDTO{Type: "hotel", URLs: []string{"/api/v1/objects/old.jpg"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("open = %d: %s", w.Code, w.Body.String())
	}
	base := "/api/v1/uploads/sessions/" + out["id"].(string)

	if w, _ := f.do(t, http.MethodPost, base+"/slots/1", "lobby.jpg"); w.Code != http.StatusOK {
		t.Fatalf("select = %d: %s", w.Code, w.Body.String())
	}
	if f.previews.Outstanding() != 1 {
		t.Errorf("previews = %d, want 1", f.previews.Outstanding())
	}
	if w, _ := f.do(t, http.MethodPost, base+"/slots/5", "pool.jpg"); w.Code != http.StatusBadRequest {
		t.Errorf("out of range select = %d", w.Code)
	}

	w, out = f.do(t, http.MethodPost, base+"/commit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("commit = %d: %s", w.Code, w.Body.String())
	}
	urls := out["urls"].([]any)
	if len(urls) != 2 || urls[0] != "/api/v1/objects/old.jpg" || f.blobs.Len() != 1 {
		t.Errorf("urls = %v, stored = %d", urls, f.blobs.Len())
	}
	if f.previews.Outstanding() != 0 {
		t.Errorf("previews after commit = %d", f.previews.Outstanding())
	}

	if w, _ := f.do(t, http.MethodDelete, base, nil); w.Code != http.StatusNoContent {
		t.Errorf("close = %d", w.Code)
	}
	if w, _ := f.do(t, http.MethodGet, base, nil); w.Code != http.StatusNotFound {
		t.Errorf("get closed = %d", w.Code)
	}
}

func TestSingleSessionReplaces(t *testing.T) {
	f := newFixture(t)
	s, err := f.sessions.Open("banner", true, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.jpg", "b.jpg"} {
		if _, err := f.sessions.Select(s.ID, 3, &imageupload.File{Name: name, Data: []byte(name)}); err != nil {
			t.Fatal(err)
		}
	}
	v := s.View()
	if len(v.Slots) != 1 || v.Slots[0].Name != "b.jpg" || f.previews.Outstanding() != 1 {
		t.Errorf("view = %+v, previews = %d", v, f.previews.Outstanding())
	}
	if _, err := f.sessions.Remove(s.ID, 0); err != nil {
		t.Fatal(err)
	}
	if v := s.View(); len(v.Slots) != 1 || v.Slots[0].Pending || f.previews.Outstanding() != 0 {
		t.Errorf("after remove = %+v", v)
	}
}

func TestPreviews(t *testing.T) {
	f := newFixture(t)
	w, out := f.do(t, http.MethodPost, "/api/v1/previews", "room.png")
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	url := out["url"].(string)
	if w, _ := f.do(t, http.MethodGet, url, nil); w.Code != http.StatusOK || w.Body.String() != "image bytes" {
		t.Errorf("get = %d %q", w.Code, w.Body.String())
	}
	f.do(t, http.MethodDelete, url, nil)
	if w, _ := f.do(t, http.MethodGet, url, nil); w.Code != http.StatusNotFound {
		t.Errorf("released preview = %d", w.Code)
	}
}

func TestSweep(t *testing.T) {
	f := newFixture(t)
	s, _ := f.sessions.Open("image", false, nil)
	_, _ = f.sessions.Select(s.ID, 0, &imageupload.File{Name: "a.jpg", Data: []byte("a")})

	if n, _ := f.sessions.Sweep(time.Hour); n != 0 {
		t.Errorf("fresh session swept")
	}
	f.sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if n, _ := f.sessions.Sweep(time.Hour); n != 1 || f.sessions.Len() != 0 || f.previews.Outstanding() != 0 {
		t.Errorf("sweep = %d, sessions = %d, previews = %d", n, f.sessions.Len(), f.previews.Outstanding())
	}
}

func TestSweepKeepsPreviewsOfOpenSessions(t *testing.T) {
	f := newFixture(t)
	s, _ := f.sessions.Open("image", false, nil)
	if _, err := f.sessions.Select(s.ID, 0, &imageupload.File{Name: "a.jpg", Data: []byte("a")}); err != nil {
		t.Fatal(err)
	}
	orphan, err := f.previews.Acquire(&imageupload.File{Name: "b.jpg", Data: []byte("b")})
	if err != nil {
		t.Fatal(err)
	}

	later := time.Now().Add(time.Hour)
	f.sessions.now = func() time.Time { return later }
	if _, err := f.sessions.Get(s.ID); err != nil {
		t.Fatal(err)
	}

	n, dropped := f.sessions.Sweep(time.Millisecond)
	if n != 0 || dropped != 1 {
		t.Fatalf("sessions swept = %d, previews dropped = %d", n, dropped)
	}
	if _, err := f.previews.Open(orphan); err == nil {
		t.Error("unowned preview survived the sweep")
	}
	h, ok := s.editor.Preview(0)
	if !ok {
		t.Fatal("session lost its preview")
	}
	if _, err := f.previews.Open(h); err != nil {
		t.Errorf("open session shows released handle %q: %v", h, err)
	}
}
