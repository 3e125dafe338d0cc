package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/config"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Auth.Username = "admin"
	cfg.Auth.PasswordHash = string(hash)
	a := Build(zaptest.NewLogger(t), cfg, Options{
		Stores: MemoryStores(),
		Blobs:  blob.NewMemory("/api/v1/objects"),
	})
	t.Cleanup(a.Shutdown)
	return a
}

func do(a *App, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, a *App) string {
	t.Helper()
	w := do(a, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "s3cret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("login body %s: %v", w.Body.String(), err)
	}
	return out.Token
}

func TestRoutesRequireAuth(t *testing.T) {
	a := newTestApp(t)
	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/v1", http.StatusOK},
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/sitemap.xml", http.StatusOK},
		{http.MethodGet, "/api/v1/health/logs", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/activities", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/itineraries", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/forms", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/tasks", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if w := do(a, tt.method, tt.path, "", nil); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestAdminFlow(t *testing.T) {
	a := newTestApp(t)
	token := loginToken(t, a)

	w := do(a, http.MethodPost, "/api/v1/activities", token, map[string]any{
		"title":       "Paragliding",
		"category":    "adventure",
		"location":    "Bir",
		"price":       3500,
		"description": "<p>Tandem flight</p>",
		"images":      []string{"/api/v1/objects/bir.jpg"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create activity = %d: %s", w.Code, w.Body.String())
	}

	w = do(a, http.MethodPost, "/api/v1/itineraries", token, map[string]any{
		"title":       "Spiti Valley Circuit",
		"destination": "Himachal",
		"trip_start":  "2025-03-01",
		"trip_end":    "2025-03-05",
		"overview":    "<p>Cold desert</p>",
		"images":      []string{"/api/v1/objects/spiti.jpg"},
		"daywise":     []any{map[string]any{"title": "Arrival"}},
		"packages": map[string]any{
			"base_packages": []any{map[string]any{"type": "Twin sharing", "original_price": 24000}},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create itinerary = %d: %s", w.Code, w.Body.String())
	}
	var it struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &it); err != nil || it.ID == "" {
		t.Fatalf("itinerary body %s: %v", w.Body.String(), err)
	}

	// The same editor action twice is two edits.
	for range 2 {
		if w := do(a, http.MethodPost, "/api/v1/itineraries/"+it.ID+"/days", token, nil); w.Code != http.StatusOK {
			t.Fatalf("add day = %d: %s", w.Code, w.Body.String())
		}
	}

	w = do(a, http.MethodGet, "/api/v1/forms", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("forms = %d", w.Code)
	}

	w = do(a, http.MethodGet, "/api/v1/tasks", token, nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("cleanup_orphan_files")) {
		t.Fatalf("tasks = %d: %s", w.Code, w.Body.String())
	}
}
