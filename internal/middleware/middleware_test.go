package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/pkg/jwt"
	"go.uber.org/zap/zaptest"
)

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, id string) bool { return r[id] }

func newAuthRouter(revoked Revocations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(revoked), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c))
	})
	return r
}

func TestAuth(t *testing.T) {
	jwt.SetSecret("middleware-test")
	token, err := jwt.Sign("admin", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, _ := jwt.Parse(token)

	tests := []struct {
		name    string
		revoked revokedSet
		prepare func(*http.Request)
		want    int
	}{
		{"no token", nil, func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer", nil, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"cookie", nil, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookie, Value: token}) }, http.StatusOK},
		{"garbage", nil, func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"revoked", revokedSet{claims.ID: true}, func(r *http.Request) { r.Header.Set("Authorization", token) }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var revoked Revocations
			if tt.revoked != nil {
				revoked = tt.revoked
			}
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			newAuthRouter(revoked).ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && w.Body.String() != "admin" {
				t.Errorf("user = %q", w.Body.String())
			}
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	for in, want := range map[string]string{
		"":            "",
		"  abc ":      "abc",
		"Bearer abc":  "abc",
		"bearer  abc": "abc",
	} {
		if got := NormalizeToken(in); got != want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zaptest.NewLogger(t)))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
}

func TestNilRedisDisablesGuards(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Idempotence(nil), RateLimit(nil, "login", 1, time.Minute, nil))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("attempt %d: status = %d", i, w.Code)
		}
	}
}

func TestIdempotenceKeyBoundsChunkedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	keyOf := func(payload []byte) (string, []byte) {
		t.Helper()
		// MultiReader hides the length, so the request is sent chunked.
		req := httptest.NewRequest(http.MethodPost, "/api/v1/activities", io.MultiReader(bytes.NewReader(payload)))
		if req.ContentLength != -1 {
			t.Fatalf("ContentLength = %d, want -1", req.ContentLength)
		}
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		key, err := resolveIdempotenceKey(c)
		if err != nil {
			t.Fatal(err)
		}
		rest, err := io.ReadAll(c.Request.Body)
		if err != nil {
			t.Fatal(err)
		}
		return key, rest
	}

	small1, body := keyOf([]byte(`{"title":"Rafting"}`))
	if string(body) != `{"title":"Rafting"}` {
		t.Errorf("small body not replayed: %q", body)
	}
	small2, _ := keyOf([]byte(`{"title":"Trek"}`))
	if small1 == small2 {
		t.Error("small bodies share a key")
	}

	large := bytes.Repeat([]byte("a"), idempotenceMaxBody+10)
	big1, body := keyOf(large)
	if !bytes.Equal(body, large) {
		t.Errorf("large body replayed %d of %d bytes", len(body), len(large))
	}
	big2, _ := keyOf(bytes.Repeat([]byte("b"), idempotenceMaxBody+10))
	if big1 != big2 {
		t.Error("oversized payload was keyed")
	}
}
