package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/middleware"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	revoked := NewRevocations(nil)
	svc := NewService(Account{Username: "admin", PasswordHash: string(hash)}, time.Hour, revoked, zaptest.NewLogger(t))
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), middleware.Auth(revoked))
	return r
}

func login(r *gin.Engine, user, pass string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(LoginDTO{Username: user, Password: pass})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	r := newRouter(t)
	tests := []struct {
		name string
		user string
		pass string
		want int
	}{
		{"ok", "admin", "s3cret", http.StatusOK},
		{"wrong password", "admin", "nope", http.StatusUnauthorized},
		{"wrong user", "root", "s3cret", http.StatusUnauthorized},
		{"missing password", "admin", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := login(r, tt.user, tt.pass); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestSessionCookieAndLogout(t *testing.T) {
	r := newRouter(t)
	w := login(r, "admin", "s3cret")
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.TokenCookie || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}

	call := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(cookies[0])
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w = call(http.MethodGet, "/api/v1/auth/me")
	var me meResponse
	_ = json.Unmarshal(w.Body.Bytes(), &me)
	if w.Code != http.StatusOK || me.Username != "admin" || me.TokenID == "" {
		t.Fatalf("me = %d %+v", w.Code, me)
	}
	if w := call(http.MethodPost, "/api/v1/auth/logout"); w.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", w.Code)
	}
	if w := call(http.MethodGet, "/api/v1/auth/me"); w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token accepted: %d", w.Code)
	}
}

func TestRevocationsExpire(t *testing.T) {
	ctx := context.Background()
	rv := NewRevocations(nil)
	_ = rv.Revoke(ctx, "a", time.Hour)
	_ = rv.Revoke(ctx, "b", -time.Second)
	if !rv.IsRevoked(ctx, "a") || rv.IsRevoked(ctx, "b") || rv.IsRevoked(ctx, "c") {
		t.Errorf("revocations = %v", rv.mem)
	}
}
