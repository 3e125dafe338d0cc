package crontask

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	pkgcron "github.com/tripdesk/crm-admin/internal/pkg/cron"
	"go.uber.org/zap/zaptest"
)

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sched := pkgcron.New(zaptest.NewLogger(t))
	ran := make(chan struct{}, 1)
	sched.Register(pkgcron.Job{
		Name:     "sweep",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			ran <- struct{}{}
			return nil
		},
	})
	r := gin.New()
	NewHandler(sched).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/tasks", http.StatusOK},
		{http.MethodGet, "/api/v1/tasks/sweep", http.StatusOK},
		{http.MethodGet, "/api/v1/tasks/nope", http.StatusNotFound},
		{http.MethodPost, "/api/v1/tasks/nope/run", http.StatusNotFound},
		{http.MethodPost, "/api/v1/tasks/sweep/run", http.StatusAccepted},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("triggered job did not run")
	}
}
