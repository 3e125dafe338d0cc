// Package health reports whether the backing services answer and exposes
// the daily log files to the admin.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/tripdesk/crm-admin/internal/pkg/nativelog"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type logItem struct {
	Size     string `json:"size"`
	Filename string `json:"filename"`
	Created  int64  `json:"created"`
}

type Handler struct {
	db     Pinger
	rdb    *redis.Client
	logDir string
	now    func() time.Time
}

// NewHandler checks db and rdb when they are set. logDir defaults to the
// native log directory.
func NewHandler(db Pinger, rdb *redis.Client, logDir string) *Handler {
	if logDir == "" {
		logDir = nativelog.ResolveDir("")
	}
	return &Handler{db: db, rdb: rdb, logDir: logDir, now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/health", h.status)

	logs := rg.Group("/health/logs", authMW)
	logs.GET("", h.listLogs)
	logs.GET("/:filename", h.readLog)
	logs.DELETE("/:filename", h.deleteLog)
}

func (h *Handler) status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	ok := true
	if h.db != nil {
		up := h.db.PingContext(ctx) == nil
		checks["database"] = up
		ok = ok && up
	}
	if h.rdb != nil {
		up := h.rdb.Ping(ctx).Err() == nil
		checks["redis"] = up
		ok = ok && up
	}

	code, status := http.StatusOK, "ok"
	if !ok {
		code, status = http.StatusServiceUnavailable, "degraded"
	}
	checks["status"] = status
	c.JSON(code, checks)
}

func (h *Handler) listLogs(c *gin.Context) {
	entries, err := os.ReadDir(h.logDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			response.OK(c, []logItem{})
			return
		}
		response.InternalError(c, err)
		return
	}

	items := make([]logItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, logItem{
			Size:     formatByteSize(info.Size()),
			Filename: entry.Name(),
			Created:  info.ModTime().UnixMilli(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Created > items[j].Created })
	response.OK(c, items)
}

func (h *Handler) readLog(c *gin.Context) {
	path, ok := h.logPath(c)
	if !ok {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		response.NotFoundMsg(c, "log file not exists")
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

// deleteLog removes a log file. Today's file is still being written, so it
// is truncated instead.
func (h *Handler) deleteLog(c *gin.Context) {
	path, ok := h.logPath(c)
	if !ok {
		return
	}
	today := filepath.Join(h.logDir, nativelog.TodayFilename(h.now()))
	if filepath.Clean(path) == filepath.Clean(today) {
		if err := os.WriteFile(path, nil, 0o644); err != nil && !errors.Is(err, os.ErrNotExist) {
			response.InternalError(c, err)
			return
		}
		response.NoContent(c)
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) logPath(c *gin.Context) (string, bool) {
	name := filepath.Base(strings.TrimSpace(c.Param("filename")))
	if name == "." || name == string(filepath.Separator) || !strings.HasSuffix(name, ".log") {
		response.BadRequest(c, "filename must name a .log file")
		return "", false
	}
	return filepath.Join(h.logDir, name), true
}

func formatByteSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
