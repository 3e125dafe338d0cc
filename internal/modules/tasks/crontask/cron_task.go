package crontask

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pkgcron "github.com/tripdesk/crm-admin/internal/pkg/cron"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

// Handler wraps the scheduler for HTTP access.
type Handler struct {
	sched *pkgcron.Scheduler
}

func NewHandler(sched *pkgcron.Scheduler) *Handler {
	return &Handler{sched: sched}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/tasks", authMW)
	g.GET("", h.list)
	g.GET("/:name", h.get)
	g.POST("/:name/run", h.run)
}

// GET /tasks
func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.sched.List())
}

// GET /tasks/:name
func (h *Handler) get(c *gin.Context) {
	result, err := h.sched.GetTask(c.Param("name"))
	if err != nil {
		response.NotFoundMsg(c, "task not found")
		return
	}
	response.OK(c, result)
}

// POST /tasks/:name/run triggers a job in the background.
func (h *Handler) run(c *gin.Context) {
	if err := h.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, "task not found")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "task triggered"})
}
