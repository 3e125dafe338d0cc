package servertime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/pkg/datefmt"
)

type Handler struct {
	loc *time.Location
	now func() time.Time
}

// NewHandler reports the clock in loc, the zone batch dates are written in.
func NewHandler(loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{loc: loc, now: time.Now}
}

// RegisterRoutes mounts the clock sync endpoint. t2 and t3 are the receive
// and send times in Unix milliseconds.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, _ gin.HandlerFunc) {
	rg.GET("/server-time", func(c *gin.Context) {
		t2 := h.now()
		c.JSON(http.StatusOK, gin.H{
			"t2":       t2.UnixMilli(),
			"timezone": h.loc.String(),
			"local":    datefmt.Format(t2, h.loc),
			"t3":       h.now().UnixMilli(),
		})
	})
}
