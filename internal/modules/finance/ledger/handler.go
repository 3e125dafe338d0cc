package ledger

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc  *Service
	crud *resource.Handler[models.LedgerModel]
}

func NewHandler(svc *Service, maxFileBytes int64) *Handler {
	return &Handler{svc: svc, crud: resource.NewHandler(svc.Service, maxFileBytes)}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := h.crud.Group(rg, authMW)
	g.GET("/summary", h.summary)
	g.GET("/export", h.export)
	g.GET("/:id/invoice", h.invoice)
	h.crud.Mount(g)
}

// GET /ledgers/summary?party=&from=&to=
func (h *Handler) summary(c *gin.Context) {
	var f Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	entries, err := h.svc.Entries(c.Request.Context(), f)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, Summarize(entries))
}

// GET /ledgers/export?party=&from=&to= (xlsx download)
func (h *Handler) export(c *gin.Context) {
	var f Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	entries, err := h.svc.Entries(c.Request.Context(), f)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, entries); err != nil {
		response.InternalError(c, err)
		return
	}
	filename := fmt.Sprintf("ledger_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GET /ledgers/:id/invoice
func (h *Handler) invoice(c *gin.Context) {
	inv, err := h.svc.Invoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if inv == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, inv)
}
