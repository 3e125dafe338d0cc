package resource

import (
	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/pkg/pagination"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

// Handler serves the CRUD routes of one resource.
type Handler[T any] struct {
	svc          *Service[T]
	maxFileBytes int64
}

func NewHandler[T any](svc *Service[T], maxFileBytes int64) *Handler[T] {
	return &Handler[T]{svc: svc, maxFileBytes: maxFileBytes}
}

// Service returns the wrapped service.
func (h *Handler[T]) Service() *Service[T] { return h.svc }

// Group returns the router group of the resource with authMW applied.
func (h *Handler[T]) Group(rg *gin.RouterGroup, authMW gin.HandlerFunc) *gin.RouterGroup {
	return rg.Group("/"+h.svc.schema.Name, authMW)
}

func (h *Handler[T]) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	h.Mount(h.Group(rg, authMW))
}

// Mount registers the CRUD routes on g.
func (h *Handler[T]) Mount(g *gin.RouterGroup) {
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler[T]) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	response.Paged(c, items, pag)
}

func (h *Handler[T]) get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}

func (h *Handler[T]) create(c *gin.Context) {
	raw, err := Bind(c, h.svc.schema.Fields, h.maxFileBytes)
	if err != nil {
		WriteError(c, err)
		return
	}
	item, err := h.svc.Create(c.Request.Context(), raw)
	if err != nil {
		WriteError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler[T]) update(c *gin.Context) {
	raw, err := Bind(c, h.svc.schema.Fields, h.maxFileBytes)
	if err != nil {
		WriteError(c, err)
		return
	}
	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), raw)
	if err != nil {
		WriteError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}

func (h *Handler[T]) delete(c *gin.Context) {
	ok, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}
	response.NoContent(c)
}
