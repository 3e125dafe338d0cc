// Package forms serves the field descriptors and grid layout of every admin
// form, and validates submissions without saving them.
package forms

import (
	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

// Source is a resource service exposing its form.
type Source interface {
	Describe() resource.Form
	Forms() *form.Registry
	Validate(raw map[string]any) (form.Values, error)
}

type summary struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type detail struct {
	resource.Form
	Layout []form.Row `json:"layout"`
}

type Handler struct {
	order        []string
	sources      map[string]Source
	maxFileBytes int64
}

func NewHandler(maxFileBytes int64, sources ...Source) *Handler {
	h := &Handler{sources: make(map[string]Source, len(sources)), maxFileBytes: maxFileBytes}
	for _, s := range sources {
		name := s.Describe().Name
		if _, dup := h.sources[name]; !dup {
			h.order = append(h.order, name)
		}
		h.sources[name] = s
	}
	return h
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/forms", authMW)
	g.GET("", h.list)
	g.GET("/:name", h.get)
	g.POST("/:name/validate", h.validate)
}

func (h *Handler) list(c *gin.Context) {
	items := make([]summary, 0, len(h.order))
	for _, name := range h.order {
		f := h.sources[name].Describe()
		items = append(items, summary{Name: f.Name, Title: f.Title})
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	src, ok := h.sources[c.Param("name")]
	if !ok {
		response.NotFoundMsg(c, "form not found")
		return
	}
	f := src.Describe()
	response.OK(c, detail{Form: f, Layout: src.Forms().Layout(f.Fields)})
}

// POST /forms/:name/validate answers 200 when the submission would be
// accepted and 422 with per-field messages otherwise.
func (h *Handler) validate(c *gin.Context) {
	src, ok := h.sources[c.Param("name")]
	if !ok {
		response.NotFoundMsg(c, "form not found")
		return
	}
	raw, err := resource.Bind(c, src.Describe().Fields, h.maxFileBytes)
	if err != nil {
		resource.WriteError(c, err)
		return
	}
	if _, err := src.Validate(raw); err != nil {
		resource.WriteError(c, err)
		return
	}
	response.OK(c, gin.H{"valid": true})
}
