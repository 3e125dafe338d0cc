package itinerary

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/editor"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

type Handler struct {
	svc  *Service
	crud *resource.Handler[models.ItineraryModel]
}

func NewHandler(svc *Service, maxFileBytes int64) *Handler {
	return &Handler{svc: svc, crud: resource.NewHandler(svc.Service, maxFileBytes)}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := h.crud.Group(rg, authMW)
	g.POST("/batches/generate", h.preview)
	h.crud.Mount(g)

	mountList(g.Group("/:id/days"), h.svc, dayList)
	g.POST("/:id/days/:item/meals/:name", h.toggle(h.svc.ToggleMeal))
	g.POST("/:id/days/:item/stays/:name", h.toggle(h.svc.ToggleStay))
	g.PATCH("/:id/days/:item/meals/:name", h.setImages(h.svc.SetMealImages))
	g.PATCH("/:id/days/:item/stays/:name", h.setImages(h.svc.SetStayImages))
	mountList(g.Group("/:id/hotels"), h.svc, hotelList)
	batches := g.Group("/:id/batches")
	mountList(batches, h.svc, batchList)
	batches.POST("/generate", h.generate)

	p := g.Group("/:id/packages/:section")
	p.POST("", h.addPackage)
	p.PATCH("/:item", h.updatePackage)
	p.DELETE("/:item", h.removePackage)
	p.POST("/:item/move/:dir", h.movePackage)

	g.PUT("/:id/seo", h.updateSEO)
}

// mountList registers the list editor routes of c on g.
func mountList[T editor.Record[T]](g *gin.RouterGroup, svc *Service, c collection[T]) {
	g.POST("", func(ctx *gin.Context) {
		it, err := c.Add(ctx.Request.Context(), svc, ctx.Param("id"))
		reply(ctx, it, err, c.View)
	})
	g.PATCH("/:item", func(ctx *gin.Context) {
		var fields FieldUpdate
		if err := ctx.ShouldBindJSON(&fields); err != nil {
			response.BadRequest(ctx, err.Error())
			return
		}
		it, err := c.Update(ctx.Request.Context(), svc, ctx.Param("id"), ctx.Param("item"), fields)
		reply(ctx, it, err, c.View)
	})
	g.DELETE("/:item", func(ctx *gin.Context) {
		it, err := c.Remove(ctx.Request.Context(), svc, ctx.Param("id"), ctx.Param("item"))
		reply(ctx, it, err, c.View)
	})
	g.POST("/:item/move/:dir", func(ctx *gin.Context) {
		up, ok := direction(ctx)
		if !ok {
			return
		}
		it, err := c.Move(ctx.Request.Context(), svc, ctx.Param("id"), ctx.Param("item"), up)
		reply(ctx, it, err, c.View)
	})
}

func direction(c *gin.Context) (up bool, ok bool) {
	switch c.Param("dir") {
	case "up":
		return true, true
	case "down":
		return false, true
	}
	response.BadRequest(c, "direction must be up or down")
	return false, false
}

// reply writes the updated itinerary with the view of the edited list.
func reply[V any](c *gin.Context, it *models.ItineraryModel, err error, view func(*models.ItineraryModel) V) {
	if err != nil {
		resource.WriteError(c, err)
		return
	}
	if it == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, editorResponse{Itinerary: it, View: view(it)})
}

func (h *Handler) toggle(fn func(ctx context.Context, id, day, name string) (*models.ItineraryModel, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		it, err := fn(c.Request.Context(), c.Param("id"), c.Param("item"), c.Param("name"))
		reply(c, it, err, dayList.View)
	}
}

// PATCH .../meals/:name and .../stays/:name take {"images": [...]}.
func (h *Handler) setImages(fn func(ctx context.Context, id, day, name string, images []string) (*models.ItineraryModel, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Images []string `json:"images" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		it, err := fn(c.Request.Context(), c.Param("id"), c.Param("item"), c.Param("name"), body.Images)
		reply(c, it, err, dayList.View)
	}
}

// POST /itineraries/batches/generate
func (h *Handler) preview(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.svc.Preview(req)
	if err != nil {
		resource.WriteError(c, err)
		return
	}
	response.OK(c, res)
}

// POST /itineraries/:id/batches/generate
func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	it, res, err := h.svc.AppendGenerated(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resource.WriteError(c, err)
		return
	}
	if it == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{"itinerary": it, "generated": res, "view": batchList.View(it)})
}

func (h *Handler) addPackage(c *gin.Context) {
	it, err := h.svc.AddPackage(c.Request.Context(), c.Param("id"), c.Param("section"))
	reply(c, it, err, packagesView)
}

func (h *Handler) updatePackage(c *gin.Context) {
	var fields FieldUpdate
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	it, err := h.svc.UpdatePackage(c.Request.Context(), c.Param("id"), c.Param("section"), c.Param("item"), fields)
	reply(c, it, err, packagesView)
}

func (h *Handler) removePackage(c *gin.Context) {
	it, err := h.svc.RemovePackage(c.Request.Context(), c.Param("id"), c.Param("section"), c.Param("item"))
	reply(c, it, err, packagesView)
}

func (h *Handler) movePackage(c *gin.Context) {
	up, ok := direction(c)
	if !ok {
		return
	}
	it, err := h.svc.MovePackage(c.Request.Context(), c.Param("id"), c.Param("section"), c.Param("item"), up)
	reply(c, it, err, packagesView)
}

// PUT /itineraries/:id/seo
func (h *Handler) updateSEO(c *gin.Context) {
	var fields FieldUpdate
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	it, err := h.svc.UpdateSEO(c.Request.Context(), c.Param("id"), fields)
	reply(c, it, err, func(m *models.ItineraryModel) models.SEOData { return m.SEO.Data() })
}
