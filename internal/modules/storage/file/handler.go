package file

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	"github.com/tripdesk/crm-admin/internal/pkg/pagination"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

// Handler manages uploads, object serving and orphan cleanup.
type Handler struct {
	svc          *Service
	uploader     *imageupload.Uploader
	maxFileBytes int64
}

func NewHandler(svc *Service, uploader *imageupload.Uploader, maxFileBytes int64) *Handler {
	return &Handler{svc: svc, uploader: uploader, maxFileBytes: maxFileBytes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/files", authMW)
	g.POST("/upload", h.upload)
	g.GET("/orphans", h.listOrphans)
	g.GET("/orphans/count", h.countOrphans)
	g.POST("/orphans/cleanup", h.cleanupOrphans)
	g.DELETE("/orphans/batch", h.batchDeleteOrphans)

	o := rg.Group("/objects")
	o.GET("/*key", h.get)
	o.DELETE("/*key", authMW, h.delete)
}

func objectKey(c *gin.Context) (string, bool) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	return key, blob.SafeKey(key)
}

// GET /objects/*key serves objects of the local driver.
func (h *Handler) get(c *gin.Context) {
	local, ok := h.svc.Store().(*blob.Local)
	key, safe := objectKey(c)
	if !ok || !safe {
		response.NotFound(c)
		return
	}
	path, ok := local.Path(key)
	if !ok {
		response.NotFound(c)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000")
	c.File(path)
}

// POST /files/upload?type=image
func (h *Handler) upload(c *gin.Context) {
	typ := strings.ToLower(strings.TrimSpace(c.DefaultQuery("type", "image")))
	if !blob.IsSafeSegment(typ) {
		response.BadRequest(c, "invalid file type")
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	f, err := imageupload.ReadFile(fh, h.maxFileBytes)
	if err != nil {
		resource.WriteError(c, err)
		return
	}
	obj, err := h.uploader.Save(c.Request.Context(), typ, f)
	if err != nil {
		resource.WriteError(c, err)
		return
	}
	response.Created(c, uploadResult{
		URL:         obj.URL,
		Name:        f.Name,
		Key:         obj.Key,
		ContentType: obj.ContentType,
		Size:        obj.Size,
		Storage:     h.svc.Store().Driver(),
	})
}

// DELETE /objects/*key
func (h *Handler) delete(c *gin.Context) {
	key, ok := objectKey(c)
	if !ok {
		response.BadRequest(c, "invalid object key")
		return
	}
	found, err := h.svc.DeleteKey(c.Request.Context(), key)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFound(c)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listOrphans(c *gin.Context) {
	refs, pag, err := h.svc.Orphans(c.Request.Context(), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	items := make([]orphanItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, orphanItem{
			ID:       ref.ID,
			FileName: ref.FileName,
			FileURL:  ref.FileURL,
			Size:     ref.Size,
			Released: ref.UpdatedAt.Format(time.RFC3339),
		})
	}
	response.Paged(c, items, pag)
}

func (h *Handler) countOrphans(c *gin.Context) {
	n, err := h.svc.CountOrphans(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": n})
}

// POST /files/orphans/cleanup?max_age_minutes=60
func (h *Handler) cleanupOrphans(c *gin.Context) {
	maxAge := DefaultOrphanAge
	if raw := strings.TrimSpace(c.Query("max_age_minutes")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			maxAge = time.Duration(v) * time.Minute
		}
	}
	n, err := h.svc.Cleanup(c.Request.Context(), maxAge)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": n})
}

func (h *Handler) batchDeleteOrphans(c *gin.Context) {
	var dto batchOrphanDeleteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !dto.All && len(dto.IDs) == 0 {
		response.BadRequest(c, "ids or all is required")
		return
	}
	n, err := h.svc.DeleteOrphans(c.Request.Context(), dto.IDs, dto.All)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": n})
}
