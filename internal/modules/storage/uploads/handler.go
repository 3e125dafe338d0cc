package uploads

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

type openDTO struct {
	Type   string   `json:"type"`
	Single bool     `json:"single"`
	URLs   []string `json:"urls"`
}

type previewResult struct {
	Handle imageupload.Handle `json:"handle"`
	URL    string             `json:"url"`
}

type Handler struct {
	sessions     *Sessions
	maxFileBytes int64
}

func NewHandler(sessions *Sessions, maxFileBytes int64) *Handler {
	return &Handler{sessions: sessions, maxFileBytes: maxFileBytes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	s := rg.Group("/uploads/sessions", authMW)
	s.POST("", h.open)
	s.GET("/:id", h.get)
	s.POST("/:id/slots/:index", h.selectFile)
	s.DELETE("/:id/slots/:index", h.remove)
	s.POST("/:id/commit", h.commit)
	s.DELETE("/:id", h.close)

	p := rg.Group("/previews", authMW)
	p.POST("", h.createPreview)
	p.GET("/:handle", h.preview)
	p.DELETE("/:handle", h.releasePreview)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoSession), errors.Is(err, imageupload.ErrReleased):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, imageupload.ErrSlotIndex), errors.Is(err, imageupload.ErrClosed):
		response.BadRequest(c, err.Error())
	default:
		resource.WriteError(c, err)
	}
}

func (h *Handler) readFile(c *gin.Context) (*imageupload.File, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return nil, false
	}
	f, err := imageupload.ReadFile(fh, h.maxFileBytes)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return f, true
}

func slotIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "slot index must be a number")
		return 0, false
	}
	return i, true
}

func (h *Handler) open(c *gin.Context) {
	var dto openDTO
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	s, err := h.sessions.Open(dto.Type, dto.Single, dto.URLs)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, s.View())
}

func (h *Handler) get(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, s.View())
}

// POST /uploads/sessions/:id/slots/:index with a multipart "file". An index
// equal to the slot count appends.
func (h *Handler) selectFile(c *gin.Context) {
	i, ok := slotIndex(c)
	if !ok {
		return
	}
	f, ok := h.readFile(c)
	if !ok {
		return
	}
	s, err := h.sessions.Select(c.Param("id"), i, f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, s.View())
}

func (h *Handler) remove(c *gin.Context) {
	i, ok := slotIndex(c)
	if !ok {
		return
	}
	s, err := h.sessions.Remove(c.Param("id"), i)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, s.View())
}

func (h *Handler) commit(c *gin.Context) {
	urls, s, err := h.sessions.Commit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{"urls": urls, "session": s.View()})
}

func (h *Handler) close(c *gin.Context) {
	if !h.sessions.Close(c.Param("id")) {
		writeError(c, ErrNoSession)
		return
	}
	response.NoContent(c)
}

// POST /previews stores a file as a preview only.
func (h *Handler) createPreview(c *gin.Context) {
	f, ok := h.readFile(c)
	if !ok {
		return
	}
	handle, err := h.sessions.Previews().Acquire(f)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, previewResult{Handle: handle, URL: c.Request.URL.Path + "/" + string(handle)})
}

func (h *Handler) preview(c *gin.Context) {
	f, err := h.sessions.Previews().Open(imageupload.Handle(c.Param("handle")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, blob.DetectContentType(f.Name, f.Data, f.ContentType), f.Data)
}

func (h *Handler) releasePreview(c *gin.Context) {
	h.sessions.Previews().Release(imageupload.Handle(c.Param("handle")))
	response.NoContent(c)
}
