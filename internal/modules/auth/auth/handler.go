package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/middleware"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

type Handler struct {
	svc        *Service
	loginGuard []gin.HandlerFunc
}

// NewHandler serves /auth. loginGuard runs before the login handler, e.g. a
// rate limiter.
func NewHandler(svc *Service, loginGuard ...gin.HandlerFunc) *Handler {
	return &Handler{svc: svc, loginGuard: loginGuard}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", append(h.loginGuard, h.login)...)
	a.POST("/logout", authMW, h.logout)
	a.GET("/me", authMW, h.me)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, expires, err := h.svc.Login(dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, errBadCredentials) {
			response.UnauthorizedMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	setTokenCookie(c, token, int(h.svc.TTL().Seconds()))
	response.OK(c, loginResponse{Token: token, Expires: expires})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.CurrentTokenID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	setTokenCookie(c, "", -1)
	response.NoContent(c)
}

func (h *Handler) me(c *gin.Context) {
	response.OK(c, meResponse{
		Username: middleware.CurrentUser(c),
		TokenID:  middleware.CurrentTokenID(c),
	})
}

func setTokenCookie(c *gin.Context, token string, maxAge int) {
	secure := c.Request.TLS != nil
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", secure, true)
}
