package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/pkg/jwt"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

const (
	ContextKeyUser    = "admin_user"
	ContextKeyTokenID = "token_id"

	// TokenCookie carries the session token for the dashboard.
	TokenCookie = "crm_token"
)

// Revocations reports tokens invalidated by logout before they expire.
type Revocations interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

// Auth returns a middleware that requires a valid session token.
func Auth(revoked Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ValidateToken(c.Request.Context(), revoked, ExtractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUser, claims.Username)
		c.Set(ContextKeyTokenID, claims.ID)
		c.Next()
	}
}

// ValidateToken parses rawToken and checks it has not been revoked.
func ValidateToken(ctx context.Context, revoked Revocations, rawToken string) (*jwt.Claims, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}
	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	if revoked != nil && claims.ID != "" && revoked.IsRevoked(ctx, claims.ID) {
		return nil, errors.New("session revoked")
	}
	return claims, nil
}

// CurrentUser returns the authenticated admin name.
func CurrentUser(c *gin.Context) string {
	return c.GetString(ContextKeyUser)
}

// CurrentTokenID returns the id of the token used for this request.
func CurrentTokenID(c *gin.Context) string {
	return c.GetString(ContextKeyTokenID)
}

// IsAuthenticated returns true if Auth accepted the request.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c) != ""
}

// ExtractToken reads the token from the Authorization header, falling back
// to the session cookie.
func ExtractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	if raw, err := c.Cookie(TokenCookie); err == nil {
		return NormalizeToken(raw)
	}
	return ""
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
