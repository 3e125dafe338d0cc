package app

import (
	"strings"
	"time"

	"github.com/tripdesk/crm-admin/internal/config"
	jwtpkg "github.com/tripdesk/crm-admin/internal/pkg/jwt"
	"go.uber.org/zap"
)

func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) {
	if secret := strings.TrimSpace(cfg.Auth.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("auth.jwt_secret is empty, using built-in default secret")
	}
	if cfg.Auth.PasswordHash == "" {
		logger.Warn("auth.password_hash is empty, admin login is disabled")
	}
	time.Local = cfg.Location()
}

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Truncate(time.Second).String()
	}
	if d < time.Hour {
		return d.Truncate(time.Minute).String()
	}
	if d < 24*time.Hour {
		return d.Truncate(time.Hour).String()
	}
	return d.Truncate(24 * time.Hour).String()
}
