// Package slugtracker keeps retired slugs pointing at their record so
// public links survive a rename.
package slugtracker

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
	"github.com/tripdesk/crm-admin/internal/store"
)

// Service provides slug tracking operations.
type Service struct {
	repo store.Repository[models.SlugTrackerModel]
}

func NewService(repo store.Repository[models.SlugTrackerModel]) *Service {
	return &Service{repo: repo}
}

func (s *Service) find(ctx context.Context, match func(models.SlugTrackerModel) bool) ([]models.SlugTrackerModel, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.SlugTrackerModel
	for _, t := range all {
		if match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Track records that oldSlug of kind now points to targetID.
func (s *Service) Track(ctx context.Context, oldSlug, kind, targetID string) error {
	oldSlug = strings.TrimSpace(oldSlug)
	if oldSlug == "" {
		return nil
	}
	existing, err := s.find(ctx, func(t models.SlugTrackerModel) bool {
		return t.Slug == oldSlug && t.Type == kind
	})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		t := existing[0]
		t.TargetID = targetID
		return s.repo.Save(ctx, &t)
	}
	return s.repo.Create(ctx, &models.SlugTrackerModel{Slug: oldSlug, Type: kind, TargetID: targetID})
}

// FindBySlug returns the record an old slug points to, or "" when unknown.
func (s *Service) FindBySlug(ctx context.Context, slug, kind string) (string, error) {
	found, err := s.find(ctx, func(t models.SlugTrackerModel) bool {
		return t.Slug == slug && t.Type == kind
	})
	if err != nil || len(found) == 0 {
		return "", err
	}
	return found[0].TargetID, nil
}

// Forget drops every retired slug of a deleted record.
func (s *Service) Forget(ctx context.Context, kind, targetID string) error {
	found, err := s.find(ctx, func(t models.SlugTrackerModel) bool {
		return t.Type == kind && t.TargetID == targetID
	})
	if err != nil {
		return err
	}
	for _, t := range found {
		if _, err := s.repo.Delete(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes one retired slug. It reports whether it existed.
func (s *Service) Remove(ctx context.Context, slug, kind string) (bool, error) {
	found, err := s.find(ctx, func(t models.SlugTrackerModel) bool {
		return t.Slug == slug && t.Type == kind
	})
	if err != nil || len(found) == 0 {
		return false, err
	}
	return s.repo.Delete(ctx, found[0].ID)
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/slug-tracker")
	g.GET("/redirect/:type/:slug", h.lookup)
	g.GET("/:type/:slug", authMW, h.lookup)
	g.DELETE("/:type/:slug", authMW, h.remove)
}

// GET /slug-tracker/redirect/:type/:slug is public so the website can
// follow renamed pages.
func (h *Handler) lookup(c *gin.Context) {
	kind, slug := c.Param("type"), c.Param("slug")
	targetID, err := h.svc.FindBySlug(c.Request.Context(), slug, kind)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if targetID == "" {
		response.NotFoundMsg(c, "slug not tracked")
		return
	}
	response.OK(c, gin.H{"target_id": targetID, "type": kind, "slug": slug})
}

func (h *Handler) remove(c *gin.Context) {
	ok, err := h.svc.Remove(c.Request.Context(), c.Param("slug"), c.Param("type"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFoundMsg(c, "slug not tracked")
		return
	}
	response.NoContent(c)
}
