package heroslide

import (
	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/store"
)

// Schema describes the hero slide form. The banner holds a single image.
func Schema() resource.Schema[models.HeroSlideModel] {
	return resource.Schema[models.HeroSlideModel]{
		Name:  "hero-slides",
		Title: "Hero slide",
		Fields: []form.FieldDescriptor{
			{Name: "title", Label: "Title", Type: form.TypeText, Required: true},
			{Name: "subtitle", Label: "Subtitle", Type: form.TypeText},
			{Name: "cta_text", Label: "Button text", Type: form.TypeText},
			{Name: "cta_link", Label: "Button link", Type: form.TypeText, Placeholder: "/itineraries/goa"},
			{Name: "display_order", Label: "Order", Type: form.TypeNumber},
			{Name: "is_active", Label: "Active", Type: form.TypeSwitch},
			{Name: "image", Label: "Banner", Type: form.TypeFile, SingleImage: true, Required: true},
		},
		Values: func(m *models.HeroSlideModel) form.Values {
			return form.Values{
				"title":         m.Title,
				"subtitle":      m.Subtitle,
				"cta_text":      m.CTAText,
				"cta_link":      m.CTALink,
				"display_order": float64(m.DisplayOrder),
				"is_active":     m.IsActive,
				"image":         []string(m.Image),
			}
		},
		Apply: func(m *models.HeroSlideModel, v form.Values) error {
			m.Title = resource.Str(v, "title")
			m.Subtitle = resource.Str(v, "subtitle")
			m.CTAText = resource.Str(v, "cta_text")
			m.CTALink = resource.Str(v, "cta_link")
			m.DisplayOrder = int(resource.Num(v, "display_order"))
			m.IsActive = resource.Flag(v, "is_active")
			m.Image = resource.List(v, "image")
			return nil
		},
	}
}

// NewHandler serves /hero-slides.
func NewHandler(repo store.Repository[models.HeroSlideModel], deps resource.Deps, maxFileBytes int64) *resource.Handler[models.HeroSlideModel] {
	return resource.NewHandler(resource.NewService(repo, Schema(), deps), maxFileBytes)
}
