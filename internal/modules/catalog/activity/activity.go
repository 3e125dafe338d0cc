package activity

import (
	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/store"
	"gorm.io/datatypes"
)

var categories = []form.Option{
	{Label: "Adventure", Value: "adventure"},
	{Label: "Sightseeing", Value: "sightseeing"},
	{Label: "Cultural", Value: "cultural"},
	{Label: "Water sports", Value: "water_sports"},
	{Label: "Wildlife", Value: "wildlife"},
}

// Schema describes the activity form.
func Schema() resource.Schema[models.ActivityModel] {
	return resource.Schema[models.ActivityModel]{
		Name:  "activities",
		Title: "Activity",
		Fields: []form.FieldDescriptor{
			{Name: "title", Label: "Title", Type: form.TypeText, Required: true},
			{Name: "category", Label: "Category", Type: form.TypeSelect, Options: categories, Required: true},
			{Name: "location", Label: "Location", Type: form.TypeText, Required: true},
			{Name: "duration", Label: "Duration", Type: form.TypeText, Placeholder: "e.g. 3 hours"},
			{Name: "price", Label: "Price", Type: form.TypeNumber, Required: true},
			{Name: "is_active", Label: "Active", Type: form.TypeSwitch},
			{Name: "description", Label: "Description", Type: form.TypeRichText, Required: true},
			{Name: "images", Label: "Images", Type: form.TypeFile, Required: true},
			{Name: "seo", Label: "SEO", Type: form.TypeSEO},
		},
		Values: func(m *models.ActivityModel) form.Values {
			return form.Values{
				"title":       m.Title,
				"category":    m.Category,
				"location":    m.Location,
				"duration":    m.Duration,
				"price":       m.Price,
				"is_active":   m.IsActive,
				"description": m.Description,
				"images":      []string(m.Images),
				"seo":         m.SEO.Data(),
			}
		},
		Apply: func(m *models.ActivityModel, v form.Values) error {
			price := resource.Num(v, "price")
			if price < 0 {
				return models.ErrNegativeAmount
			}
			m.Title = resource.Str(v, "title")
			m.Category = resource.Str(v, "category")
			m.Location = resource.Str(v, "location")
			m.Duration = resource.Str(v, "duration")
			m.Price = price
			m.IsActive = resource.Flag(v, "is_active")
			m.Description = resource.Str(v, "description")
			m.Images = resource.List(v, "images")
			m.SEO = datatypes.NewJSONType(resource.SEO(v, "seo"))
			return nil
		},
	}
}

// NewHandler serves /activities.
func NewHandler(repo store.Repository[models.ActivityModel], deps resource.Deps, maxFileBytes int64) *resource.Handler[models.ActivityModel] {
	return resource.NewHandler(resource.NewService(repo, Schema(), deps), maxFileBytes)
}
