// Package itinerary serves packaged trips: the form CRUD plus the nested
// collection editors (days, hotels, packages, batches, SEO) and the batch
// pattern generator.
package itinerary

import (
	"fmt"
	"time"

	"github.com/tripdesk/crm-admin/internal/editor"
	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/datefmt"
	"gorm.io/datatypes"
)

// Schema describes the itinerary form. Trip dates are read in loc.
func Schema(loc *time.Location) resource.Schema[models.ItineraryModel] {
	return resource.Schema[models.ItineraryModel]{
		Name:  "itineraries",
		Title: "Itinerary",
		Fields: []form.FieldDescriptor{
			{Name: "title", Label: "Title", Type: form.TypeText, Required: true},
			{Name: "slug", Label: "Slug", Type: form.TypeText, Placeholder: "generated from the title when empty"},
			{Name: "destination", Label: "Destination", Type: form.TypeText, Required: true},
			{Name: "is_active", Label: "Bookable", Type: form.TypeSwitch},
			{Name: "trip_start", Label: "Trip start", Type: form.TypeDate, Required: true},
			{Name: "trip_end", Label: "Trip end", Type: form.TypeDate, Required: true},
			{Name: "overview", Label: "Overview", Type: form.TypeRichText, Required: true},
			{Name: "inclusions", Label: "Inclusions", Type: form.TypeTextarea},
			{Name: "exclusions", Label: "Exclusions", Type: form.TypeTextarea},
			{Name: "images", Label: "Gallery", Type: form.TypeFile, Required: true},
			{Name: form.SeparatorPrefix + "_plan", Label: "Trip plan", Type: form.TypeCustom},
			{Name: "daywise", Label: "Day-wise activities", Type: form.TypeDaywise, Required: true},
			{Name: "hotels", Label: "Hotels", Type: form.TypeHotels},
			{Name: "packages", Label: "Packages", Type: form.TypePackages, Required: true},
			{Name: "batches", Label: "Batches", Type: form.TypeBatches},
			{Name: "seo", Label: "SEO", Type: form.TypeSEO},
		},
		Slug: func(m *models.ItineraryModel) string { return m.Slug },
		Values: func(m *models.ItineraryModel) form.Values {
			return form.Values{
				"title":       m.Title,
				"slug":        m.Slug,
				"destination": m.Destination,
				"is_active":   m.IsActive,
				"trip_start":  m.TripStart,
				"trip_end":    m.TripEnd,
				"overview":    m.Overview,
				"inclusions":  m.Inclusions,
				"exclusions":  m.Exclusions,
				"images":      []string(m.Images),
				"daywise":     editor.NormalizeDays(m.Days),
				"hotels":      editor.NormalizeHotels(m.Hotels),
				"packages":    m.Packages.Data().Clone(),
				"batches":     editor.NormalizeBatches(m.Batches),
				"seo":         m.SEO.Data(),
			}
		},
		Apply: func(m *models.ItineraryModel, v form.Values) error {
			start, end := resource.Str(v, "trip_start"), resource.Str(v, "trip_end")
			if err := checkTripDates(start, end, loc); err != nil {
				return err
			}
			m.Title = resource.Str(v, "title")
			m.Slug = resource.Str(v, "slug")
			if m.Slug == "" {
				m.Slug = resource.Slug(m.Title)
			}
			m.Destination = resource.Str(v, "destination")
			m.IsActive = resource.Flag(v, "is_active")
			m.TripStart = start
			m.TripEnd = end
			m.Overview = resource.Str(v, "overview")
			m.Inclusions = resource.Str(v, "inclusions")
			m.Exclusions = resource.Str(v, "exclusions")
			m.Images = resource.List(v, "images")
			m.Days = days(v)
			m.Hotels = hotels(v)
			m.Packages = datatypes.NewJSONType(packages(v))
			m.Batches = batches(v)
			m.SEO = datatypes.NewJSONType(resource.SEO(v, "seo"))
			return nil
		},
	}
}

func checkTripDates(start, end string, loc *time.Location) error {
	s, err := datefmt.Parse(start, loc)
	if err != nil {
		return fmt.Errorf("trip_start: %w: %v", models.ErrInvalidValue, err)
	}
	e, err := datefmt.Parse(end, loc)
	if err != nil {
		return fmt.Errorf("trip_end: %w: %v", models.ErrInvalidValue, err)
	}
	if datefmt.DaysBetween(s, e, loc) < 0 {
		return fmt.Errorf("trip_end: %w: ends before the trip starts", models.ErrInvalidValue)
	}
	return nil
}

func days(v form.Values) []models.DayActivity {
	if d, ok := v["daywise"].([]models.DayActivity); ok {
		return editor.NormalizeDays(d)
	}
	return []models.DayActivity{}
}

func hotels(v form.Values) []models.HotelDetail {
	if h, ok := v["hotels"].([]models.HotelDetail); ok {
		return editor.NormalizeHotels(h)
	}
	return []models.HotelDetail{}
}

func packages(v form.Values) models.PackageDetails {
	if p, ok := v["packages"].(models.PackageDetails); ok {
		return editor.NormalizePackages(p)
	}
	return editor.NormalizePackages(models.PackageDetails{})
}

func batches(v form.Values) []models.Batch {
	if b, ok := v["batches"].([]models.Batch); ok {
		return editor.NormalizeBatches(b)
	}
	return []models.Batch{}
}
