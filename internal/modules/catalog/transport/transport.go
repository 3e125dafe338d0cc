package transport

import (
	"fmt"

	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/store"
)

var vehicleTypes = []form.Option{
	{Label: "Sedan", Value: "sedan"},
	{Label: "SUV", Value: "suv"},
	{Label: "Tempo Traveller", Value: "tempo_traveller"},
	{Label: "Mini bus", Value: "mini_bus"},
	{Label: "Bus", Value: "bus"},
}

// Schema describes the transport form.
func Schema() resource.Schema[models.TransportModel] {
	return resource.Schema[models.TransportModel]{
		Name:  "transports",
		Title: "Transport",
		Fields: []form.FieldDescriptor{
			{Name: "name", Label: "Name", Type: form.TypeText, Required: true},
			{Name: "vehicle_type", Label: "Vehicle type", Type: form.TypeSelect, Options: vehicleTypes, Required: true},
			{Name: "capacity", Label: "Seats", Type: form.TypeNumber, Required: true},
			{Name: "price_per_day", Label: "Price per day", Type: form.TypeNumber, Required: true},
			{Name: "pickup_location", Label: "Pickup location", Type: form.TypeText},
			{Name: "is_active", Label: "Available", Type: form.TypeSwitch},
			{Name: "description", Label: "Description", Type: form.TypeTextarea},
			{Name: "images", Label: "Photos", Type: form.TypeFile},
		},
		Values: func(m *models.TransportModel) form.Values {
			return form.Values{
				"name":            m.Name,
				"vehicle_type":    m.VehicleType,
				"capacity":        float64(m.Capacity),
				"price_per_day":   m.PricePerDay,
				"pickup_location": m.PickupLocation,
				"is_active":       m.IsActive,
				"description":     m.Description,
				"images":          []string(m.Images),
			}
		},
		Apply: func(m *models.TransportModel, v form.Values) error {
			capacity := resource.Num(v, "capacity")
			if capacity < 1 || capacity != float64(int(capacity)) {
				return fmt.Errorf("capacity: %w: must be a whole number of seats", models.ErrInvalidValue)
			}
			price := resource.Num(v, "price_per_day")
			if price < 0 {
				return fmt.Errorf("price_per_day: %w", models.ErrNegativeAmount)
			}
			m.Name = resource.Str(v, "name")
			m.VehicleType = resource.Str(v, "vehicle_type")
			m.Capacity = int(capacity)
			m.PricePerDay = price
			m.PickupLocation = resource.Str(v, "pickup_location")
			m.IsActive = resource.Flag(v, "is_active")
			m.Description = resource.Str(v, "description")
			m.Images = resource.List(v, "images")
			return nil
		},
	}
}

// NewHandler serves /transports.
func NewHandler(repo store.Repository[models.TransportModel], deps resource.Deps, maxFileBytes int64) *resource.Handler[models.TransportModel] {
	return resource.NewHandler(resource.NewService(repo, Schema(), deps), maxFileBytes)
}
