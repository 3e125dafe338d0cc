package itinerary

import (
	"github.com/tripdesk/crm-admin/internal/editor"
	"github.com/tripdesk/crm-admin/internal/models"
)

// GenerateRequest selects the departures to generate. Weekdays use 0 for
// Sunday, months 0 for January.
type GenerateRequest struct {
	TripStart string `json:"trip_start"`
	TripEnd   string `json:"trip_end"`
	Weekdays  []int  `json:"weekdays"`
	MonthDays []int  `json:"month_days"`
	Months    []int  `json:"months"`
}

// GenerateResult is the generator output.
type GenerateResult struct {
	Batches      []models.Batch                `json:"batches"`
	Count        int                           `json:"count"`
	DurationDays int                           `json:"duration_days"`
	View         editor.ListView[models.Batch] `json:"view"`
}

// FieldUpdate sets record fields by name, e.g. {"title": "Arrival"}.
type FieldUpdate map[string]any

type editorResponse struct {
	Itinerary *models.ItineraryModel `json:"itinerary"`
	View      any                    `json:"view"`
}
