package client

import (
	"context"
	"net/url"

	"github.com/tripdesk/crm-admin/internal/models"
)

// BatchRequest selects departures. Weekdays use 0 for Sunday and months 0
// for January; empty filters match everything except months, which fall
// back to the trip's start month.
type BatchRequest struct {
	TripStart string `json:"trip_start"`
	TripEnd   string `json:"trip_end"`
	Weekdays  []int  `json:"weekdays,omitempty"`
	MonthDays []int  `json:"month_days,omitempty"`
	Months    []int  `json:"months,omitempty"`
}

// PreviewBatches asks the server which batches req would generate.
func (c *Client) PreviewBatches(ctx context.Context, req BatchRequest) ([]models.Batch, error) {
	var out struct {
		Batches []models.Batch `json:"batches"`
	}
	if err := c.PostJSON(ctx, "/itineraries/batches/generate", req, &out); err != nil {
		return nil, err
	}
	return out.Batches, nil
}

// AppendBatches generates batches for the itinerary id and stores them.
// Empty trip dates fall back to the itinerary's own.
func (c *Client) AppendBatches(ctx context.Context, id string, req BatchRequest) (*models.ItineraryModel, error) {
	var out struct {
		Itinerary *models.ItineraryModel `json:"itinerary"`
	}
	if err := c.PostJSON(ctx, "/itineraries/"+url.PathEscape(id)+"/batches/generate", req, &out); err != nil {
		return nil, err
	}
	return out.Itinerary, nil
}
