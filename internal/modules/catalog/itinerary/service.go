package itinerary

import (
	"context"
	"fmt"
	"time"

	"github.com/tripdesk/crm-admin/internal/batchgen"
	"github.com/tripdesk/crm-admin/internal/editor"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/pkg/datefmt"
	"github.com/tripdesk/crm-admin/internal/store"
)

type Service struct {
	*resource.Service[models.ItineraryModel]
	loc *time.Location
}

func NewService(repo store.Repository[models.ItineraryModel], loc *time.Location, deps resource.Deps) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{Service: resource.NewService(repo, Schema(loc), deps), loc: loc}
}

// Location is the zone batch dates are expressed in.
func (s *Service) Location() *time.Location { return s.loc }

// Edit loads an itinerary, applies fn and saves the result. It returns
// (nil, nil) when the itinerary does not exist.
func (s *Service) Edit(ctx context.Context, id string, fn func(*models.ItineraryModel) error) (*models.ItineraryModel, error) {
	it, err := s.Get(ctx, id)
	if err != nil || it == nil {
		return nil, err
	}
	if err := fn(it); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Params converts a generator request into batchgen parameters. Missing
// trip dates fall back to it when it is not nil.
func (s *Service) Params(req GenerateRequest, it *models.ItineraryModel) (batchgen.Params, error) {
	start, end := req.TripStart, req.TripEnd
	if it != nil {
		if start == "" {
			start = it.TripStart
		}
		if end == "" {
			end = it.TripEnd
		}
	}
	p := batchgen.Params{
		Weekdays:  req.Weekdays,
		MonthDays: req.MonthDays,
		Months:    req.Months,
		Location:  s.loc,
	}
	var err error
	if p.TripStart, err = datefmt.Parse(start, s.loc); err != nil {
		return p, fmt.Errorf("%w: trip_start: %v", resource.ErrBadInput, err)
	}
	if p.TripEnd, err = datefmt.Parse(end, s.loc); err != nil {
		return p, fmt.Errorf("%w: trip_end: %v", resource.ErrBadInput, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%w: %v", resource.ErrBadInput, err)
	}
	return p, nil
}

// Preview generates batches without storing them.
func (s *Service) Preview(req GenerateRequest) (*GenerateResult, error) {
	p, err := s.Params(req, nil)
	if err != nil {
		return nil, err
	}
	return newResult(p, batchgen.Generate(p)), nil
}

// AppendGenerated generates batches from the itinerary's trip dates and
// appends them to its batch list.
func (s *Service) AppendGenerated(ctx context.Context, id string, req GenerateRequest) (*models.ItineraryModel, *GenerateResult, error) {
	var result *GenerateResult
	it, err := s.Edit(ctx, id, func(it *models.ItineraryModel) error {
		p, err := s.Params(req, it)
		if err != nil {
			return err
		}
		generated := batchgen.Generate(p)
		result = newResult(p, generated)
		it.Batches = editor.AppendBatches(it.Batches, generated)
		return nil
	})
	return it, result, err
}

func newResult(p batchgen.Params, batches []models.Batch) *GenerateResult {
	return &GenerateResult{
		Batches:      batches,
		Count:        len(batches),
		DurationDays: p.Duration(),
		View:         editor.View(batches, "batches"),
	}
}
