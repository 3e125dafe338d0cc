package itinerary

import (
	"context"
	"fmt"
	"slices"

	"github.com/tripdesk/crm-admin/internal/editor"
	"github.com/tripdesk/crm-admin/internal/models"
	"gorm.io/datatypes"
)

// collection binds one ordered list of an itinerary to its editor functions.
type collection[T editor.Record[T]] struct {
	noun   string
	get    func(*models.ItineraryModel) []T
	set    func(*models.ItineraryModel, []T)
	add    func([]T) []T
	remove func([]T, string) []T
	up     func([]T, int) []T
	down   func([]T, int) []T
}

var dayList = collection[models.DayActivity]{
	noun:   "days",
	get:    func(m *models.ItineraryModel) []models.DayActivity { return m.Days },
	set:    func(m *models.ItineraryModel, v []models.DayActivity) { m.Days = v },
	add:    editor.AddDay,
	remove: editor.RemoveDay,
	up:     editor.MoveDayUp,
	down:   editor.MoveDayDown,
}

var hotelList = collection[models.HotelDetail]{
	noun:   "hotels",
	get:    func(m *models.ItineraryModel) []models.HotelDetail { return m.Hotels },
	set:    func(m *models.ItineraryModel, v []models.HotelDetail) { m.Hotels = v },
	add:    editor.AddHotel,
	remove: editor.RemoveHotel,
	up:     editor.MoveHotelUp,
	down:   editor.MoveHotelDown,
}

var batchList = collection[models.Batch]{
	noun:   "batches",
	get:    func(m *models.ItineraryModel) []models.Batch { return m.Batches },
	set:    func(m *models.ItineraryModel, v []models.Batch) { m.Batches = v },
	add:    editor.AddBatch,
	remove: editor.RemoveBatch,
	up:     editor.MoveBatchUp,
	down:   editor.MoveBatchDown,
}

func (c collection[T]) View(m *models.ItineraryModel) editor.ListView[T] {
	return editor.View(c.get(m), c.noun)
}

func (c collection[T]) Add(ctx context.Context, s *Service, id string) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		c.set(m, c.add(c.get(m)))
		return nil
	})
}

func (c collection[T]) Remove(ctx context.Context, s *Service, id, item string) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		c.set(m, c.remove(c.get(m), item))
		return nil
	})
}

func (c collection[T]) Move(ctx context.Context, s *Service, id, item string, up bool) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		items := c.get(m)
		i := editor.Index(items, item)
		if i < 0 {
			return fmt.Errorf("%w: %s", editor.ErrNotFound, item)
		}
		if up {
			c.set(m, c.up(items, i))
		} else {
			c.set(m, c.down(items, i))
		}
		return nil
	})
}

// Update applies every field of fields to one record. Fields are applied in
// name order and nothing is stored when any of them is rejected.
func (c collection[T]) Update(ctx context.Context, s *Service, id, item string, fields FieldUpdate) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		items := c.get(m)
		if editor.Index(items, item) < 0 {
			return fmt.Errorf("%w: %s", editor.ErrNotFound, item)
		}
		for _, name := range sortedKeys(fields) {
			next, err := editor.Update(items, item, name, fields[name])
			if err != nil {
				return err
			}
			items = next
		}
		c.set(m, items)
		return nil
	})
}

func sortedKeys(fields FieldUpdate) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ToggleMeal adds or removes a named meal on a day.
func (s *Service) ToggleMeal(ctx context.Context, id, day, name string) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		days, err := editor.ToggleMeal(m.Days, day, name)
		if err != nil {
			return err
		}
		m.Days = days
		return nil
	})
}

// ToggleStay adds or removes a named stay on a day.
func (s *Service) ToggleStay(ctx context.Context, id, day, name string) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		days, err := editor.ToggleStay(m.Days, day, name)
		if err != nil {
			return err
		}
		m.Days = days
		return nil
	})
}

// SetMealImages replaces the images shown for a meal of a day.
func (s *Service) SetMealImages(ctx context.Context, id, day, name string, images []string) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		days, err := editor.SetMealImages(m.Days, day, name, images)
		if err != nil {
			return err
		}
		m.Days = days
		return nil
	})
}

// SetStayImages replaces the images shown for a stay of a day.
func (s *Service) SetStayImages(ctx context.Context, id, day, name string, images []string) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		days, err := editor.SetStayImages(m.Days, day, name, images)
		if err != nil {
			return err
		}
		m.Days = days
		return nil
	})
}

// SectionBase addresses the priced tiers of the package details.
const SectionBase = "base_packages"

func (s *Service) editPackages(ctx context.Context, id string, fn func(models.PackageDetails) (models.PackageDetails, error)) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		next, err := fn(editor.NormalizePackages(m.Packages.Data()))
		if err != nil {
			return err
		}
		m.Packages = datatypes.NewJSONType(next)
		return nil
	})
}

// AddPackage appends an empty tier or point to section.
func (s *Service) AddPackage(ctx context.Context, id, section string) (*models.ItineraryModel, error) {
	return s.editPackages(ctx, id, func(p models.PackageDetails) (models.PackageDetails, error) {
		if section == SectionBase {
			return editor.AddBasePackage(p), nil
		}
		return editor.AddPoint(p, editor.Section(section))
	})
}

func (s *Service) RemovePackage(ctx context.Context, id, section, item string) (*models.ItineraryModel, error) {
	return s.editPackages(ctx, id, func(p models.PackageDetails) (models.PackageDetails, error) {
		if section == SectionBase {
			return editor.RemoveBasePackage(p, item), nil
		}
		return editor.RemovePoint(p, editor.Section(section), item)
	})
}

func (s *Service) MovePackage(ctx context.Context, id, section, item string, up bool) (*models.ItineraryModel, error) {
	return s.editPackages(ctx, id, func(p models.PackageDetails) (models.PackageDetails, error) {
		if section == SectionBase {
			i := editor.Index(p.BasePackages, item)
			if i < 0 {
				return p, fmt.Errorf("%w: %s", editor.ErrNotFound, item)
			}
			return editor.MoveBasePackage(p, i, up), nil
		}
		var list []models.PickupDropPoint
		switch editor.Section(section) {
		case editor.SectionPickup:
			list = p.PickupPoint
		case editor.SectionDrop:
			list = p.DropPoint
		default:
			return p, fmt.Errorf("%w: %q", editor.ErrUnknownSection, section)
		}
		i := editor.Index(list, item)
		if i < 0 {
			return p, fmt.Errorf("%w: %s", editor.ErrNotFound, item)
		}
		return editor.MovePoint(p, editor.Section(section), i, up)
	})
}

func (s *Service) UpdatePackage(ctx context.Context, id, section, item string, fields FieldUpdate) (*models.ItineraryModel, error) {
	return s.editPackages(ctx, id, func(p models.PackageDetails) (models.PackageDetails, error) {
		var err error
		for _, name := range sortedKeys(fields) {
			if section == SectionBase {
				p, err = editor.UpdateBasePackage(p, item, name, fields[name])
			} else {
				p, err = editor.UpdatePoint(p, editor.Section(section), item, name, fields[name])
			}
			if err != nil {
				return p, err
			}
		}
		return p, nil
	})
}

// UpdateSEO sets the given SEO fields.
func (s *Service) UpdateSEO(ctx context.Context, id string, fields FieldUpdate) (*models.ItineraryModel, error) {
	return s.Edit(ctx, id, func(m *models.ItineraryModel) error {
		seo := m.SEO.Data()
		for _, name := range sortedKeys(fields) {
			next, err := editor.UpdateSEO(seo, name, fields[name])
			if err != nil {
				return err
			}
			seo = next
		}
		m.SEO = datatypes.NewJSONType(editor.NormalizeSEO(seo))
		return nil
	})
}

// PackagesView is the editor view of the package details.
type PackagesView struct {
	BasePackages editor.ListView[models.BasePackage]     `json:"base_packages"`
	PickupPoint  editor.ListView[models.PickupDropPoint] `json:"pickup_point"`
	DropPoint    editor.ListView[models.PickupDropPoint] `json:"drop_point"`
}

func packagesView(m *models.ItineraryModel) PackagesView {
	p := editor.NormalizePackages(m.Packages.Data())
	return PackagesView{
		BasePackages: editor.View(p.BasePackages, "packages"),
		PickupPoint:  editor.View(p.PickupPoint, "pickup points"),
		DropPoint:    editor.View(p.DropPoint, "drop points"),
	}
}
