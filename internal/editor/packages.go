package editor

import (
	"errors"
	"fmt"

	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
)

// Section names a point list inside PackageDetails.
type Section string

const (
	SectionPickup Section = "pickup_point"
	SectionDrop   Section = "drop_point"
)

// ErrUnknownSection is returned for section names other than pickup_point and drop_point.
var ErrUnknownSection = errors.New("unknown package section")

func AddBasePackage(p models.PackageDetails) models.PackageDetails {
	out := p.Clone()
	out.BasePackages = Add(p.BasePackages, models.BasePackage{ID: idgen.New()})
	return out
}

func RemoveBasePackage(p models.PackageDetails, id string) models.PackageDetails {
	out := p.Clone()
	out.BasePackages = Remove(p.BasePackages, id)
	return out
}

func MoveBasePackage(p models.PackageDetails, i int, up bool) models.PackageDetails {
	out := p.Clone()
	if up {
		out.BasePackages = MoveUp(p.BasePackages, i)
	} else {
		out.BasePackages = MoveDown(p.BasePackages, i)
	}
	return out
}

func UpdateBasePackage(p models.PackageDetails, id, field string, value any) (models.PackageDetails, error) {
	next, err := Update(p.BasePackages, id, field, value)
	if err != nil {
		return p, err
	}
	out := p.Clone()
	out.BasePackages = next
	return out, nil
}

func points(p *models.PackageDetails, s Section) (*[]models.PickupDropPoint, error) {
	switch s {
	case SectionPickup:
		return &p.PickupPoint, nil
	case SectionDrop:
		return &p.DropPoint, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

func AddPoint(p models.PackageDetails, s Section) (models.PackageDetails, error) {
	out := p.Clone()
	list, err := points(&out, s)
	if err != nil {
		return p, err
	}
	*list = Add(*list, models.PickupDropPoint{ID: idgen.New()})
	return out, nil
}

func RemovePoint(p models.PackageDetails, s Section, id string) (models.PackageDetails, error) {
	out := p.Clone()
	list, err := points(&out, s)
	if err != nil {
		return p, err
	}
	*list = Remove(*list, id)
	return out, nil
}

func MovePoint(p models.PackageDetails, s Section, i int, up bool) (models.PackageDetails, error) {
	out := p.Clone()
	list, err := points(&out, s)
	if err != nil {
		return p, err
	}
	if up {
		*list = MoveUp(*list, i)
	} else {
		*list = MoveDown(*list, i)
	}
	return out, nil
}

func UpdatePoint(p models.PackageDetails, s Section, id, field string, value any) (models.PackageDetails, error) {
	out := p.Clone()
	list, err := points(&out, s)
	if err != nil {
		return p, err
	}
	next, err := Update(*list, id, field, value)
	if err != nil {
		return p, err
	}
	*list = next
	return out, nil
}

// NormalizePackages assigns ids to every tier and point that lacks one and
// replaces nil lists with empty ones.
func NormalizePackages(p models.PackageDetails) models.PackageDetails {
	out := models.PackageDetails{
		BasePackages: EnsureIDs(p.BasePackages, func(b *models.BasePackage, id string) { b.ID = id }),
		PickupPoint:  EnsureIDs(p.PickupPoint, func(pt *models.PickupDropPoint, id string) { pt.ID = id }),
		DropPoint:    EnsureIDs(p.DropPoint, func(pt *models.PickupDropPoint, id string) { pt.ID = id }),
	}
	return out
}
