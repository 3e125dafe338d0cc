package models

import (
	"fmt"
	"slices"
)

// Index status values for SEOData.IndexStatus.
const (
	IndexStatusIndex    = "index"
	IndexStatusNotIndex = "notindex"
)

// MealStay is a named meal or stay option attached to a day.
type MealStay struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// DayActivity is one day of an itinerary. Day is 1-based and always equals
// the record's position in its list.
type DayActivity struct {
	ID          string     `json:"id"`
	Day         int        `json:"day"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Images      []string   `json:"images"`
	Meals       []MealStay `json:"meals"`
	Stays       []MealStay `json:"stays"`
}

func (d DayActivity) RecordID() string { return d.ID }

func (d DayActivity) Clone() DayActivity {
	d.Images = slices.Clone(d.Images)
	d.Meals = cloneMealStays(d.Meals)
	d.Stays = cloneMealStays(d.Stays)
	return d
}

// With returns a copy of d with field set. id and day are managed by the list.
func (d DayActivity) With(field string, value any) (DayActivity, error) {
	out := d.Clone()
	switch field {
	case "title":
		out.Title = AsString(value)
	case "description":
		out.Description = AsString(value)
	case "images":
		imgs, err := AsStrings(value)
		if err != nil {
			return d, err
		}
		out.Images = imgs
	default:
		return d, unknownField("day", field)
	}
	return out, nil
}

func cloneMealStays(in []MealStay) []MealStay {
	if in == nil {
		return nil
	}
	out := make([]MealStay, len(in))
	for i, m := range in {
		out[i] = MealStay{Name: m.Name, Images: slices.Clone(m.Images)}
	}
	return out
}

// HotelDetail is a hotel used by an itinerary.
type HotelDetail struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Stars     string   `json:"stars"`
	Reference string   `json:"reference"`
	Images    []string `json:"images"`
}

// HotelStars lists the accepted star ratings.
var HotelStars = []string{"1", "2", "3", "4", "5"}

func (h HotelDetail) RecordID() string { return h.ID }

func (h HotelDetail) Clone() HotelDetail {
	h.Images = slices.Clone(h.Images)
	return h
}

func (h HotelDetail) With(field string, value any) (HotelDetail, error) {
	out := h.Clone()
	switch field {
	case "name":
		out.Name = AsString(value)
	case "reference":
		out.Reference = AsString(value)
	case "stars":
		stars := AsString(value)
		if stars != "" && !slices.Contains(HotelStars, stars) {
			return h, fmt.Errorf("hotel: %w: stars must be 1 to 5, got %q", ErrInvalidValue, stars)
		}
		out.Stars = stars
	case "images":
		imgs, err := AsStrings(value)
		if err != nil {
			return h, err
		}
		out.Images = imgs
	default:
		return h, unknownField("hotel", field)
	}
	return out, nil
}

// BasePackage is a priced package tier, e.g. "Triple sharing".
type BasePackage struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountedPrice float64 `json:"discounted_price"`
}

func (p BasePackage) RecordID() string   { return p.ID }
func (p BasePackage) Clone() BasePackage { return p }

func (p BasePackage) With(field string, value any) (BasePackage, error) {
	switch field {
	case "type":
		p.Type = AsString(value)
	case "original_price", "discounted_price":
		n, err := asAmount(field, value)
		if err != nil {
			return p, err
		}
		if field == "original_price" {
			p.OriginalPrice = n
		} else {
			p.DiscountedPrice = n
		}
	default:
		return p, unknownField("package", field)
	}
	return p, nil
}

// PickupDropPoint is a pickup or drop location with its surcharge.
type PickupDropPoint struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (p PickupDropPoint) RecordID() string       { return p.ID }
func (p PickupDropPoint) Clone() PickupDropPoint { return p }

func (p PickupDropPoint) With(field string, value any) (PickupDropPoint, error) {
	switch field {
	case "name":
		p.Name = AsString(value)
	case "price":
		n, err := asAmount(field, value)
		if err != nil {
			return p, err
		}
		p.Price = n
	default:
		return p, unknownField("point", field)
	}
	return p, nil
}

// PackageDetails groups the pricing tiers with pickup and drop points.
type PackageDetails struct {
	BasePackages []BasePackage     `json:"base_packages"`
	PickupPoint  []PickupDropPoint `json:"pickup_point"`
	DropPoint    []PickupDropPoint `json:"drop_point"`
}

// Clone returns a deep copy.
func (p PackageDetails) Clone() PackageDetails {
	return PackageDetails{
		BasePackages: slices.Clone(p.BasePackages),
		PickupPoint:  slices.Clone(p.PickupPoint),
		DropPoint:    slices.Clone(p.DropPoint),
	}
}

// Batch is one departure of an itinerary. Dates use the
// "2006-01-02T15:04" layout in the configured timezone.
type Batch struct {
	ID                string  `json:"id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	ExtraAmount       float64 `json:"extra_amount"`
	ExtraAmountReason string  `json:"extra_amount_reason"`
	SoldOut           bool    `json:"sold_out"`
}

func (b Batch) RecordID() string { return b.ID }
func (b Batch) Clone() Batch     { return b }

func (b Batch) With(field string, value any) (Batch, error) {
	switch field {
	case "start_date":
		b.StartDate = AsString(value)
	case "end_date":
		b.EndDate = AsString(value)
	case "extra_amount_reason":
		b.ExtraAmountReason = AsString(value)
	case "extra_amount":
		n, err := asAmount(field, value)
		if err != nil {
			return b, err
		}
		b.ExtraAmount = n
	case "sold_out":
		v, err := AsBool(value)
		if err != nil {
			return b, err
		}
		b.SoldOut = v
	default:
		return b, unknownField("batch", field)
	}
	return b, nil
}

// SEOData holds the search metadata of a public page.
type SEOData struct {
	IndexStatus    string `json:"index_status"`
	SEOTitle       string `json:"seo_title"`
	SEODescription string `json:"seo_description"`
	SEOKeywords    string `json:"seo_keywords"`
	Author         string `json:"author"`
}

// DefaultSEO is the value used when a record has no SEO data yet.
func DefaultSEO() SEOData {
	return SEOData{IndexStatus: IndexStatusIndex}
}

func (s SEOData) With(field string, value any) (SEOData, error) {
	switch field {
	case "index_status":
		status := AsString(value)
		if status != IndexStatusIndex && status != IndexStatusNotIndex {
			return s, fmt.Errorf("seo: %w: index_status must be %q or %q", ErrInvalidValue, IndexStatusIndex, IndexStatusNotIndex)
		}
		s.IndexStatus = status
	case "seo_title":
		s.SEOTitle = AsString(value)
	case "seo_description":
		s.SEODescription = AsString(value)
	case "seo_keywords":
		s.SEOKeywords = AsString(value)
	case "author":
		s.Author = AsString(value)
	default:
		return s, unknownField("seo", field)
	}
	return s, nil
}
