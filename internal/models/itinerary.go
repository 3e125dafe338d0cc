package models

import "gorm.io/datatypes"

// ItineraryModel is a packaged trip with its day plan, hotels, pricing and departures.
type ItineraryModel struct {
	Base
	Title       string                             `json:"title"       gorm:"not null"`
	Slug        string                             `json:"slug"        gorm:"index"`
	Destination string                             `json:"destination" gorm:"index"`
	TripStart   string                             `json:"trip_start"`
	TripEnd     string                             `json:"trip_end"`
	Overview    string                             `json:"overview"    gorm:"type:longtext"`
	Inclusions  string                             `json:"inclusions"  gorm:"type:text"`
	Exclusions  string                             `json:"exclusions"  gorm:"type:text"`
	Images      datatypes.JSONSlice[string]        `json:"images"`
	Days        datatypes.JSONSlice[DayActivity]   `json:"daywise"`
	Hotels      datatypes.JSONSlice[HotelDetail]   `json:"hotels"`
	Packages    datatypes.JSONType[PackageDetails] `json:"packages"`
	Batches     datatypes.JSONSlice[Batch]         `json:"batches"`
	IsActive    bool                               `json:"is_active"`
	SEO         datatypes.JSONType[SEOData]        `json:"seo"`
}

func (ItineraryModel) TableName() string { return "itineraries" }
