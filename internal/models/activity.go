package models

import "gorm.io/datatypes"

// ActivityModel is a bookable activity in the catalog.
type ActivityModel struct {
	Base
	Title       string                      `json:"title"       gorm:"not null"`
	Category    string                      `json:"category"    gorm:"index"`
	Location    string                      `json:"location"`
	Duration    string                      `json:"duration"`
	Price       float64                     `json:"price"`
	Description string                      `json:"description" gorm:"type:longtext"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	IsActive    bool                        `json:"is_active"`
	SEO         datatypes.JSONType[SEOData] `json:"seo"`
}

func (ActivityModel) TableName() string { return "activities" }
