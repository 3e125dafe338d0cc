package models

import "gorm.io/datatypes"

// HeroSlideModel is a banner on the public home page.
type HeroSlideModel struct {
	Base
	Title        string                      `json:"title"         gorm:"not null"`
	Subtitle     string                      `json:"subtitle"`
	CTAText      string                      `json:"cta_text"`
	CTALink      string                      `json:"cta_link"`
	Image        datatypes.JSONSlice[string] `json:"image"`
	DisplayOrder int                         `json:"display_order" gorm:"index"`
	IsActive     bool                        `json:"is_active"`
}

func (HeroSlideModel) TableName() string { return "hero_slides" }
