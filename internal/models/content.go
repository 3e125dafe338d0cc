package models

import "gorm.io/datatypes"

// Body formats for ContentModel.
const (
	BodyFormatHTML     = "html"
	BodyFormatMarkdown = "markdown"
)

// ContentModel is an offer, blog post or static page.
type ContentModel struct {
	Base
	Title           string                      `json:"title"            gorm:"not null"`
	Slug            string                      `json:"slug"             gorm:"index"`
	ContentType     string                      `json:"content_type"     gorm:"index"`
	Summary         string                      `json:"summary"          gorm:"type:text"`
	Body            string                      `json:"body"             gorm:"type:longtext"`
	BodyFormat      string                      `json:"body_format"      gorm:"default:html"`
	RenderedBody    string                      `json:"rendered_body"    gorm:"type:longtext"`
	OfferCode       string                      `json:"offer_code"`
	DiscountPercent float64                     `json:"discount_percent"`
	ValidFrom       string                      `json:"valid_from"`
	ValidTo         string                      `json:"valid_to"`
	Images          datatypes.JSONSlice[string] `json:"images"`
	Videos          datatypes.JSONSlice[string] `json:"videos"`
	IsPublished     bool                        `json:"is_published"`
	SEO             datatypes.JSONType[SEOData] `json:"seo"`
}

func (ContentModel) TableName() string { return "contents" }
