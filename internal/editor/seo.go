package editor

import "github.com/tripdesk/crm-admin/internal/models"

// UpdateSEO sets one SEO field. The value is a singleton, not a list.
func UpdateSEO(seo models.SEOData, field string, value any) (models.SEOData, error) {
	if seo.IndexStatus == "" {
		seo.IndexStatus = models.IndexStatusIndex
	}
	return seo.With(field, value)
}

// NormalizeSEO fills the default index status.
func NormalizeSEO(seo models.SEOData) models.SEOData {
	if seo.IndexStatus == "" {
		seo.IndexStatus = models.IndexStatusIndex
	}
	return seo
}
