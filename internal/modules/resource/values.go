package resource

import (
	"strings"

	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/models"
)

// Str reads a text value.
func Str(v form.Values, name string) string {
	return models.AsString(v[name])
}

// Num reads a number value; missing or blank numbers are zero.
func Num(v form.Values, name string) float64 {
	n, _ := models.AsFloat(v[name])
	return n
}

// Flag reads a checkbox or switch value.
func Flag(v form.Values, name string) bool {
	b, _ := models.AsBool(v[name])
	return b
}

// List reads a multiselect or stored file field.
func List(v form.Values, name string) []string {
	switch x := v[name].(type) {
	case []string:
		return x
	case []imageupload.Slot:
		return imageupload.URLs(x)
	}
	out, err := models.AsStrings(v[name])
	if err != nil {
		return []string{}
	}
	return out
}

// SEO reads a seo field, falling back to the default.
func SEO(v form.Values, name string) models.SEOData {
	if s, ok := v[name].(models.SEOData); ok {
		return s
	}
	return models.DefaultSEO()
}

// Slug lowercases s and joins its alphanumeric runs with '-'.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
