// Package article serves the blog posts, offers and static pages of the
// public site. Markdown bodies are rendered to HTML on save.
package article

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/store"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/datatypes"
)

// Content types.
const (
	TypeBlog  = "blog"
	TypeOffer = "offer"
	TypePage  = "page"
)

var contentTypes = []form.Option{
	{Label: "Blog", Value: TypeBlog},
	{Label: "Offer", Value: TypeOffer},
	{Label: "Page", Value: TypePage},
}

var bodyFormats = []form.Option{
	{Label: "Rich text", Value: models.BodyFormatHTML},
	{Label: "Markdown", Value: models.BodyFormatMarkdown},
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Render converts a body to HTML according to its format.
func Render(body, format string) (string, error) {
	if format != models.BodyFormatMarkdown {
		return body, nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Schema describes the content form.
func Schema() resource.Schema[models.ContentModel] {
	return resource.Schema[models.ContentModel]{
		Name:  "contents",
		Title: "Content",
		Fields: []form.FieldDescriptor{
			{Name: "title", Label: "Title", Type: form.TypeText, Required: true},
			{Name: "slug", Label: "Slug", Type: form.TypeText, Placeholder: "generated from the title when empty"},
			{Name: "content_type", Label: "Type", Type: form.TypeSelect, Options: contentTypes, Required: true},
			{Name: "is_published", Label: "Published", Type: form.TypeSwitch},
			{Name: "summary", Label: "Summary", Type: form.TypeTextarea},
			{Name: "body_format", Label: "Body format", Type: form.TypeRadio, Options: bodyFormats},
			{Name: "body", Label: "Body", Type: form.TypeRichText, Required: true},
			{Name: form.SeparatorPrefix + "_offer", Type: form.TypeCustom, Label: "Offer details"},
			{Name: "offer_code", Label: "Offer code", Type: form.TypeText},
			{Name: "discount_percent", Label: "Discount %", Type: form.TypeNumber},
			{Name: "valid_from", Label: "Valid from", Type: form.TypeDate},
			{Name: "valid_to", Label: "Valid to", Type: form.TypeDate},
			{Name: "images", Label: "Images", Type: form.TypeFile},
			{Name: "videos", Label: "Videos", Type: form.TypeFile},
			{Name: "seo", Label: "SEO", Type: form.TypeSEO},
		},
		Slug: func(m *models.ContentModel) string { return m.Slug },
		Values: func(m *models.ContentModel) form.Values {
			return form.Values{
				"title":            m.Title,
				"slug":             m.Slug,
				"content_type":     m.ContentType,
				"is_published":     m.IsPublished,
				"summary":          m.Summary,
				"body_format":      m.BodyFormat,
				"body":             m.Body,
				"offer_code":       m.OfferCode,
				"discount_percent": m.DiscountPercent,
				"valid_from":       m.ValidFrom,
				"valid_to":         m.ValidTo,
				"images":           []string(m.Images),
				"videos":           []string(m.Videos),
				"seo":              m.SEO.Data(),
			}
		},
		Apply: func(m *models.ContentModel, v form.Values) error {
			discount := resource.Num(v, "discount_percent")
			if discount < 0 || discount > 100 {
				return fmt.Errorf("discount_percent: %w: must be between 0 and 100", models.ErrInvalidValue)
			}
			format := resource.Str(v, "body_format")
			if format == "" {
				format = models.BodyFormatHTML
			}
			if format != models.BodyFormatHTML && format != models.BodyFormatMarkdown {
				return fmt.Errorf("body_format: %w: %q", models.ErrInvalidValue, format)
			}
			m.Title = resource.Str(v, "title")
			m.Slug = resource.Str(v, "slug")
			m.ContentType = resource.Str(v, "content_type")
			m.IsPublished = resource.Flag(v, "is_published")
			m.Summary = resource.Str(v, "summary")
			m.BodyFormat = format
			m.Body = resource.Str(v, "body")
			m.OfferCode = resource.Str(v, "offer_code")
			m.DiscountPercent = discount
			m.ValidFrom = resource.Str(v, "valid_from")
			m.ValidTo = resource.Str(v, "valid_to")
			m.Images = resource.List(v, "images")
			m.Videos = resource.List(v, "videos")
			m.SEO = datatypes.NewJSONType(resource.SEO(v, "seo"))
			return nil
		},
		BeforeSave: func(_ context.Context, m *models.ContentModel) error {
			if m.Slug == "" {
				m.Slug = resource.Slug(m.Title)
			}
			rendered, err := Render(m.Body, m.BodyFormat)
			if err != nil {
				return err
			}
			m.RenderedBody = rendered
			return nil
		},
	}
}

// NewHandler serves /contents.
func NewHandler(repo store.Repository[models.ContentModel], deps resource.Deps, maxFileBytes int64) *resource.Handler[models.ContentModel] {
	return resource.NewHandler(resource.NewService(repo, Schema(), deps), maxFileBytes)
}
