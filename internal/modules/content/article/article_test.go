package article

import (
	"context"
	"strings"
	"testing"

	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/store"
)

func TestRender(t *testing.T) {
	out, err := Render("# Monsoon offer\n\n- Goa\n- Kerala", models.BodyFormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<h1>Monsoon offer</h1>") || !strings.Contains(out, "<li>Goa</li>") {
		t.Errorf("rendered = %q", out)
	}

	raw := "<p>already html</p>"
	if out, _ := Render(raw, models.BodyFormatHTML); out != raw {
		t.Errorf("html body changed: %q", out)
	}
}

func TestCreateRendersAndSlugs(t *testing.T) {
	svc := resource.NewService(store.NewMemory[models.ContentModel](), Schema(), resource.Deps{})
	item, err := svc.Create(context.Background(), map[string]any{
		"title":        "Monsoon Deals 2025",
		"content_type": TypeOffer,
		"body_format":  models.BodyFormatMarkdown,
		"body":         "**20% off**",
	})
	if err != nil {
		t.Fatal(err)
	}
	if item.Slug != "monsoon-deals-2025" {
		t.Errorf("slug = %q", item.Slug)
	}
	if !strings.Contains(item.RenderedBody, "<strong>20% off</strong>") {
		t.Errorf("rendered = %q", item.RenderedBody)
	}
	if item.SEO.Data().IndexStatus != models.IndexStatusIndex {
		t.Errorf("seo = %+v", item.SEO.Data())
	}
}

func TestRichTextBodyMustHaveText(t *testing.T) {
	svc := resource.NewService(store.NewMemory[models.ContentModel](), Schema(), resource.Deps{})
	_, err := svc.Create(context.Background(), map[string]any{
		"title":        "Empty",
		"content_type": TypePage,
		"body":         "<p>&nbsp;</p><br>",
	})
	if err == nil {
		t.Fatal("blank rich text body accepted")
	}
}
