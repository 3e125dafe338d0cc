package sitemap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/store"
	"go.uber.org/zap/zaptest"
	"gorm.io/datatypes"
)

func TestSitemapSkipsHiddenPages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	its := store.NewMemory[models.ItineraryModel]()
	acts := store.NewMemory[models.ActivityModel]()

	seo := func(status string) datatypes.JSONType[models.SEOData] {
		return datatypes.NewJSONType(models.SEOData{IndexStatus: status})
	}
	for _, it := range []models.ItineraryModel{
		{Slug: "spiti", IsActive: true, SEO: seo(models.IndexStatusIndex)},
		{Slug: "hidden", IsActive: true, SEO: seo(models.IndexStatusNotIndex)},
		{Slug: "draft", IsActive: false, SEO: seo(models.IndexStatusIndex)},
	} {
		if err := its.Create(ctx, &it); err != nil {
			t.Fatal(err)
		}
	}
	act := models.ActivityModel{IsActive: true}
	if err := acts.Create(ctx, &act); err != nil {
		t.Fatal(err)
	}

	h := NewHandler("https://trips.example", Sources{Itineraries: its, Activities: acts}, zaptest.NewLogger(t))
	r := gin.New()
	h.RegisterRoutes(r.Group(""), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<loc>https://trips.example/</loc>",
		"<loc>https://trips.example/itineraries/spiti</loc>",
		"<loc>https://trips.example/activities/" + act.ID + "</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %s in\n%s", want, body)
		}
	}
	for _, unwanted := range []string{"hidden", "draft"} {
		if strings.Contains(body, unwanted) {
			t.Errorf("%s page listed", unwanted)
		}
	}
}
