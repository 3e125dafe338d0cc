package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/editor"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(store.NewMemory[models.ItineraryModel](), time.UTC, resource.Deps{})
}

func validInput() map[string]any {
	return map[string]any{
		"title":       "Spiti Valley Circuit",
		"destination": "Himachal",
		"trip_start":  "2025-03-01",
		"trip_end":    "2025-03-05",
		"overview":    "<p>Five days in the cold desert</p>",
		"images":      []string{"/files/spiti.jpg"},
		"daywise": []any{
			map[string]any{"title": "Arrival"},
			map[string]any{"title": "Kaza"},
		},
		"packages": map[string]any{
			"base_packages": []any{map[string]any{"type": "Twin sharing", "original_price": 24000}},
		},
	}
}

func create(t *testing.T, svc *Service) *models.ItineraryModel {
	t.Helper()
	it, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func TestCreateNormalizesCollections(t *testing.T) {
	it := create(t, newService(t))
	if it.Slug != "spiti-valley-circuit" {
		t.Errorf("slug = %q", it.Slug)
	}
	if len(it.Days) != 2 || it.Days[0].Day != 1 || it.Days[1].Day != 2 || it.Days[0].ID == "" {
		t.Errorf("days = %+v", it.Days)
	}
	p := it.Packages.Data()
	if len(p.BasePackages) != 1 || p.BasePackages[0].ID == "" || p.PickupPoint == nil {
		t.Errorf("packages = %+v", p)
	}
	if it.SEO.Data().IndexStatus != models.IndexStatusIndex {
		t.Errorf("seo = %+v", it.SEO.Data())
	}
}

func TestCreateRejectsReversedTrip(t *testing.T) {
	in := validInput()
	in["trip_end"] = "2025-02-20"
	_, err := newService(t).Create(context.Background(), in)
	if !resource.IsBadInput(err) {
		t.Fatalf("err = %v, want bad input", err)
	}
}

func TestDayEditing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	it := create(t, svc)
	second := it.Days[1].ID

	it, err := dayList.Add(ctx, svc, it.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(it.Days) != 3 || it.Days[2].Day != 3 {
		t.Fatalf("days after add = %+v", it.Days)
	}

	it, err = dayList.Move(ctx, svc, it.ID, second, true)
	if err != nil {
		t.Fatal(err)
	}
	if it.Days[0].ID != second || it.Days[0].Day != 1 {
		t.Errorf("moved day = %+v", it.Days[0])
	}

	it, err = dayList.Update(ctx, svc, it.ID, second, FieldUpdate{"title": "Kaza monastery", "description": "Key gompa"})
	if err != nil {
		t.Fatal(err)
	}
	if it.Days[0].Title != "Kaza monastery" || it.Days[0].Description != "Key gompa" {
		t.Errorf("updated day = %+v", it.Days[0])
	}

	it, err = svc.ToggleMeal(ctx, it.ID, second, "Breakfast")
	if err != nil {
		t.Fatal(err)
	}
	if len(it.Days[0].Meals) != 1 {
		t.Errorf("meals = %+v", it.Days[0].Meals)
	}
	it, _ = svc.ToggleMeal(ctx, it.ID, second, "Breakfast")
	if len(it.Days[0].Meals) != 0 {
		t.Errorf("meal not toggled off: %+v", it.Days[0].Meals)
	}

	it, err = dayList.Remove(ctx, svc, it.ID, second)
	if err != nil {
		t.Fatal(err)
	}
	if len(it.Days) != 2 || it.Days[0].Day != 1 || it.Days[1].Day != 2 {
		t.Errorf("days after remove = %+v", it.Days)
	}

	if _, err := dayList.Update(ctx, svc, it.ID, "missing", FieldUpdate{"title": "x"}); !errors.Is(err, editor.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
	stored, _ := svc.Get(ctx, it.ID)
	if len(stored.Days) != 2 {
		t.Errorf("stored days = %d", len(stored.Days))
	}
}

func TestPackageSections(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	it := create(t, svc)

	it, err := svc.AddPackage(ctx, it.ID, string(editor.SectionPickup))
	if err != nil {
		t.Fatal(err)
	}
	pt := it.Packages.Data().PickupPoint
	if len(pt) != 1 {
		t.Fatalf("pickup = %+v", pt)
	}
	it, err = svc.UpdatePackage(ctx, it.ID, string(editor.SectionPickup), pt[0].ID, FieldUpdate{"name": "Manali", "price": "1,500"})
	if err != nil {
		t.Fatal(err)
	}
	if got := it.Packages.Data().PickupPoint[0]; got.Name != "Manali" || got.Price != 1500 {
		t.Errorf("point = %+v", got)
	}

	if _, err := svc.UpdatePackage(ctx, it.ID, string(editor.SectionPickup), pt[0].ID, FieldUpdate{"price": -1}); !errors.Is(err, models.ErrNegativeAmount) {
		t.Errorf("err = %v, want negative amount", err)
	}
	if _, err := svc.AddPackage(ctx, it.ID, "lounge"); !errors.Is(err, editor.ErrUnknownSection) {
		t.Errorf("err = %v, want unknown section", err)
	}

	it, err = svc.AddPackage(ctx, it.ID, SectionBase)
	if err != nil {
		t.Fatal(err)
	}
	base := it.Packages.Data().BasePackages
	it, err = svc.MovePackage(ctx, it.ID, SectionBase, base[1].ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if it.Packages.Data().BasePackages[0].ID != base[1].ID {
		t.Errorf("base packages not reordered")
	}
}

func TestGenerateAppendsBatches(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	it := create(t, svc)

	it, res, err := svc.AppendGenerated(ctx, it.ID, GenerateRequest{Weekdays: []int{6}})
	if err != nil {
		t.Fatal(err)
	}
	// Saturdays of March 2025.
	if res.Count != 5 || res.DurationDays != 5 {
		t.Fatalf("result = %d batches, %d days", res.Count, res.DurationDays)
	}
	if len(it.Batches) != 5 || it.Batches[0].StartDate != "2025-03-01T00:00" || it.Batches[0].EndDate != "2025-03-05T00:00" {
		t.Errorf("batches = %+v", it.Batches)
	}

	if _, _, err := svc.AppendGenerated(ctx, it.ID, GenerateRequest{Months: []int{12}}); !resource.IsBadInput(err) {
		t.Errorf("err = %v, want bad input", err)
	}
}

func TestEditorRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t)
	it := create(t, svc)
	r := gin.New()
	NewHandler(svc, 1<<20).RegisterRoutes(r.Group("/api"), func(c *gin.Context) { c.Next() })

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			_ = json.NewEncoder(&buf).Encode(body)
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"preview", http.MethodPost, "/api/itineraries/batches/generate", GenerateRequest{TripStart: "2025-03-01", TripEnd: "2025-03-02", MonthDays: []int{1, 15}}, http.StatusOK},
		{"preview reversed", http.MethodPost, "/api/itineraries/batches/generate", GenerateRequest{TripStart: "2025-03-02", TripEnd: "2025-03-01"}, http.StatusBadRequest},
		{"add hotel", http.MethodPost, "/api/itineraries/" + it.ID + "/hotels", nil, http.StatusOK},
		{"bad move", http.MethodPost, "/api/itineraries/" + it.ID + "/days/" + it.Days[0].ID + "/move/sideways", nil, http.StatusBadRequest},
		{"move day", http.MethodPost, "/api/itineraries/" + it.ID + "/days/" + it.Days[0].ID + "/move/down", nil, http.StatusOK},
		{"missing day", http.MethodPatch, "/api/itineraries/" + it.ID + "/days/nope", map[string]any{"title": "x"}, http.StatusNotFound},
		{"unknown field", http.MethodPatch, "/api/itineraries/" + it.ID + "/days/" + it.Days[0].ID, map[string]any{"colour": "x"}, http.StatusBadRequest},
		{"seo", http.MethodPut, "/api/itineraries/" + it.ID + "/seo", map[string]any{"index_status": "notindex", "seo_title": "Spiti"}, http.StatusOK},
		{"bad seo", http.MethodPut, "/api/itineraries/" + it.ID + "/seo", map[string]any{"index_status": "maybe"}, http.StatusBadRequest},
		{"missing itinerary", http.MethodPost, "/api/itineraries/nope/batches", nil, http.StatusNotFound},
		{"stay", http.MethodPost, "/api/itineraries/" + it.ID + "/days/" + it.Days[1].ID + "/stays/Camp", nil, http.StatusOK},
		{"stay images", http.MethodPatch, "/api/itineraries/" + it.ID + "/days/" + it.Days[1].ID + "/stays/Camp", map[string]any{"images": []string{"/objects/camp.jpg"}}, http.StatusOK},
		{"stay images without body", http.MethodPatch, "/api/itineraries/" + it.ID + "/days/" + it.Days[1].ID + "/stays/Camp", map[string]any{}, http.StatusBadRequest},
		{"untoggled meal images", http.MethodPatch, "/api/itineraries/" + it.ID + "/days/" + it.Days[1].ID + "/meals/Lunch", map[string]any{"images": []string{"/x.jpg"}}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(tt.method, tt.path, tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	stored, _ := svc.Get(context.Background(), it.ID)
	if stored.SEO.Data().SEOTitle != "Spiti" || stored.SEO.Data().IndexStatus != models.IndexStatusNotIndex {
		t.Errorf("seo = %+v", stored.SEO.Data())
	}
	for _, d := range stored.Days {
		if d.ID != it.Days[1].ID {
			continue
		}
		if len(d.Stays) != 1 || d.Stays[0].Images[0] != "/objects/camp.jpg" {
			t.Errorf("stays = %+v", d.Stays)
		}
	}
	if len(stored.Hotels) != 1 {
		t.Errorf("hotels = %+v", stored.Hotels)
	}
}
