package form

import (
	"context"
	"errors"
	"testing"

	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/models"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name  string
		field FieldDescriptor
		value any
		fails bool
	}{
		{"empty text", FieldDescriptor{Name: "title", Type: TypeText, Required: true}, "", true},
		{"missing text", FieldDescriptor{Name: "title", Type: TypeText, Required: true}, nil, true},
		{"whitespace text passes", FieldDescriptor{Name: "title", Type: TypeText, Required: true}, " ", false},
		{"optional empty", FieldDescriptor{Name: "title", Type: TypeText}, "", false},
		{"zero number passes", FieldDescriptor{Name: "price", Type: TypeNumber, Required: true}, 0.0, false},
		{"false switch passes", FieldDescriptor{Name: "on", Type: TypeSwitch, Required: true}, false, false},
		{"empty multiselect", FieldDescriptor{Name: "tags", Type: TypeMultiSelect, Required: true}, []string{}, true},
		{"empty image slots", FieldDescriptor{Name: "images", Type: TypeFile, Required: true}, []string{"", ""}, true},
		{"empty slot values", FieldDescriptor{Name: "images", Type: TypeFile, Required: true}, []imageupload.Slot{{}}, true},
		{"url slot", FieldDescriptor{Name: "images", Type: TypeFile, Required: true}, []any{"", "https://cdn/a.jpg"}, false},
		{"pending file", FieldDescriptor{Name: "images", Type: TypeFile, Required: true}, []any{&imageupload.File{Name: "a.jpg"}}, false},
		{"file slot", FieldDescriptor{Name: "images", Type: TypeFile, Required: true}, []imageupload.Slot{imageupload.FileSlot(&imageupload.File{Name: "a.jpg"})}, false},
		{"no base packages", FieldDescriptor{Name: "packages", Type: TypePackages, Required: true}, models.PackageDetails{PickupPoint: []models.PickupDropPoint{{ID: "p"}}}, true},
		{"raw packages", FieldDescriptor{Name: "packages", Type: TypePackages, Required: true}, map[string]any{"base_packages": []any{map[string]any{"type": "Twin"}}}, false},
		{"no batches", FieldDescriptor{Name: "batches", Type: TypeBatches, Required: true}, []models.Batch{}, true},
		{"empty rich text", FieldDescriptor{Name: "body", Type: TypeRichText, Required: true}, "<p><br></p>&nbsp;", true},
		{"rich text", FieldDescriptor{Name: "body", Type: TypeRichText, Required: true}, "<p>Day <b>one</b></p>", false},
		{"custom skipped", FieldDescriptor{Name: "widget", Type: TypeCustom, Required: true}, nil, false},
		{"separator skipped", FieldDescriptor{Name: SeparatorPrefix + "_pricing", Type: TypeText, Required: true}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate([]FieldDescriptor{tt.field}, Values{tt.field.Name: tt.value})
			if got := len(errs) > 0; got != tt.fails {
				t.Errorf("fails = %v, want %v (%v)", got, tt.fails, errs)
			}
		})
	}
}

func TestFirstErrorFollowsFieldOrder(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "a", Type: TypeText},
		{Name: "b", Type: TypeText, Required: true},
		{Name: "c", Type: TypeText, Required: true},
	}
	errs := Validate(fields, Values{})
	if len(errs) != 2 {
		t.Fatalf("errs = %v", errs)
	}
	if got := FirstError(fields, errs); got != "b" {
		t.Errorf("FirstError = %q, want b", got)
	}
}

func TestSubmitRequiredPackagesBlocksCallback(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "title", Label: "Title", Type: TypeText},
		{Name: "packages", Label: "Packages", Type: TypePackages, Required: true},
	}
	f := New(fields, Values{"title": "Ladakh", "packages": models.PackageDetails{}})

	calls := 0
	err := f.Submit(context.Background(), func(context.Context, Values) error {
		calls++
		return nil
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if calls != 0 {
		t.Errorf("callback called %d times", calls)
	}
	if len(verr.Errors) != 1 || verr.Errors["packages"] == "" || verr.FirstField != "packages" {
		t.Errorf("errors = %+v first = %q", verr.Errors, verr.FirstField)
	}
	if !f.Touched("title") || !f.Touched("packages") {
		t.Error("fields not marked touched after failed submit")
	}

	f.SetValue("packages", models.PackageDetails{BasePackages: []models.BasePackage{{ID: "x", Type: "Twin"}}})
	if len(f.Errors()) != 0 {
		t.Errorf("error not cleared after fixing value: %v", f.Errors())
	}
	if err := f.Submit(context.Background(), func(_ context.Context, v Values) error {
		calls++
		if v["title"] != "Ladakh" {
			t.Errorf("submitted values = %v", v)
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("callback called %d times, want 1", calls)
	}
}

func TestSubmitRejectsDuplicates(t *testing.T) {
	f := New([]FieldDescriptor{{Name: "title", Type: TypeText}}, nil)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- f.Submit(context.Background(), func(context.Context, Values) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	if !f.IsSubmitting() {
		t.Error("IsSubmitting = false while callback runs")
	}
	if err := f.Submit(context.Background(), func(context.Context, Values) error { return nil }); !errors.Is(err, ErrSubmitting) {
		t.Errorf("second submit err = %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if f.IsSubmitting() {
		t.Error("submitting flag not cleared")
	}
}

func TestSetValueKeepsFailingError(t *testing.T) {
	fields := []FieldDescriptor{{Name: "title", Type: TypeText, Required: true}}
	f := New(fields, nil)
	_ = f.Submit(context.Background(), func(context.Context, Values) error { return nil })
	f.SetValue("title", "")
	if f.Errors()["title"] == "" {
		t.Error("error cleared although value is still empty")
	}
	f.SetValue("title", "Goa")
	if _, ok := f.Errors()["title"]; ok {
		t.Error("error kept after valid value")
	}
}

func TestLayout(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "title", Type: TypeText},
		{Name: "slug", Type: TypeText},
		{Name: "city", Type: TypeSelect},
		{Name: "overview", Type: TypeRichText},
		{Name: "active", Type: TypeSwitch},
		{Name: "price", Type: TypeNumber, FullWidth: true},
		{Name: "days", Type: TypeDaywise},
	}
	rows := Layout(fields)

	wantCells := []int{2, 1, 1, 1, 1, 1}
	if len(rows) != len(wantCells) {
		t.Fatalf("rows = %d, want %d", len(rows), len(wantCells))
	}
	for i, n := range wantCells {
		if len(rows[i].Cells) != n {
			t.Errorf("row %d has %d cells, want %d", i, len(rows[i].Cells), n)
		}
	}
	if rows[2].Cells[0].ShowLabel || !rows[2].Cells[0].FullWidth {
		t.Errorf("richtext cell = %+v", rows[2].Cells[0])
	}
	if rows[3].Cells[0].Field.Name != "active" || rows[3].Cells[0].ShowLabel {
		t.Errorf("switch cell = %+v", rows[3].Cells[0])
	}
	if !rows[0].Cells[0].ShowLabel {
		t.Error("text field label hidden")
	}
}

type colourKind struct{ kind }

func TestRegisterCustomType(t *testing.T) {
	r := NewRegistry()
	r.Register("colour", colourKind{kind{fullWidth: true, empty: isBlank, decode: decodeString}})
	fields := []FieldDescriptor{{Name: "accent", Type: "colour", Required: true}}

	if errs := r.Validate(fields, Values{}); errs["accent"] == "" {
		t.Error("custom kind did not validate")
	}
	if rows := r.Layout(fields); !rows[0].Cells[0].FullWidth {
		t.Error("custom kind layout ignored")
	}
}

func TestFormUsesGivenRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("colour", colourKind{kind{empty: isBlank, decode: decodeString}})
	fields := []FieldDescriptor{
		{Name: "accent", Type: "colour", Required: true},
		{Name: "tier", Type: TypeSelect, Options: []Option{{Label: "Gold", Value: "gold"}}},
	}
	var opts []FormOption
	opts = append(opts, WithRegistry(r))
	f := New(fields, Values{"tier": "gold"}, opts...)

	err := f.Submit(context.Background(), func(context.Context, Values) error { return nil })
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Errors["accent"] == "" {
		t.Fatalf("err = %v, want accent required", err)
	}
}

func TestDecodeMultipartValues(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "title", Type: TypeText},
		{Name: "price", Type: TypeNumber},
		{Name: "is_active", Type: TypeSwitch},
		{Name: "tags", Type: TypeMultiSelect},
		{Name: "images", Type: TypeFile},
		{Name: "daywise", Type: TypeDaywise},
		{Name: "packages", Type: TypePackages},
		{Name: "seo", Type: TypeSEO},
	}
	raw := map[string]any{
		"title":     "Spiti",
		"price":     "12,34,567",
		"is_active": "true",
		"tags":      `["snow","bike"]`,
		"images":    `["https://cdn/a.jpg"]`,
		"daywise":   `[{"title":"Arrive"},{"title":"Explore"}]`,
		"packages":  `{"base_packages":[{"type":"Twin","original_price":100}]}`,
		"seo":       `{"seo_title":"Spiti"}`,
		"_id":       "ignored",
	}
	v, err := Decode(fields, raw)
	if err != nil {
		t.Fatal(err)
	}
	if v["price"] != 1234567.0 || v["is_active"] != true {
		t.Errorf("scalars = %v %v", v["price"], v["is_active"])
	}
	if tags := v["tags"].([]string); len(tags) != 2 {
		t.Errorf("tags = %v", tags)
	}
	if slots := v["images"].([]imageupload.Slot); len(slots) != 1 || slots[0].URL != "https://cdn/a.jpg" {
		t.Errorf("images = %v", slots)
	}
	days := v["daywise"].([]models.DayActivity)
	if len(days) != 2 || days[1].Day != 2 || days[0].ID == "" {
		t.Errorf("days = %+v", days)
	}
	pkg := v["packages"].(models.PackageDetails)
	if len(pkg.BasePackages) != 1 || pkg.BasePackages[0].ID == "" {
		t.Errorf("packages = %+v", pkg)
	}
	if v["seo"].(models.SEOData).IndexStatus != models.IndexStatusIndex {
		t.Errorf("seo = %+v", v["seo"])
	}
	if _, ok := v["_id"]; ok {
		t.Error("unknown key kept")
	}

	_, err = Decode(fields, map[string]any{"daywise": "{not json"})
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Field != "daywise" {
		t.Errorf("err = %v", err)
	}
}
