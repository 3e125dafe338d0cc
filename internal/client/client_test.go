package client

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/app"
	"github.com/tripdesk/crm-admin/internal/config"
	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type record struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestDecodeListShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []record
	}{
		{"bare array", `[{"id":"a","title":"A"}]`, []record{{"a", "A"}}},
		{"success envelope", `{"success":true,"data":[{"id":"a","title":"A"}]}`, []record{{"a", "A"}}},
		{"data envelope", `{"data":[{"_id":"b","title":"B"}]}`, []record{{"b", "B"}}},
		{"paged", `{"success":true,"data":[],"pagination":{"total":0}}`, []record{}},
		{"null data", `{"data":null}`, []record{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeList[record]([]byte(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodeRecordAcceptsUnderscoreID(t *testing.T) {
	var r record
	if err := decodeRecord([]byte(`{"_id":"x","title":"T"}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.ID != "x" || r.Title != "T" {
		t.Errorf("record = %+v", r)
	}
}

func TestPayloadEncoding(t *testing.T) {
	t.Run("json without files", func(t *testing.T) {
		_, ct, err := Payload{"title": "A", "images": []string{"/a.jpg"}}.encode()
		if err != nil {
			t.Fatal(err)
		}
		if ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
	})

	t.Run("multipart with files", func(t *testing.T) {
		p := Payload{
			"title": "A",
			"tags":  []string{"x", "y"},
			"images": []imageupload.Slot{
				imageupload.URLSlot("/kept.jpg"),
				imageupload.FileSlot(&imageupload.File{Name: "new.png", ContentType: "image/png", Data: []byte("png")}),
				imageupload.FileSlot(&imageupload.File{Name: "clip.mp4", ContentType: "video/mp4", Data: []byte("mp4")}),
			},
		}
		body, ct, err := p.encode()
		if err != nil {
			t.Fatal(err)
		}
		_, params, err := mime.ParseMediaType(ct)
		if err != nil {
			t.Fatal(err)
		}
		mr := multipart.NewReader(body, params["boundary"])
		fields := map[string]string{}
		files := map[string]string{}
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				t.Fatal(err)
			}
			data, _ := io.ReadAll(part)
			if part.FileName() != "" {
				files[part.FileName()] = part.FormName()
				continue
			}
			fields[part.FormName()] = string(data)
		}
		if fields["images"] != `["/kept.jpg"]` || fields["tags"] != `["x","y"]` || fields["title"] != "A" {
			t.Errorf("fields = %v", fields)
		}
		if files["new.png"] != ImagesField || files["clip.mp4"] != VideosField {
			t.Errorf("files = %v", files)
		}
	})
}

func TestErrorMessage(t *testing.T) {
	if got := errorMessage(404, []byte(`{"ok":0,"code":404,"message":"not found"}`)); got != "not found" {
		t.Errorf("got %q", got)
	}
	if got := errorMessage(502, []byte("<html>bad gateway</html>")); got != "request failed with status 502" {
		t.Errorf("got %q", got)
	}
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Auth.Username = "admin"
	cfg.Auth.PasswordHash = string(hash)
	a := app.Build(zaptest.NewLogger(t), cfg, app.Options{
		Stores: app.MemoryStores(),
		Blobs:  blob.NewMemory("/api/v1/objects"),
	})
	srv := httptest.NewServer(a.Router())
	t.Cleanup(func() {
		srv.Close()
		a.Shutdown()
	})
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(srv.URL + "/api/v1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Login(context.Background(), "admin", "s3cret"); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSliceLifecycle(t *testing.T) {
	ctx := context.Background()
	s := Transports(newClient(t, newServer(t)))

	created, err := s.Create(ctx, Payload{
		"name":          "Tempo Traveller",
		"vehicle_type":  "tempo_traveller",
		"capacity":      12,
		"price_per_day": 4500,
		"images":        []string{"/api/v1/objects/tempo.jpg"},
	})
	if err != nil {
		t.Fatalf("create: %v (state %+v)", err, s.State())
	}
	if created.ID == "" || len(s.State().Items) != 1 {
		t.Fatalf("created = %+v, items = %d", created, len(s.State().Items))
	}

	items, err := s.Fetch(ctx, 1, 10)
	if err != nil || len(items) != 1 {
		t.Fatalf("fetch = %d, %v", len(items), err)
	}

	if _, err := s.FetchOne(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if cur := s.State().Current; cur == nil || cur.ID != created.ID {
		t.Fatalf("current = %+v", cur)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	st := s.State()
	if len(st.Items) != 0 || st.Current != nil || st.Loading || st.Error != "" {
		t.Errorf("state after delete = %+v", st)
	}

	if _, err := s.FetchOne(ctx, created.ID); err == nil {
		t.Fatal("fetching a deleted record succeeded")
	}
	if st := s.State(); st.Error == "" || st.Loading {
		t.Errorf("state after failure = %+v", st)
	}
}

func TestUnauthenticatedSliceStoresServerMessage(t *testing.T) {
	c, err := New(newServer(t).URL + "/api/v1")
	if err != nil {
		t.Fatal(err)
	}
	s := Activities(c)
	_, err = s.Fetch(context.Background(), 0, 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("err = %v", err)
	}
	if s.State().Error != apiErr.Message || apiErr.Message == "" {
		t.Errorf("state error = %q, message = %q", s.State().Error, apiErr.Message)
	}
}

func TestSubmitFormSkipsNetworkOnValidationFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"_id":"n1"}`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSlice(c, "/itineraries", func(m models.ItineraryModel) string { return m.ID })
	fields := []form.FieldDescriptor{
		{Name: "title", Type: form.TypeText, Required: true},
		{Name: "packages", Type: form.TypePackages, Required: true},
	}
	f := form.New(fields, form.Values{"title": "Trip", "packages": models.PackageDetails{}})

	_, err = s.SubmitForm(context.Background(), f, "")
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(verr.Errors) != 1 || verr.Errors["packages"] == "" {
		t.Errorf("errors = %v", verr.Errors)
	}
	if calls.Load() != 0 {
		t.Errorf("network called %d times", calls.Load())
	}

	f.SetValue("packages", models.PackageDetails{BasePackages: []models.BasePackage{{ID: "p1", Type: "Twin"}}})
	got, err := s.SubmitForm(context.Background(), f, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "n1" || calls.Load() != 1 {
		t.Errorf("got %+v after %d calls", got, calls.Load())
	}
}

func TestPreviewBatches(t *testing.T) {
	c := newClient(t, newServer(t))
	batches, err := c.PreviewBatches(context.Background(), BatchRequest{
		TripStart: "2025-06-01T00:00",
		TripEnd:   "2025-06-03T00:00",
		Weekdays:  []int{5},
		Months:    []int{5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(batches) != 4 {
		t.Fatalf("got %d batches, want 4", len(batches))
	}
	for _, b := range batches {
		if !strings.HasPrefix(b.StartDate, "2025-06-") {
			t.Errorf("start %s outside June", b.StartDate)
		}
	}
}
