package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/pkg/pagination"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
	"github.com/tripdesk/crm-admin/internal/store"
	"go.uber.org/zap"
)

// ErrNoUploader is returned when a submission carries files but the service
// has nowhere to store them.
var ErrNoUploader = errors.New("file uploads are not configured")

// References tracks which stored files are in use by a record.
type References interface {
	Activate(ctx context.Context, urls []string) error
	Release(ctx context.Context, urls []string) error
}

// Deps are the collaborators shared by every resource service.
type Deps struct {
	Forms    *form.Registry
	Uploader *imageupload.Uploader
	Refs     References
	Slugs    SlugTracker
	Log      *zap.Logger
}

// SlugTracker remembers retired slugs of records with public pages.
type SlugTracker interface {
	Track(ctx context.Context, oldSlug, kind, targetID string) error
	Forget(ctx context.Context, kind, targetID string) error
}

// Service validates submissions against a Schema and persists the result.
type Service[T any] struct {
	repo   store.Repository[T]
	schema Schema[T]
	forms  *form.Registry
	upload *imageupload.Uploader
	refs   References
	slugs  SlugTracker
	log    *zap.Logger
}

func NewService[T any](repo store.Repository[T], schema Schema[T], deps Deps) *Service[T] {
	s := &Service[T]{
		repo:   repo,
		schema: schema,
		forms:  deps.Forms,
		upload: deps.Uploader,
		refs:   deps.Refs,
		slugs:  deps.Slugs,
		log:    deps.Log,
	}
	if s.forms == nil {
		s.forms = form.Default
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Schema returns the schema the service was built with.
func (s *Service[T]) Schema() Schema[T] { return s.schema }

// Describe returns the serializable form of the schema.
func (s *Service[T]) Describe() Form { return s.schema.Form() }

// Forms returns the field registry used for decoding and validation.
func (s *Service[T]) Forms() *form.Registry { return s.forms }

func (s *Service[T]) List(ctx context.Context, q pagination.Query) ([]T, response.Pagination, error) {
	return s.repo.List(ctx, q)
}

func (s *Service[T]) All(ctx context.Context) ([]T, error) {
	return s.repo.All(ctx)
}

// Get returns (nil, nil) when the record does not exist.
func (s *Service[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.Get(ctx, id)
}

// Create decodes, validates and stores a new record.
func (s *Service[T]) Create(ctx context.Context, raw map[string]any) (*T, error) {
	values, err := s.forms.Decode(s.schema.Fields, raw)
	if err != nil {
		return nil, err
	}
	if verr := s.forms.NewValidationError(s.schema.Fields, values); verr != nil {
		return nil, verr
	}
	urls, err := s.storeFiles(ctx, values)
	if err != nil {
		return nil, err
	}

	item := new(T)
	if err := s.schema.Apply(item, values); err != nil {
		return nil, err
	}
	if err := s.beforeSave(ctx, item); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.activate(ctx, urls)
	return item, nil
}

// Update overlays the submitted fields on the stored record, validates the
// merged values and saves. Returns (nil, nil) when the record does not exist.
func (s *Service[T]) Update(ctx context.Context, id string, raw map[string]any) (*T, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	submitted, err := s.forms.Decode(s.schema.Fields, raw)
	if err != nil {
		return nil, err
	}
	prev := s.schema.Values(item)
	before := s.fileURLs(prev)
	values := prev.Clone()
	for k, v := range submitted {
		values[k] = v
	}
	if verr := s.forms.NewValidationError(s.schema.Fields, values); verr != nil {
		return nil, verr
	}
	urls, err := s.storeFiles(ctx, values)
	if err != nil {
		return nil, err
	}
	if err := s.schema.Apply(item, values); err != nil {
		return nil, err
	}
	if err := s.beforeSave(ctx, item); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.activate(ctx, urls)
	s.release(ctx, subtract(before, urls))
	s.trackSlug(ctx, id, Str(prev, "slug"), item)
	return item, nil
}

// Save persists a record changed outside the form flow, e.g. by a
// collection editor endpoint.
func (s *Service[T]) Save(ctx context.Context, item *T) error {
	if err := s.beforeSave(ctx, item); err != nil {
		return err
	}
	return s.repo.Save(ctx, item)
}

// Delete removes a record and releases the files it referenced.
func (s *Service[T]) Delete(ctx context.Context, id string) (bool, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil || item == nil {
		return false, err
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	s.release(ctx, s.fileURLs(s.schema.Values(item)))
	if s.slugs != nil && s.schema.Slug != nil {
		if err := s.slugs.Forget(ctx, s.schema.Name, id); err != nil {
			s.log.Warn("forget slugs failed", zap.String("id", id), zap.Error(err))
		}
	}
	return true, nil
}

// Validate decodes and checks a submission without storing anything.
func (s *Service[T]) Validate(raw map[string]any) (form.Values, error) {
	values, err := s.forms.Decode(s.schema.Fields, raw)
	if err != nil {
		return nil, err
	}
	if verr := s.forms.NewValidationError(s.schema.Fields, values); verr != nil {
		return nil, verr
	}
	return values, nil
}

// trackSlug records old as a retired slug of id when an update changed it.
func (s *Service[T]) trackSlug(ctx context.Context, id, old string, item *T) {
	if s.slugs == nil || s.schema.Slug == nil || old == "" || old == s.schema.Slug(item) {
		return
	}
	if err := s.slugs.Track(ctx, old, s.schema.Name, id); err != nil {
		s.log.Warn("track slug failed", zap.String("slug", old), zap.Error(err))
	}
}

func (s *Service[T]) beforeSave(ctx context.Context, item *T) error {
	if s.schema.BeforeSave == nil {
		return nil
	}
	return s.schema.BeforeSave(ctx, item)
}

// storeFiles replaces every file field's slots by stored URLs and returns
// all URLs the record will reference.
func (s *Service[T]) storeFiles(ctx context.Context, values form.Values) ([]string, error) {
	var all []string
	for _, f := range s.schema.fileFields() {
		slots, err := imageupload.SlotsFrom(values[f.Name])
		if err != nil {
			return nil, &form.DecodeError{Field: f.Name, Err: err}
		}
		if f.SingleImage && len(slots) > 1 {
			slots = slots[:1]
		}
		var urls []string
		if s.upload == nil {
			for _, slot := range slots {
				if slot.Pending() {
					return nil, ErrNoUploader
				}
			}
			urls = imageupload.URLs(slots)
		} else {
			urls, err = s.upload.Resolve(ctx, s.schema.Name, slots)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name, err)
			}
		}
		values[f.Name] = urls
		all = append(all, urls...)
	}
	return all, nil
}

func (s *Service[T]) fileURLs(values form.Values) []string {
	var out []string
	for _, f := range s.schema.fileFields() {
		out = append(out, List(values, f.Name)...)
	}
	return out
}

func (s *Service[T]) activate(ctx context.Context, urls []string) {
	if s.refs == nil || len(urls) == 0 {
		return
	}
	if err := s.refs.Activate(ctx, urls); err != nil {
		s.log.Warn("activate file references", zap.String("resource", s.schema.Name), zap.Error(err))
	}
}

func (s *Service[T]) release(ctx context.Context, urls []string) {
	if s.refs == nil || len(urls) == 0 {
		return
	}
	if err := s.refs.Release(ctx, urls); err != nil {
		s.log.Warn("release file references", zap.String("resource", s.schema.Name), zap.Error(err))
	}
}

func subtract(a, b []string) []string {
	keep := make(map[string]struct{}, len(b))
	for _, u := range b {
		keep[u] = struct{}{}
	}
	var out []string
	for _, u := range a {
		if _, ok := keep[u]; !ok {
			out = append(out, u)
		}
	}
	return out
}
