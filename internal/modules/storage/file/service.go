// Package file tracks uploaded objects and removes the ones no record
// points at any more.
//
// Every stored upload gets a pending FileReferenceModel. Saving a record that
// lists the URL activates it; dropping the URL from a record, or deleting the
// record, makes it pending again. Pending references older than the cleanup
// window are orphans and are removed together with their objects.
package file

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	"github.com/tripdesk/crm-admin/internal/pkg/pagination"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
	"github.com/tripdesk/crm-admin/internal/store"
	"go.uber.org/zap"
)

// DefaultOrphanAge is how long a reference stays pending before cleanup.
const DefaultOrphanAge = time.Hour

type Service struct {
	refs  store.Repository[models.FileReferenceModel]
	blobs blob.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(refs store.Repository[models.FileReferenceModel], blobs blob.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{refs: refs, blobs: blobs, log: log, now: time.Now}
}

// Store returns the object store uploads go to.
func (s *Service) Store() blob.Store { return s.blobs }

// Track records a freshly stored object as pending.
func (s *Service) Track(ctx context.Context, obj blob.Object) error {
	return s.refs.Create(ctx, &models.FileReferenceModel{
		FileURL:   obj.URL,
		FileName:  path.Base(obj.Key),
		ObjectKey: obj.Key,
		Storage:   s.blobs.Driver(),
		Size:      obj.Size,
		Status:    models.FileStatusPending,
	})
}

// Activate marks the references of urls as used by a record.
func (s *Service) Activate(ctx context.Context, urls []string) error {
	return s.setStatus(ctx, urls, models.FileStatusActive)
}

// Release marks the references of urls as unused. Released objects become
// orphans once DefaultOrphanAge has passed.
func (s *Service) Release(ctx context.Context, urls []string) error {
	return s.setStatus(ctx, urls, models.FileStatusPending)
}

func (s *Service) setStatus(ctx context.Context, urls []string, status string) error {
	if len(urls) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		want[u] = struct{}{}
	}
	refs, err := s.refs.All(ctx)
	if err != nil {
		return err
	}
	for i := range refs {
		ref := &refs[i]
		if _, ok := want[ref.FileURL]; !ok || ref.Status == status {
			continue
		}
		ref.Status = status
		if err := s.refs.Save(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) pending(ctx context.Context) ([]models.FileReferenceModel, error) {
	refs, err := s.refs.All(ctx)
	if err != nil {
		return nil, err
	}
	out := refs[:0]
	for _, ref := range refs {
		if ref.Status == models.FileStatusPending {
			out = append(out, ref)
		}
	}
	return out, nil
}

// Orphans lists pending references, newest first.
func (s *Service) Orphans(ctx context.Context, q pagination.Query) ([]models.FileReferenceModel, response.Pagination, error) {
	refs, err := s.pending(ctx)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	start, end := pagination.Window(len(refs), q)
	return refs[start:end], pagination.Meta(int64(len(refs)), q), nil
}

// CountOrphans counts pending references.
func (s *Service) CountOrphans(ctx context.Context) (int, error) {
	refs, err := s.pending(ctx)
	return len(refs), err
}

// Cleanup removes pending references last touched more than maxAge ago.
func (s *Service) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = DefaultOrphanAge
	}
	cutoff := s.now().Add(-maxAge)
	refs, err := s.pending(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, ref := range refs {
		if ref.UpdatedAt.After(cutoff) {
			continue
		}
		if err := s.remove(ctx, ref); err != nil {
			return deleted, err
		}
		deleted++
	}
	if deleted > 0 {
		s.log.Info("orphan uploads removed", zap.Int("count", deleted), zap.Duration("max_age", maxAge))
	}
	return deleted, nil
}

// DeleteOrphans removes the pending references with the given ids, or every
// pending reference when all is set.
func (s *Service) DeleteOrphans(ctx context.Context, ids []string, all bool) (int, error) {
	refs, err := s.pending(ctx)
	if err != nil {
		return 0, err
	}
	pick := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		pick[id] = struct{}{}
	}
	deleted := 0
	for _, ref := range refs {
		if _, ok := pick[ref.ID]; !all && !ok {
			continue
		}
		if err := s.remove(ctx, ref); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// DeleteKey removes one object and its reference. It reports false when
// neither existed.
func (s *Service) DeleteKey(ctx context.Context, key string) (bool, error) {
	refs, err := s.refs.All(ctx)
	if err != nil {
		return false, err
	}
	for _, ref := range refs {
		if ref.ObjectKey == key {
			return true, s.remove(ctx, ref)
		}
	}
	err = s.blobs.Delete(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) remove(ctx context.Context, ref models.FileReferenceModel) error {
	key := ref.ObjectKey
	if key == "" {
		key, _ = s.blobs.KeyFromURL(ref.FileURL)
	}
	if key != "" {
		if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, blob.ErrNotFound) {
			s.log.Warn("delete object failed", zap.String("key", key), zap.Error(err))
			return err
		}
	}
	_, err := s.refs.Delete(ctx, ref.ID)
	return err
}
