package store

import (
	"context"
	"errors"

	"github.com/tripdesk/crm-admin/internal/pkg/pagination"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
	"gorm.io/gorm"
)

// Gorm is a Repository backed by a gorm connection.
type Gorm[T any] struct {
	db    *gorm.DB
	order string
}

// NewGorm creates a repository listing newest records first.
func NewGorm[T any](db *gorm.DB) *Gorm[T] {
	return &Gorm[T]{db: db, order: "created_at DESC"}
}

// OrderBy overrides the list ordering clause.
func (r *Gorm[T]) OrderBy(order string) *Gorm[T] {
	r.order = order
	return r
}

func (r *Gorm[T]) List(ctx context.Context, q pagination.Query) ([]T, response.Pagination, error) {
	tx := r.db.WithContext(ctx).Model(new(T)).Order(r.order)
	var items []T
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (r *Gorm[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Order(r.order).Find(&items).Error
	return items, err
}

func (r *Gorm[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *Gorm[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *Gorm[T]) Save(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *Gorm[T]) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
