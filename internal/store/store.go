// Package store persists entities behind a small generic repository so
// services can run against gorm in production and memory in tests.
package store

import (
	"context"

	"github.com/tripdesk/crm-admin/internal/pkg/pagination"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

// Entity is implemented by *T for every model embedding models.Base.
type Entity interface {
	GetID() string
	SetID(id string)
}

// Repository is the persistence contract used by the module services.
// Get returns (nil, nil) when the record does not exist.
type Repository[T any] interface {
	List(ctx context.Context, q pagination.Query) ([]T, response.Pagination, error)
	All(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Save(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) (bool, error)
}
