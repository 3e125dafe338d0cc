// Package resource implements the list/get/create/update/delete surface
// shared by every admin entity. An entity supplies a Schema mapping its
// model to form values; submissions are decoded and validated by the form
// engine, pending files are stored, and only then is the model saved.
package resource

import (
	"context"

	"github.com/tripdesk/crm-admin/internal/form"
)

// Schema binds a model type to its admin form.
type Schema[T any] struct {
	// Name is the route segment and the form name, e.g. "activities".
	Name   string
	Title  string
	Fields []form.FieldDescriptor

	// Values exposes a stored record as form values.
	Values func(*T) form.Values
	// Apply writes validated values onto a record. File fields hold stored
	// URL lists by the time Apply runs.
	Apply func(*T, form.Values) error

	// BeforeSave runs after Apply on create and update.
	BeforeSave func(context.Context, *T) error
	// Slug returns the public slug of a record. Entities without public
	// pages leave it nil.
	Slug func(*T) string
}

// Form is the serializable description of a Schema.
type Form struct {
	Name   string                 `json:"name"`
	Title  string                 `json:"title"`
	Fields []form.FieldDescriptor `json:"fields"`
}

// Form returns the description served by the forms endpoints.
func (s Schema[T]) Form() Form {
	return Form{Name: s.Name, Title: s.Title, Fields: s.Fields}
}

func (s Schema[T]) fileFields() []form.FieldDescriptor {
	var out []form.FieldDescriptor
	for _, f := range s.Fields {
		if f.Type == form.TypeFile {
			out = append(out, f)
		}
	}
	return out
}
