package form

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmitting is returned by Submit while an earlier submission is running.
var ErrSubmitting = errors.New("form is already submitting")

// SubmitFunc receives a copy of the validated values.
type SubmitFunc func(ctx context.Context, values Values) error

// Form tracks the values, errors and touched state of one form instance.
type Form struct {
	mu         sync.Mutex
	registry   *Registry
	fields     []FieldDescriptor
	values     Values
	errors     Errors
	touched    map[string]bool
	submitting bool
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithRegistry uses r instead of the default registry.
func WithRegistry(r *Registry) FormOption {
	return func(f *Form) { f.registry = r }
}

// New creates a form seeded with initial values.
func New(fields []FieldDescriptor, initial Values, opts ...FormOption) *Form {
	f := &Form{
		registry: Default,
		fields:   append([]FieldDescriptor(nil), fields...),
		values:   initial.Clone(),
		errors:   Errors{},
		touched:  map[string]bool{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fields returns the descriptors of the form.
func (f *Form) Fields() []FieldDescriptor {
	return append([]FieldDescriptor(nil), f.fields...)
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Clone()
}

// Value returns the current value of one field.
func (f *Form) Value(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// SetValue changes one field. A shown error on that field is re-checked
// and cleared as soon as the new value passes.
func (f *Form) SetValue(name string, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[name] = v
	if _, shown := f.errors[name]; !shown {
		return
	}
	fd, ok := Field(f.fields, name)
	if !ok {
		delete(f.errors, name)
		return
	}
	if msg := f.registry.CheckField(fd, v); msg != "" {
		f.errors[name] = msg
	} else {
		delete(f.errors, name)
	}
}

// Touch marks a field as visited.
func (f *Form) Touch(name string) {
	f.mu.Lock()
	f.touched[name] = true
	f.mu.Unlock()
}

// Touched reports whether a field was visited or a submit was attempted.
func (f *Form) Touched(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[name]
}

// Errors returns a copy of the shown errors.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// IsSubmitting reports whether a submit callback is running.
func (f *Form) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit validates the values and, when they pass, calls fn exactly once.
// A failed validation marks every field touched and returns a
// *ValidationError without calling fn.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitting
	}
	verr := f.registry.NewValidationError(f.fields, f.values)
	if verr != nil {
		for _, fd := range f.fields {
			f.touched[fd.Name] = true
		}
		f.errors = verr.Errors
		f.mu.Unlock()
		return verr
	}
	f.errors = Errors{}
	f.submitting = true
	values := f.values.Clone()
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()
	return fn(ctx, values)
}
