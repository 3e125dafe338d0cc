package form

import (
	"fmt"
	"strings"
)

// CheckField validates one field. Custom fields and separators always pass.
func (r *Registry) CheckField(f FieldDescriptor, v any) string {
	if f.Type == TypeCustom || f.IsSeparator() {
		return ""
	}
	return r.Kind(f.Type).Check(f, v)
}

// Validate checks every required field of fields against values.
func (r *Registry) Validate(fields []FieldDescriptor, values Values) Errors {
	errs := Errors{}
	for _, f := range fields {
		if msg := r.CheckField(f, values[f.Name]); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

// Validate uses the default registry.
func Validate(fields []FieldDescriptor, values Values) Errors {
	return Default.Validate(fields, values)
}

// FirstError returns the first field, in list order, that has an error.
func FirstError(fields []FieldDescriptor, errs Errors) string {
	for _, f := range fields {
		if _, ok := errs[f.Name]; ok {
			return f.Name
		}
	}
	return ""
}

// ValidationError blocks a submission.
type ValidationError struct {
	Errors     Errors
	FirstField string
}

func (e *ValidationError) Error() string {
	if msg, ok := e.Errors[e.FirstField]; ok {
		if len(e.Errors) == 1 {
			return msg
		}
		return fmt.Sprintf("%s (and %d more)", msg, len(e.Errors)-1)
	}
	names := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		names = append(names, k)
	}
	return "invalid fields: " + strings.Join(names, ", ")
}

// NewValidationError validates values and returns nil when they pass.
func (r *Registry) NewValidationError(fields []FieldDescriptor, values Values) *ValidationError {
	errs := r.Validate(fields, values)
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs, FirstField: FirstError(fields, errs)}
}
