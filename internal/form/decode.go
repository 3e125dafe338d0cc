package form

import "fmt"

// DecodeError names the field whose input could not be decoded.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("%s: %v", e.Field, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// Decode converts raw submitted values into typed ones. Keys that are not
// fields of the form are dropped; fields missing from raw stay missing.
func (r *Registry) Decode(fields []FieldDescriptor, raw map[string]any) (Values, error) {
	out := make(Values, len(fields))
	for _, f := range fields {
		if f.IsSeparator() {
			continue
		}
		v, ok := raw[f.Name]
		if !ok {
			continue
		}
		decoded, err := r.Kind(f.Type).Decode(v)
		if err != nil {
			return nil, &DecodeError{Field: f.Name, Err: err}
		}
		out[f.Name] = decoded
	}
	return out, nil
}

// Decode uses the default registry.
func Decode(fields []FieldDescriptor, raw map[string]any) (Values, error) {
	return Default.Decode(fields, raw)
}

// Field looks up a descriptor by name.
func Field(fields []FieldDescriptor, name string) (FieldDescriptor, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}
