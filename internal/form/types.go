// Package form describes admin forms as field lists and implements their
// validation, layout and submission rules.
package form

import "strings"

// FieldType selects the editor and the validation rule of a field.
type FieldType string

const (
	TypeText        FieldType = "text"
	TypeEmail       FieldType = "email"
	TypePassword    FieldType = "password"
	TypeTextarea    FieldType = "textarea"
	TypeCheckbox    FieldType = "checkbox"
	TypeRadio       FieldType = "radio"
	TypeSelect      FieldType = "select"
	TypeSwitch      FieldType = "switch"
	TypeRichText    FieldType = "richtext"
	TypeFile        FieldType = "file"
	TypeNumber      FieldType = "number"
	TypeMultiSelect FieldType = "multiselect"
	TypeDaywise     FieldType = "daywise"
	TypeHotels      FieldType = "hotels"
	TypePackages    FieldType = "packages"
	TypeBatches     FieldType = "batches"
	TypeCustom      FieldType = "custom"
	TypeSEO         FieldType = "seo"
	TypeDate        FieldType = "date"
)

// SeparatorPrefix marks layout-only entries that carry no value.
const SeparatorPrefix = "__separator"

// Option is one choice of a radio, select or multiselect field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldDescriptor configures one form field.
type FieldDescriptor struct {
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	Type         FieldType `json:"type"`
	Placeholder  string    `json:"placeholder,omitempty"`
	Options      []Option  `json:"options,omitempty"`
	FullWidth    bool      `json:"fullWidth,omitempty"`
	Required     bool      `json:"required,omitempty"`
	SingleImage  bool      `json:"singleImage,omitempty"`
	CustomRender string    `json:"customRender,omitempty"`
}

// IsSeparator reports whether f only splits the layout.
func (f FieldDescriptor) IsSeparator() bool {
	return strings.HasPrefix(f.Name, SeparatorPrefix)
}

// DisplayName is the label, falling back to the field name.
func (f FieldDescriptor) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Values maps field names to their current value.
type Values map[string]any

// Clone returns a shallow copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Errors maps field names to a message.
type Errors map[string]string

// FileLike is a pending upload held in a file slot.
type FileLike interface {
	FileName() string
}

// Filler is implemented by slot values that know whether they carry content.
type Filler interface {
	Filled() bool
}
