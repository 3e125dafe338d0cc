package form

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/tripdesk/crm-admin/internal/editor"
	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/models"
	"gorm.io/datatypes"
)

// Kind is the behaviour attached to one FieldType.
type Kind interface {
	// Check returns a message when a required value is missing.
	Check(f FieldDescriptor, v any) string
	// Decode turns submitted input into the typed value of the field.
	Decode(raw any) (any, error)
	// FullWidth forces the field onto its own layout row.
	FullWidth() bool
	// InlineLabel means the editor renders its own label.
	InlineLabel() bool
}

type kind struct {
	fullWidth   bool
	inlineLabel bool
	empty       func(v any) bool
	decode      func(raw any) (any, error)
}

func (k kind) Check(f FieldDescriptor, v any) string {
	if !f.Required || k.empty == nil || !k.empty(v) {
		return ""
	}
	return f.DisplayName() + " is required"
}

func (k kind) Decode(raw any) (any, error) {
	if k.decode == nil {
		return raw, nil
	}
	return k.decode(raw)
}

func (k kind) FullWidth() bool   { return k.fullWidth }
func (k kind) InlineLabel() bool { return k.inlineLabel }

// Registry maps field types to their Kind.
type Registry struct {
	mu    sync.RWMutex
	kinds map[FieldType]Kind
}

// NewRegistry returns a registry holding the built-in field types.
func NewRegistry() *Registry {
	r := &Registry{kinds: make(map[FieldType]Kind)}
	text := kind{empty: isBlank, decode: decodeString}
	for _, t := range []FieldType{TypeText, TypeEmail, TypePassword, TypeSelect, TypeDate} {
		r.kinds[t] = text
	}
	r.kinds[TypeTextarea] = kind{fullWidth: true, empty: isBlank, decode: decodeString}
	r.kinds[TypeRadio] = kind{fullWidth: true, empty: isBlank, decode: decodeString}
	r.kinds[TypeNumber] = kind{empty: isBlank, decode: decodeNumber}
	r.kinds[TypeCheckbox] = kind{inlineLabel: true, empty: isBlank, decode: decodeBool}
	r.kinds[TypeSwitch] = kind{inlineLabel: true, empty: isBlank, decode: decodeBool}
	r.kinds[TypeMultiSelect] = kind{empty: isBlank, decode: decodeStrings}
	r.kinds[TypeRichText] = kind{fullWidth: true, inlineLabel: true, empty: isBlankRichText, decode: decodeString}
	r.kinds[TypeFile] = kind{fullWidth: true, inlineLabel: true, empty: hasNoFile, decode: decodeFiles}
	r.kinds[TypeDaywise] = kind{fullWidth: true, inlineLabel: true, empty: isBlank, decode: decodeDays}
	r.kinds[TypeHotels] = kind{fullWidth: true, inlineLabel: true, empty: isBlank, decode: decodeHotels}
	r.kinds[TypePackages] = kind{fullWidth: true, inlineLabel: true, empty: hasNoBasePackage, decode: decodePackages}
	r.kinds[TypeBatches] = kind{fullWidth: true, inlineLabel: true, empty: isBlank, decode: decodeBatches}
	r.kinds[TypeSEO] = kind{fullWidth: true, inlineLabel: true, empty: isBlank, decode: decodeSEO}
	r.kinds[TypeCustom] = kind{inlineLabel: true}
	return r
}

// Default is the registry used by the package level helpers.
var Default = NewRegistry()

// Register adds or replaces the Kind of a field type.
func (r *Registry) Register(t FieldType, k Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[t] = k
}

// Register adds a field type to the default registry.
func Register(t FieldType, k Kind) { Default.Register(t, k) }

// Kind returns the Kind of t. Unknown types behave like text.
func (r *Registry) Kind(t FieldType) Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if k, ok := r.kinds[t]; ok {
		return k
	}
	return r.kinds[TypeText]
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isBlankRichText(v any) bool {
	if isBlank(v) {
		return true
	}
	s, ok := v.(string)
	return ok && PlainText(s) == ""
}

func hasNoFile(v any) bool {
	if isBlank(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return !slotFilled(v)
	}
	for i := 0; i < rv.Len(); i++ {
		if slotFilled(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func slotFilled(v any) bool {
	switch x := v.(type) {
	case string:
		return x != ""
	case Filler:
		return x.Filled()
	case FileLike:
		return !isBlank(x)
	}
	return false
}

func hasNoBasePackage(v any) bool {
	switch x := v.(type) {
	case models.PackageDetails:
		return len(x.BasePackages) == 0
	case *models.PackageDetails:
		return x == nil || len(x.BasePackages) == 0
	case datatypes.JSONType[models.PackageDetails]:
		return len(x.Data().BasePackages) == 0
	case map[string]any:
		return isBlank(x["base_packages"])
	}
	return true
}

func decodeString(raw any) (any, error) {
	return models.AsString(raw), nil
}

func decodeNumber(raw any) (any, error) {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if raw == nil {
		return nil, nil
	}
	return models.AsFloat(raw)
}

func decodeBool(raw any) (any, error) {
	return models.AsBool(raw)
}

func decodeStrings(raw any) (any, error) {
	return models.AsStrings(raw)
}

func decodeFiles(raw any) (any, error) {
	return imageupload.SlotsFrom(raw)
}

func decodeDays(raw any) (any, error) {
	days, err := viaJSON[[]models.DayActivity](raw)
	if err != nil {
		return nil, err
	}
	return editor.NormalizeDays(days), nil
}

func decodeHotels(raw any) (any, error) {
	hotels, err := viaJSON[[]models.HotelDetail](raw)
	if err != nil {
		return nil, err
	}
	return editor.NormalizeHotels(hotels), nil
}

func decodeBatches(raw any) (any, error) {
	batches, err := viaJSON[[]models.Batch](raw)
	if err != nil {
		return nil, err
	}
	return editor.NormalizeBatches(batches), nil
}

func decodePackages(raw any) (any, error) {
	p, err := viaJSON[models.PackageDetails](raw)
	if err != nil {
		return nil, err
	}
	return editor.NormalizePackages(p), nil
}

func decodeSEO(raw any) (any, error) {
	seo, err := viaJSON[models.SEOData](raw)
	if err != nil {
		return nil, err
	}
	return editor.NormalizeSEO(seo), nil
}

// viaJSON decodes raw into T. Strings are parsed as JSON documents, other
// values are re-encoded first.
func viaJSON[T any](raw any) (T, error) {
	var out T
	switch x := raw.(type) {
	case nil:
		return out, nil
	case T:
		return x, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return out, nil
		}
		err := json.Unmarshal([]byte(x), &out)
		return out, err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(b, &out)
	return out, err
}
