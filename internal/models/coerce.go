package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tripdesk/crm-admin/internal/pkg/priceformat"
)

// ErrUnknownField is returned by With when a record has no such field.
var ErrUnknownField = errors.New("unknown field")

func unknownField(kind, field string) error {
	return fmt.Errorf("%s: %w %q", kind, ErrUnknownField, field)
}

// AsString converts loosely typed input into a string.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// AsFloat converts loosely typed input into a number. Strings go through the
// price parser so "₹1,200" and "1200" are equivalent.
func AsFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		return priceformat.Parse(x)
	default:
		return 0, fmt.Errorf("%w: cannot use %T as a number", ErrInvalidValue, v)
	}
}

// ErrInvalidValue is returned when a value is outside a field's domain.
var ErrInvalidValue = errors.New("invalid value")

// ErrNegativeAmount is returned when a price or surcharge is below zero.
var ErrNegativeAmount = errors.New("amount must not be negative")

func asAmount(field string, v any) (float64, error) {
	n, err := AsFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: %w", field, ErrNegativeAmount)
	}
	return n, nil
}

// AsBool converts loosely typed input into a bool.
func AsBool(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "false", "0", "off", "no":
			return false, nil
		case "true", "1", "on", "yes":
			return true, nil
		}
		return false, fmt.Errorf("%w: cannot use %q as a bool", ErrInvalidValue, x)
	case float64:
		return x != 0, nil
	case int:
		return x != 0, nil
	default:
		return false, fmt.Errorf("%w: cannot use %T as a bool", ErrInvalidValue, v)
	}
}

// AsStrings converts a list-ish value into a string slice. A JSON encoded
// array string is decoded; any other string becomes a one element list.
func AsStrings(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string(nil), x...), nil
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, AsString(item))
		}
		return out, nil
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" {
			return []string{}, nil
		}
		if strings.HasPrefix(trimmed, "[") {
			var out []string
			if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
			return out, nil
		}
		return []string{x}, nil
	default:
		return nil, fmt.Errorf("%w: cannot use %T as a list", ErrInvalidValue, v)
	}
}
