package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList accepts a bare array or a {success, data} / {data} envelope.
func decodeList[T any](data []byte) ([]T, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("client: list envelope: %w", err)
		}
		raw = bytes.TrimSpace(env.Data)
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("client: list body: %w", err)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := remarshal(normalizeID(item), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeRecord accepts a record with either an "id" or "_id" key, bare or
// wrapped in {data}.
func decodeRecord(data []byte, out any) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		// Not an object, e.g. a bare array for a list-shaped result.
		return json.Unmarshal(data, out)
	}
	if inner, ok := obj["data"].(map[string]any); ok && len(obj) <= 2 {
		obj = inner
	}
	return remarshal(normalizeID(obj), out)
}

func normalizeID(obj map[string]any) map[string]any {
	if _, ok := obj["id"]; ok {
		return obj
	}
	if id, ok := obj["_id"]; ok {
		obj["id"] = id
		delete(obj, "_id")
	}
	return obj
}

func remarshal(in map[string]any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("client: record: %w", err)
	}
	return nil
}
