package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
)

// Value is an exchange value: the untyped form of a setting as produced by
// decoding JSON (map[string]any, []any, string, json.Number, bool or nil).
// A nil Value stands for an absent optional input.
type Value = any

// ParseValue decodes JSON text into a Value. Numbers are kept as json.Number
// so they survive a round trip without losing precision.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v Value
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing JSON value: %w: %w", SerializationMismatch, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parsing JSON value: %w: trailing data after value", SerializationMismatch)
	}
	return v, nil
}

// ToValue serializes a concrete settings value into a Value.
func ToValue(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing %T: %w: %w", v, SerializationMismatch, err)
	}
	return ParseValue(data)
}

// FromValue strictly decodes a Value into T. The object keys of the value
// must match the fields of T exactly: unknown fields, keys that differ from a
// field name only in case, and missing fields are all rejected. A missing
// field is tolerated only when T would encode it as null or omit it.
func FromValue[T any](v Value) (T, error) {
	var out T
	if v == nil {
		return out, fmt.Errorf("decoding %T: %w: value is missing", out, SerializationMismatch)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("decoding %T: %w: %w", out, SerializationMismatch, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("decoding %T: %w: %w", out, SerializationMismatch, err)
	}

	in, err := ParseValue(data)
	if err != nil {
		return out, err
	}
	encoded, err := ToValue(out)
	if err != nil {
		return out, err
	}
	if err := matchFields(in, encoded, ""); err != nil {
		return out, fmt.Errorf("decoding %T: %w: %w", out, SerializationMismatch, err)
	}
	return out, nil
}

// matchFields compares the object keys of a decoded input with those of the
// value it decoded into, re-encoded. path is the JSON pointer of in.
func matchFields(in, encoded Value, path string) error {
	switch in := in.(type) {
	case map[string]any:
		enc, ok := encoded.(map[string]any)
		if !ok {
			return nil
		}
		for _, key := range slices.Sorted(maps.Keys(in)) {
			field, ok := enc[key]
			if !ok {
				// Zero values of omitempty fields are dropped on encoding.
				if isEmpty(in[key]) {
					continue
				}
				return fmt.Errorf("field %q does not match a declared field name", path+"/"+key)
			}
			if err := matchFields(in[key], field, path+"/"+key); err != nil {
				return err
			}
		}
		for _, key := range slices.Sorted(maps.Keys(enc)) {
			if _, ok := in[key]; !ok && enc[key] != nil {
				return fmt.Errorf("missing field %q", path+"/"+key)
			}
		}
	case []any:
		enc, ok := encoded.([]any)
		if !ok || len(enc) != len(in) {
			return nil
		}
		for i := range in {
			if err := matchFields(in[i], enc[i], path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func isEmpty(v Value) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// optionalFromValue decodes v into a *T, mapping an absent value to nil.
func optionalFromValue[T any](v Value) (*T, error) {
	if v == nil {
		return nil, nil
	}
	out, err := FromValue[T](v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
