package model

import (
	"encoding/json"
	"fmt"
)

const (
	needsDataTag = "NeedsData"
	completeTag  = "Complete"
)

// GenerateResult is the outcome of generating a setting. Either generation
// needs more data from other settings (NeedsData, carrying what has been
// generated so far) or it produced a complete value (Complete). Both payloads
// are optional. The zero value is NeedsData with no partial.
type GenerateResult[P, T any] struct {
	complete bool
	partial  *P
	value    *T
}

// NeedsData returns a result reporting that generation requires further
// settings, along with the partially generated value if any.
func NeedsData[P, T any](partial *P) GenerateResult[P, T] {
	return GenerateResult[P, T]{partial: partial}
}

// Complete returns a result carrying the fully generated value.
func Complete[P, T any](value *T) GenerateResult[P, T] {
	return GenerateResult[P, T]{complete: true, value: value}
}

// IsComplete reports whether generation finished.
func (r GenerateResult[P, T]) IsComplete() bool { return r.complete }

// Partial returns the partial payload of a NeedsData result.
func (r GenerateResult[P, T]) Partial() *P { return r.partial }

// Value returns the payload of a Complete result.
func (r GenerateResult[P, T]) Value() *T { return r.value }

// MarshalJSON encodes the result as {"NeedsData": partial} or
// {"Complete": value}, with null for an absent payload.
func (r GenerateResult[P, T]) MarshalJSON() ([]byte, error) {
	if r.complete {
		return json.Marshal(map[string]*T{completeTag: r.value})
	}
	return json.Marshal(map[string]*P{needsDataTag: r.partial})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (r *GenerateResult[P, T]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding generate result: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("decoding generate result: expected exactly one of %q or %q", needsDataTag, completeTag)
	}

	*r = GenerateResult[P, T]{}
	if payload, ok := raw[completeTag]; ok {
		r.complete = true
		if err := json.Unmarshal(payload, &r.value); err != nil {
			return fmt.Errorf("decoding %s payload: %w", completeTag, err)
		}
		return nil
	}
	if payload, ok := raw[needsDataTag]; ok {
		if err := json.Unmarshal(payload, &r.partial); err != nil {
			return fmt.Errorf("decoding %s payload: %w", needsDataTag, err)
		}
		return nil
	}
	return fmt.Errorf("decoding generate result: expected exactly one of %q or %q", needsDataTag, completeTag)
}

// eraseGenerateResult converts both payloads of r into exchange values.
func eraseGenerateResult[P, T any](r GenerateResult[P, T]) (GenerateResult[Value, Value], error) {
	if r.complete {
		if r.value == nil {
			return Complete[Value, Value](nil), nil
		}
		v, err := ToValue(*r.value)
		if err != nil {
			return GenerateResult[Value, Value]{}, err
		}
		return Complete[Value](&v), nil
	}

	if r.partial == nil {
		return NeedsData[Value, Value](nil), nil
	}
	v, err := ToValue(*r.partial)
	if err != nil {
		return GenerateResult[Value, Value]{}, err
	}
	return NeedsData[Value, Value](&v), nil
}
