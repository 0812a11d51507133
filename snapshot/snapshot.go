package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is an opaque, JSON-normalized structured value as returned by the
// remote test-management service: map[string]Value, []Value, string,
// json.Number, bool or nil.
type Value = any

type Kind uint8

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

// Snapshot wraps one remote snapshot value.
type Snapshot struct {
	V Value
}

func New(v any) (Snapshot, error) {
	nv, err := Normalize(v)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{V: nv}, nil
}

func FromJSON(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := s.UnmarshalJSON(b); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func (s *Snapshot) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	nv, err := Normalize(v)
	if err != nil {
		return err
	}
	s.V = nv
	return nil
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.V == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.V)
}

func (s Snapshot) Kind() Kind {
	switch s.V.(type) {
	case nil:
		return KindNull
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case json.Number:
		return KindNumber
	case bool:
		return KindBool
	default:
		return KindNull
	}
}

func (s Snapshot) IsNull() bool { return s.V == nil }

func (s Snapshot) AsObject() (map[string]any, bool) { v, ok := s.V.(map[string]any); return v, ok }
func (s Snapshot) AsArray() ([]any, bool)           { v, ok := s.V.([]any); return v, ok }
func (s Snapshot) AsString() (string, bool)         { v, ok := s.V.(string); return v, ok }
func (s Snapshot) AsBool() (bool, bool)             { v, ok := s.V.(bool); return v, ok }
func (s Snapshot) AsNumber() (json.Number, bool)    { v, ok := s.V.(json.Number); return v, ok }

// Field reads a top-level object key. The second result reports whether the
// snapshot is an object carrying that key.
func (s Snapshot) Field(key string) (Value, bool) {
	obj, ok := s.AsObject()
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{V: Copy(s.V)}
}

// Normalize canonicalizes an arbitrary Go value into the JSON value shape.
// Numbers become json.Number so no precision is lost on round trips.
func Normalize(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, json.Number:
		return t, nil
	case float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return json.Number(fmt.Sprintf("%v", t)), nil
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := Normalize(vv)
			if err != nil {
				return nil, err
			}
			m[k] = nv
		}
		return m, nil
	case []any:
		s := make([]any, len(t))
		for i := range t {
			nv, err := Normalize(t[i])
			if err != nil {
				return nil, err
			}
			s[i] = nv
		}
		return s, nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("value not JSON-serializable: %T: %w", t, err)
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var v2 any
		if err := dec.Decode(&v2); err != nil {
			return nil, err
		}
		return v2, nil
	}
}

// Copy deep-copies a normalized value. Mutating the copy never reaches the
// original, which is what makes baseline diffing sound.
func Copy(v Value) Value {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = Copy(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i := range t {
			s[i] = Copy(t[i])
		}
		return s
	case json.Number, string, bool:
		return t
	default:
		b, _ := json.Marshal(t)
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var v2 any
		if err := dec.Decode(&v2); err != nil {
			return nil
		}
		return v2
	}
}

// Equal compares two normalized values structurally. json.Number values
// compare by their literal text, which is stable for values that round-trip
// through the same service encoding.
func Equal(a, b Value) bool {
	switch ta := a.(type) {
	case nil:
		return b == nil
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case json.Number:
		tb, ok := b.(json.Number)
		return ok && ta.String() == tb.String()
	case map[string]any:
		tb, ok := b.(map[string]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for k, va := range ta {
			vb, ok := tb[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !Equal(ta[i], tb[i]) {
				return false
			}
		}
		return true
	default:
		na, errA := Normalize(a)
		nb, errB := Normalize(b)
		if errA != nil || errB != nil {
			return false
		}
		return Equal(na, nb)
	}
}
