package document

import "reflect"

// Value is one document field value: a nested *Document, a List, or a
// Scalar.
type Value interface {
	copyValue() Value
	equalValue(Value) bool
}

// Scalar wraps a YAML scalar (string, int, float64, bool, nil, ...).
type Scalar struct {
	V any
}

// List is an ordered sequence of values.
type List []Value

func (s Scalar) copyValue() Value { return s }

func (s Scalar) equalValue(other Value) bool {
	o, ok := other.(Scalar)
	return ok && reflect.DeepEqual(s.V, o.V)
}

func (l List) copyValue() Value {
	out := make(List, len(l))
	for i, v := range l {
		out[i] = v.copyValue()
	}
	return out
}

func (l List) equalValue(other Value) bool {
	o, ok := other.(List)
	if !ok || len(l) != len(o) {
		return false
	}
	for i, v := range l {
		if !v.equalValue(o[i]) {
			return false
		}
	}
	return true
}

// Document is an order-preserving string-keyed mapping.
type Document struct {
	keys   []string
	values map[string]Value
}

// New returns an empty document.
func New() *Document {
	return &Document{values: make(map[string]Value)}
}

// Len returns the number of keys.
func (d *Document) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order. The slice is a copy.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the value for key.
func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores a value, appending the key to the order if it is new.
func (d *Document) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Delete removes a key if present.
func (d *Document) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Copy returns a deep copy.
func (d *Document) Copy() *Document {
	out := &Document{
		keys:   make([]string, len(d.keys)),
		values: make(map[string]Value, len(d.values)),
	}
	copy(out.keys, d.keys)
	for k, v := range d.values {
		out.values[k] = v.copyValue()
	}
	return out
}

// Equal reports deep equality including key order.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.keys) != len(other.keys) {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		if !d.values[k].equalValue(other.values[k]) {
			return false
		}
	}
	return true
}

func (d *Document) copyValue() Value { return d.Copy() }

func (d *Document) equalValue(other Value) bool {
	o, ok := other.(*Document)
	return ok && d.Equal(o)
}

// String returns the string value of a scalar field. The second result is
// false when the key is absent or not a string scalar.
func (d *Document) String(key string) (string, bool) {
	v, ok := d.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(Scalar)
	if !ok {
		return "", false
	}
	str, ok := s.V.(string)
	return str, ok
}

// Float returns a numeric scalar field as float64, accepting int and
// float64 scalars.
func (d *Document) Float(key string) (float64, bool) {
	v, ok := d.values[key]
	if !ok {
		return 0, false
	}
	s, ok := v.(Scalar)
	if !ok {
		return 0, false
	}
	switch n := s.V.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// StringList returns a field as a list of strings. A lone string scalar
// is coerced to a one-element list. The second result is false when the
// key is absent or any element is not a string scalar.
func (d *Document) StringList(key string) ([]string, bool) {
	v, ok := d.values[key]
	if !ok {
		return nil, false
	}
	switch tv := v.(type) {
	case Scalar:
		if s, ok := tv.V.(string); ok {
			return []string{s}, true
		}
		return nil, false
	case List:
		out := make([]string, 0, len(tv))
		for _, item := range tv {
			s, ok := item.(Scalar)
			if !ok {
				return nil, false
			}
			str, ok := s.V.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}

// Mapping returns a nested mapping field.
func (d *Document) Mapping(key string) (*Document, bool) {
	v, ok := d.values[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(*Document)
	return m, ok
}
