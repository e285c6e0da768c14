package projection

import (
	"bytes"
	"encoding/json"
)

// Object is an ordered field-name to value mapping: one projected record.
// encoding/json sorts plain maps alphabetically, which would break the
// declared-field-order guarantee, so Object keeps insertion order and
// marshals accordingly. Values are scalars, *Object, or List.
type Object struct {
	names  []string
	values map[string]any
}

// List is an ordered sequence of projected values: a projected collection or
// many-association.
type List []any

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores a value under name, appending the name to the order on first
// use. Setting an existing name overwrites in place.
func (o *Object) Set(name string, value any) {
	if _, exists := o.values[name]; !exists {
		o.names = append(o.names, name)
	}
	o.values[name] = value
}

// Get returns the value stored under name.
func (o *Object) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.names)
}

// Names returns the entry names in insertion order.
func (o *Object) Names() []string {
	names := make([]string, len(o.names))
	copy(names, o.names)
	return names
}

// MarshalJSON encodes the object preserving insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range o.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
