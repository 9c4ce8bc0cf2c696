package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// Reserved filter fields holding nested entity filters.
const (
	FieldEvents  = "events"
	FieldActions = "actions"
)

var ErrInvalidJSON = errors.New("invalid json value")

type Field struct {
	Key   string
	Value Value
}

// Filter is an ordered mapping from field name to value. Field order is the
// insertion order, which is also the order fields were decoded from JSON.
type Filter struct {
	fields []Field
}

// NewFilter builds a filter from fields. A repeated key keeps its first
// position and takes the last value.
func NewFilter(fields ...Field) Filter {
	var f Filter
	for _, field := range fields {
		f.Set(field.Key, field.Value)
	}
	return f
}

// F is shorthand for a Field literal.
func F(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

func (f Filter) Len() int {
	return len(f.fields)
}

func (f Filter) Get(key string) (Value, bool) {
	for _, field := range f.fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return Null(), false
}

// Set replaces the value of an existing key in place or appends a new one.
func (f *Filter) Set(key string, v Value) {
	for i := range f.fields {
		if f.fields[i].Key == key {
			fields := make([]Field, len(f.fields))
			copy(fields, f.fields)
			fields[i].Value = v
			f.fields = fields
			return
		}
	}
	f.fields = append(f.fields[:len(f.fields):len(f.fields)], Field{Key: key, Value: v})
}

// Fields returns a copy of the fields in insertion order.
func (f Filter) Fields() []Field {
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

func (f Filter) Keys() []string {
	keys := make([]string, len(f.fields))
	for i, field := range f.fields {
		keys[i] = field.Key
	}
	return keys
}

// Entities returns the nested entity filters stored under key.
func (f Filter) Entities(key string) ([]Filter, bool) {
	v, ok := f.Get(key)
	if !ok {
		return nil, false
	}
	return v.Entities()
}

func (f Filter) Equal(o Filter) bool {
	if len(f.fields) != len(o.fields) {
		return false
	}
	for _, field := range f.fields {
		other, ok := o.Get(field.Key)
		if !ok || !field.Value.Equal(other) {
			return false
		}
	}
	return true
}

func (f Filter) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := field.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Filter) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	if v.IsNull() {
		*f = Filter{}
		return nil
	}
	obj, ok := v.AsObject()
	if !ok {
		return fmt.Errorf("%w: expected object, got %s", ErrInvalidJSON, v.Kind())
	}
	*f = obj
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		// NaN ve Infinity JSON'da yok, null yazılır
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		return v.obj.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	decoded, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	*v = decoded
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Null(), fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return Number(n), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null(), fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
			return List(items...), nil
		case '{':
			var obj Filter
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null(), fmt.Errorf("%w: %v", ErrInvalidJSON, err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null(), fmt.Errorf("%w: object key %v", ErrInvalidJSON, keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				obj.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null(), fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
			return Object(obj), nil
		}
	}
	return Null(), fmt.Errorf("%w: unexpected token %v", ErrInvalidJSON, tok)
}
