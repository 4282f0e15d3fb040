// Package jsonx provides a tagged-union representation of JSON-like values.
//
// Vendor payloads and golden fixtures are arbitrarily shaped trees. Instead
// of passing raw `any` values around and type-asserting at every access,
// this package models a tree node as a Value with an explicit Kind and
// offers accessors that report absence instead of panicking.
package jsonx

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Bytes
	Array
	Object
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "float"
	case String:
		return "str"
	case Bytes:
		return "bytes"
	case Array:
		return "list"
	case Object:
		return "dict"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single node of a JSON-like tree. The zero value is Null.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	raw  []byte
	arr  []Value
	obj  map[string]Value
}

// Constructors.

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue wraps a number. Integers and floats share this kind; the
// comparator treats them as one type class.
func NumberValue(f float64) Value { return Value{kind: Number, num: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// BytesValue wraps a raw binary payload (file contents). Bytes values are
// exempt from structural type checking.
func BytesValue(b []byte) Value { return Value{kind: Bytes, raw: b} }

// ArrayValue wraps a sequence of values.
func ArrayValue(elems ...Value) Value { return Value{kind: Array, arr: elems} }

// ObjectValue wraps a string-keyed mapping.
func ObjectValue(fields map[string]Value) Value { return Value{kind: Object, obj: fields} }

// Kind returns the node's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the node is null.
func (v Value) IsNull() bool { return v.kind == Null }

// Accessors. Each returns the typed value and whether the node has that kind.

// BoolVal returns the boolean payload.
func (v Value) BoolVal() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Float returns the numeric payload.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// Int returns the numeric payload truncated to an int.
func (v Value) Int() (int, bool) {
	if v.kind != Number {
		return 0, false
	}
	return int(v.num), true
}

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// RawBytes returns the binary payload.
func (v Value) RawBytes() ([]byte, bool) {
	if v.kind != Bytes {
		return nil, false
	}
	return v.raw, true
}

// Get returns the field with the given key from an object node.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	f, ok := v.obj[key]
	return f, ok
}

// Index returns the i-th element of an array node.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Len returns the number of elements (array) or fields (object), 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	default:
		return 0
	}
}

// Keys returns the sorted field names of an object node.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode parses JSON text into a Value tree.
func Decode(data []byte) (Value, error) {
	var any0 any
	if err := json.Unmarshal(data, &any0); err != nil {
		return Value{}, fmt.Errorf("decoding JSON tree: %w", err)
	}
	return FromAny(any0)
}

// FromAny converts a dynamically typed JSON-like value into a Value tree.
// Supported inputs are the encoding/json decode types plus Go integer and
// float variants, []byte (becomes Bytes), and Value itself (passed through).
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case float64:
		return NumberValue(t), nil
	case float32:
		return NumberValue(float64(t)), nil
	case int:
		return NumberValue(float64(t)), nil
	case int32:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("converting number %q: %w", t.String(), err)
		}
		return NumberValue(f), nil
	case string:
		return StringValue(t), nil
	case []byte:
		return BytesValue(t), nil
	case []any:
		elems := make([]Value, 0, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return ArrayValue(elems...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", k, err)
			}
			fields[k] = ev
		}
		return ObjectValue(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}

// FromRecord converts an arbitrary struct (typically a canonical record)
// into a Value tree by round-tripping through its JSON encoding. This is
// how live adapter outputs are materialized for equivalence checking.
func FromRecord(rec any) (Value, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return Value{}, fmt.Errorf("encoding record: %w", err)
	}
	return Decode(data)
}

// Interface converts the Value tree back into plain dynamically typed form
// (nil, bool, float64, string, []byte, []any, map[string]any).
func (v Value) Interface() any {
	switch v.kind {
	case Null:
		return nil
	case Bool:
		return v.b
	case Number:
		return v.num
	case String:
		return v.str
	case Bytes:
		return v.raw
	case Array:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the Value tree as JSON. Bytes nodes encode as
// base64 strings, matching encoding/json's []byte convention.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Bytes:
		return json.Marshal(v.raw)
	default:
		return json.Marshal(v.Interface())
	}
}

// UnmarshalJSON decodes JSON text into the Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec, err := Decode(data)
	if err != nil {
		return err
	}
	*v = dec
	return nil
}
