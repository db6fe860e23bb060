package ir

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"unicode/utf16"
)

// Value is a sealed interface over the input shapes a condition builder
// understands. Only Null, String, Int, Float, Bool, Array, Object and Opaque
// implement it.
type Value interface {
	irValue() // Sealed - only these types implement it
}

// Null is the absent value.
type Null struct{}

func (Null) irValue() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String is a string scalar.
type String string

func (String) irValue() {}

// Int is an integer scalar. All Go integer kinds normalize to int64.
type Int int64

func (Int) irValue() {}

// Float is a floating point scalar.
type Float float64

func (Float) irValue() {}

// Bool is a boolean scalar.
type Bool bool

func (Bool) irValue() {}

// Array is an ordered collection of values.
type Array []Value

func (Array) irValue() {}

// Object is a string-keyed map of values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) irValue() {}

// Opaque wraps a Go value the builders do not inspect, such as time.Time or
// a driver.Valuer. It is bound to the placeholder unchanged.
type Opaque struct {
	V any
}

func (Opaque) irValue() {}

// Of normalizes an arbitrary Go value into a Value.
//
//   - nil and nil pointers become Null
//   - a Value is returned unchanged
//   - strings, integer kinds, floats and bools become scalars (named types included)
//   - slices and arrays become Array, except byte slices and byte arrays of
//     any named type; a nil slice is Null
//   - map[string]any becomes Object
//   - driver.Valuer and everything else becomes Opaque
func Of(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Value:
		return val
	case driver.Valuer:
		return Opaque{V: val}
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Int(val)
	case int64:
		return Int(val)
	case int32:
		return Int(val)
	case float64:
		return Float(val)
	case []byte:
		return Opaque{V: val}
	case []any:
		if val == nil {
			return Null{}
		}
		arr := make(Array, len(val))
		for i, elem := range val {
			arr[i] = Of(elem)
		}
		return arr
	case []string:
		if val == nil {
			return Null{}
		}
		arr := make(Array, len(val))
		for i, elem := range val {
			arr[i] = String(elem)
		}
		return arr
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			obj[k] = Of(elem)
		}
		return obj
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}
		}
		return Of(rv.Elem().Interface())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Opaque{V: v}
		}
		return Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// net.IP, json.RawMessage and other byte strings are single values.
			return Opaque{V: v}
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null{}
		}
		arr := make(Array, rv.Len())
		for i := range arr {
			arr[i] = Of(rv.Index(i).Interface())
		}
		return arr
	}
	return Opaque{V: v}
}

// IsAbsent reports whether v is the absent value: nil, Null or the empty
// string. Both collapse to the same NULL-oriented branch in every builder.
func IsAbsent(v Value) bool {
	switch val := v.(type) {
	case nil, Null:
		return true
	case String:
		return val == ""
	default:
		return false
	}
}

// Native converts a Value into the Go value bound to a placeholder.
// Scalars map to string, int64, float64 and bool; Array maps to []any;
// Opaque yields the wrapped value; Null yields nil.
func Native(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case Bool:
		return bool(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Native(elem)
		}
		return out
	case Object:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = Native(elem)
		}
		return out
	case Opaque:
		return val.V
	default:
		return nil
	}
}

// Kind returns a short name for the shape of v, for diagnostics.
func Kind(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Array:
		return "array"
	case Object:
		return "object"
	case Opaque:
		return "opaque"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 byte order, which differs outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// UnmarshalValue decodes JSON into a Value.
// Integral numbers become Int, other numbers Float, null becomes Null.
func UnmarshalValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return fromJSON(raw)
}

// fromJSON converts a value decoded with UseNumber into a Value.
func fromJSON(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		s := string(val)
		if !strings.ContainsAny(s, ".eE") {
			if n, err := val.Int64(); err == nil {
				return Int(n), nil
			}
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %s: %w", s, err)
		}
		return Float(f), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			irElem, err := fromJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			irElem, err := fromJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = irElem
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported JSON type: %T", v)
	}
}
