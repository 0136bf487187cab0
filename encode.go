package jsonize

import (
	"fmt"
	"reflect"
	"sort"
)

// Converter is the contract a foreign aggregate type satisfies to take part
// in encoding. Encode calls ConvertToJSON exactly once per encode of such a
// value, after the nil-pointer short circuit, and embeds the result
// verbatim as a child node. The contract is structural: any type with the
// method participates, with no registration step.
//
// A value-receiver implementation covers both T and *T. With a pointer
// receiver only *T satisfies the interface, so pass the pointer.
type Converter interface {
	ConvertToJSON() Value
}

// UnsupportedTypeError reports a value whose type matches no dispatch rule
// and does not implement Converter.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "jsonize: unsupported type: " + e.Type.String()
}

// UnsupportedKeyTypeError reports an attempt to encode a map whose key type
// is not a string type. The check is made on the map type before any entry
// is visited, so a nil or empty map fails the same way.
type UnsupportedKeyTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedKeyTypeError) Error() string {
	return "jsonize: unsupported map key type: " + e.Type.Key().String()
}

// Encode converts v into a Value tree. Dispatch is by the static shape of
// the value's type, in precedence order:
//
//   - a Value is returned unchanged
//   - bool kinds become Bool, string kinds become String
//   - named numeric types implementing fmt.Stringer encode as String using
//     the symbolic name, never the numeric value
//   - remaining numeric kinds become Float, Int or Uint
//   - slices and arrays become Array; a nil slice becomes Null, not an
//     empty Array
//   - string-keyed maps become Object with entries in sorted key order; a
//     nil map becomes Null; any other key type fails with
//     *UnsupportedKeyTypeError
//   - nil pointers become Null; non-nil pointers are dereferenced, calling
//     ConvertToJSON when the pointer implements Converter
//   - anything else implementing Converter supplies its own encoding;
//     remaining types fail with *UnsupportedTypeError
//
// Composite rules recurse through Encode, so nesting of arbitrary depth is
// handled uniformly. Encode(nil) yields Null.
func Encode(v any) (Value, error) {
	if v == nil {
		return Null{}, nil
	}
	if jv, ok := v.(Value); ok {
		return jv, nil
	}
	return encodeValue(reflect.ValueOf(v))
}

// EncodeTuple encodes a fixed group of heterogeneous values as a single
// Array, preserving argument order. No arguments yield an empty Array.
func EncodeTuple(vs ...any) (Value, error) {
	arr := make(Array, len(vs))
	for i, v := range vs {
		jv, err := Encode(v)
		if err != nil {
			return nil, err
		}
		arr[i] = jv
	}
	return arr, nil
}

func encodeValue(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null{}, nil
	}
	if jv, ok := rv.Interface().(Value); ok {
		return jv, nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Float32, reflect.Float64:
		if name, ok := enumName(rv); ok {
			return String(name), nil
		}
		return Float(rv.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if name, ok := enumName(rv); ok {
			return String(name), nil
		}
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if name, ok := enumName(rv); ok {
			return String(name), nil
		}
		return Uint(rv.Uint()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return Null{}, nil
		}
		return encodeSequence(rv)
	case reflect.Array:
		return encodeSequence(rv)
	case reflect.Map:
		return encodeMap(rv)
	case reflect.Pointer:
		if rv.IsNil() {
			return Null{}, nil
		}
		if c, ok := rv.Interface().(Converter); ok {
			return c.ConvertToJSON(), nil
		}
		return encodeValue(rv.Elem())
	case reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return encodeValue(rv.Elem())
	default:
		if c, ok := rv.Interface().(Converter); ok {
			return c.ConvertToJSON(), nil
		}
		return nil, &UnsupportedTypeError{Type: rv.Type()}
	}
}

func encodeSequence(rv reflect.Value) (Value, error) {
	arr := make(Array, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := encodeValue(rv.Index(i))
		if err != nil {
			return nil, err
		}
		arr[i] = elem
	}
	return arr, nil
}

func encodeMap(rv reflect.Value) (Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, &UnsupportedKeyTypeError{Type: rv.Type()}
	}
	if rv.IsNil() {
		return Null{}, nil
	}

	// Map iteration order is unspecified, so sort the keys to keep the
	// member order, and with it the rendered output, deterministic.
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	obj := make(Object, 0, len(keys))
	for _, key := range keys {
		elem, err := encodeValue(rv.MapIndex(key))
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: key.String(), Value: elem})
	}
	return obj, nil
}

// enumName resolves the symbolic member name for named numeric types that
// carry one, per the stringer convention. The name table lives with the
// type definition; the numeric value itself never reaches the output.
func enumName(rv reflect.Value) (string, bool) {
	s, ok := rv.Interface().(fmt.Stringer)
	if !ok {
		return "", false
	}
	return s.String(), true
}
