// Package jsonize converts in-memory Go values into a generic JSON value
// tree and renders that tree as JSON text.
//
// The tree is a closed set of variants: Null, Bool, Int, Uint, Float,
// String, Array and Object. Encode builds a tree from an arbitrary value by
// dispatching on its type; foreign aggregate types participate by
// implementing the Converter interface. Render turns a tree into compact or
// pretty JSON text, and WriteToFile persists the pretty form.
//
// Encoding recurses without a depth limit, so self-referential structures
// are unsupported and will exhaust the stack rather than return an error.
package jsonize

import "strconv"

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "Null",
	KindBool:   "Bool",
	KindInt:    "Int",
	KindUint:   "Uint",
	KindFloat:  "Float",
	KindString: "String",
	KindArray:  "Array",
	KindObject: "Object",
}

// String returns the symbolic name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is one node of a JSON tree. The set of implementations is closed:
// Null, Bool, Int, Uint, Float, String, Array and Object are the only
// variants, and every node holds exactly one of them. Values are created
// fresh by each Encode call and never alias the source data; treat them as
// immutable once built.
type Value interface {
	// Kind reports which variant the node is.
	Kind() Kind

	isValue()
}

// Null is the explicit JSON null value. It is distinct from an absent key
// or an empty array, and is produced for nil slices, nil maps and nil
// pointers.
type Null struct{}

// Bool is a JSON true or false.
type Bool bool

// Int is a JSON number holding a signed 64-bit integer.
type Int int64

// Uint is a JSON number holding an unsigned 64-bit integer.
type Uint uint64

// Float is a JSON number holding a 64-bit float.
type Float float64

// String is a JSON string.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Member is a single key/value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a mapping from string keys to values. Keys are unique and their
// insertion order is preserved for rendering; order does not participate in
// equality. Use Set to keep the uniqueness invariant when building objects
// by hand.
type Object []Member

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Uint) Kind() Kind   { return KindUint }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Uint) isValue()   {}
func (Float) isValue()  {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// Get returns the value stored under key and whether the key is present.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set returns o with v stored under key, replacing the existing member in
// place when the key is already present and appending a new member
// otherwise.
func (o Object) Set(key string, v Value) Object {
	for i, m := range o {
		if m.Key == key {
			o[i].Value = v
			return o
		}
	}
	return append(o, Member{Key: key, Value: v})
}

// Keys returns the object's keys in member order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Equal reports whether a and b are structurally equal: the same variant
// with equal contents. Arrays compare element-wise in order; objects
// compare key-wise regardless of member order. Values of different numeric
// variants are never equal, so Int(1) does not equal Float(1).
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Int:
		return av == b.(Int)
	case Uint:
		return av == b.(Uint)
	case Float:
		return av == b.(Float)
	case String:
		return av == b.(String)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv := b.(Object)
		if len(av) != len(bv) {
			return false
		}
		for _, m := range av {
			w, ok := bv.Get(m.Key)
			if !ok || !Equal(m.Value, w) {
				return false
			}
		}
		return true
	}
	return false
}
