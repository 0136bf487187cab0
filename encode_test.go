package jsonize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueDiff reports a diff between two trees, empty when they are
// structurally equal.
func valueDiff(want, got Value) string {
	return cmp.Diff(want, got, cmp.Comparer(Equal))
}

// weekday is a signed-integer enum in the stringer convention: the name
// table lives next to the constants.
type weekday int

const (
	sunday weekday = iota
	monday
	tuesday
)

var weekdayNames = [...]string{
	sunday:  "Sunday",
	monday:  "Monday",
	tuesday: "Tuesday",
}

func (d weekday) String() string { return weekdayNames[d] }

// priority is an unsigned enum with non-contiguous values.
type priority uint8

const (
	low  priority = 1
	high priority = 9
)

func (p priority) String() string {
	switch p {
	case low:
		return "low"
	case high:
		return "high"
	}
	return "unknown"
}

// grade is a float-backed enum, to pin down rule order: enums win over the
// plain float rule whatever the underlying representation.
type grade float64

const (
	fail grade = 0.0
	pass grade = 1.0
)

func (g grade) String() string {
	if g == pass {
		return "pass"
	}
	return "fail"
}

// loud is a named string type with a String method; the string rule must
// still win over the enum rule.
type loud string

func (loud) String() string { return "LOUD" }

// onoff is a named bool type with a String method; the bool rule wins.
type onoff bool

func (onoff) String() string { return "ON" }

// point implements Converter with a value receiver.
type point struct{ x, y int }

func (p point) ConvertToJSON() Value {
	return Object{
		{Key: "x", Value: Int(p.x)},
		{Key: "y", Value: Int(p.y)},
	}
}

// counter implements Converter with a pointer receiver.
type counter struct{ n int }

func (c *counter) ConvertToJSON() Value { return Int(c.n) }

// record is an aggregate whose hook marks two fields for encoding.
type record struct {
	id   int
	tags []string
}

func (r record) ConvertToJSON() Value {
	tags, _ := Encode(r.tags)
	return Object{
		{Key: "i", Value: Int(r.id)},
		{Key: "a", Value: tags},
	}
}

// plain carries no hook, so it must be rejected.
type plain struct{ A int }

func TestEncode_Booleans(t *testing.T) {
	v, err := Encode(false)
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)

	v, err = Encode(true)
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)
}

func TestEncode_SignedIntegers(t *testing.T) {
	inputs := []any{int(42), int8(42), int16(42), int32(42), int64(42)}
	for _, in := range inputs {
		v, err := Encode(in)
		require.NoError(t, err)
		assert.Equal(t, Int(42), v, "input %T", in)
	}

	v, err := Encode(-7)
	require.NoError(t, err)
	assert.Equal(t, Int(-7), v)

	// A named integer type without a String method is a plain integer.
	type count int
	v, err = Encode(count(3))
	require.NoError(t, err)
	assert.Equal(t, Int(3), v)
}

func TestEncode_UnsignedIntegers(t *testing.T) {
	inputs := []any{uint(42), uint8(42), uint16(42), uint32(42), uint64(42), uintptr(42)}
	for _, in := range inputs {
		v, err := Encode(in)
		require.NoError(t, err)
		assert.Equal(t, Uint(42), v, "input %T", in)
	}

	v, err := Encode(uint64(18446744073709551615))
	require.NoError(t, err)
	assert.Equal(t, Uint(18446744073709551615), v, "unsigned values must not round through int64")
}

func TestEncode_Floats(t *testing.T) {
	v, err := Encode(0.4)
	require.NoError(t, err)
	assert.Equal(t, Float(0.4), v)

	// float32 widens to float64.
	v, err = Encode(float32(1.5))
	require.NoError(t, err)
	assert.Equal(t, Float(1.5), v)
}

func TestEncode_Strings(t *testing.T) {
	v, err := Encode("hello")
	require.NoError(t, err)
	assert.Equal(t, String("hello"), v)

	v, err = Encode("")
	require.NoError(t, err)
	assert.Equal(t, String(""), v)
}

func TestEncode_NilIsNull(t *testing.T) {
	v, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, Null{}, v)
}

func TestEncode_IdentityOnValues(t *testing.T) {
	trees := []Value{
		Null{},
		Bool(true),
		Int(-1),
		Uint(1),
		Float(0.5),
		String("s"),
		Array{Int(1), String("two")},
		Object{{Key: "k", Value: Array{Null{}}}},
	}
	for _, tree := range trees {
		v, err := Encode(tree)
		require.NoError(t, err)
		assert.Equal(t, tree, v, "a Value must pass through unchanged")
	}
}

func TestEncode_EnumsUseSymbolicNames(t *testing.T) {
	// Every member of every tested enum encodes to its name, never to the
	// underlying number.
	days := map[weekday]string{sunday: "Sunday", monday: "Monday", tuesday: "Tuesday"}
	for day, name := range days {
		v, err := Encode(day)
		require.NoError(t, err)
		assert.Equal(t, String(name), v)
	}

	priorities := map[priority]string{low: "low", high: "high"}
	for p, name := range priorities {
		v, err := Encode(p)
		require.NoError(t, err)
		assert.Equal(t, String(name), v)
	}

	grades := map[grade]string{fail: "fail", pass: "pass"}
	for g, name := range grades {
		v, err := Encode(g)
		require.NoError(t, err)
		assert.Equal(t, String(name), v, "enum rule outranks the float rule")
	}
}

func TestEncode_StringAndBoolRulesOutrankEnumRule(t *testing.T) {
	v, err := Encode(loud("shout"))
	require.NoError(t, err)
	assert.Equal(t, String("shout"), v, "string kinds keep their value, not their String() result")

	v, err = Encode(onoff(true))
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v, "bool kinds ignore a String method")
}

func TestEncode_Slices(t *testing.T) {
	v, err := Encode([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Array{Int(1), Int(2), Int(3)}, v, "element order must be preserved")

	v, err = Encode([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, Array{String("a"), String("b")}, v)

	// Nested sequences recurse through the same entry point.
	v, err = Encode([][]int{{1}, {2, 3}})
	require.NoError(t, err)
	assert.Equal(t, Array{Array{Int(1)}, Array{Int(2), Int(3)}}, v)
}

func TestEncode_NilSliceIsNullEmptySliceIsNot(t *testing.T) {
	var nilSlice []int
	v, err := Encode(nilSlice)
	require.NoError(t, err)
	assert.Equal(t, Null{}, v, "a nil slice is an absent sequence")

	v, err = Encode([]int{})
	require.NoError(t, err)
	require.Equal(t, KindArray, v.Kind(), "an empty slice is a present, empty sequence")
	assert.Len(t, v.(Array), 0)
}

func TestEncode_FixedArrays(t *testing.T) {
	v, err := Encode([3]string{"x", "y", "z"})
	require.NoError(t, err)
	assert.Equal(t, Array{String("x"), String("y"), String("z")}, v)

	// Go arrays cannot be nil, so even a zero array is an Array.
	v, err = Encode([0]int{})
	require.NoError(t, err)
	assert.Equal(t, KindArray, v.Kind())
}

func TestEncode_InterfaceElements(t *testing.T) {
	v, err := Encode([]any{1, "hi", nil, true})
	require.NoError(t, err)
	assert.Equal(t, Array{Int(1), String("hi"), Null{}, Bool(true)}, v)
}

func TestEncodeTuple_Heterogeneous(t *testing.T) {
	v, err := EncodeTuple(1, "hi", 0.4)
	require.NoError(t, err)
	assert.Equal(t, Array{Int(1), String("hi"), Float(0.4)}, v)
}

func TestEncodeTuple_Empty(t *testing.T) {
	v, err := EncodeTuple()
	require.NoError(t, err)
	require.Equal(t, KindArray, v.Kind())
	assert.Len(t, v.(Array), 0)
}

func TestEncodeTuple_PropagatesErrors(t *testing.T) {
	_, err := EncodeTuple(1, plain{A: 2})
	require.Error(t, err)

	var typeErr *UnsupportedTypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestEncode_Maps(t *testing.T) {
	v, err := Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys(), "members must come out in sorted key order")

	expected := Object{
		{Key: "a", Value: Int(1)},
		{Key: "b", Value: Int(2)},
		{Key: "c", Value: Int(3)},
	}
	assert.Empty(t, valueDiff(expected, v))
}

func TestEncode_MapValuesAreEncoded(t *testing.T) {
	v, err := Encode(map[string]any{
		"id":    7,
		"roles": []string{"admin", "user"},
		"extra": nil,
	})
	require.NoError(t, err)

	expected := Object{
		{Key: "extra", Value: Null{}},
		{Key: "id", Value: Int(7)},
		{Key: "roles", Value: Array{String("admin"), String("user")}},
	}
	assert.Empty(t, valueDiff(expected, v))
}

func TestEncode_NamedStringKeysWork(t *testing.T) {
	type label string
	v, err := Encode(map[label]bool{"ok": true})
	require.NoError(t, err)

	expected := Object{{Key: "ok", Value: Bool(true)}}
	assert.Empty(t, valueDiff(expected, v))
}

func TestEncode_NilMapIsNullEmptyMapIsNot(t *testing.T) {
	var nilMap map[string]int
	v, err := Encode(nilMap)
	require.NoError(t, err)
	assert.Equal(t, Null{}, v)

	v, err = Encode(map[string]int{})
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())
	assert.Len(t, v.(Object), 0)
}

func TestEncode_NonStringKeysRejected(t *testing.T) {
	_, err := Encode(map[int]string{1: "one"})
	require.Error(t, err)

	var keyErr *UnsupportedKeyTypeError
	require.True(t, errors.As(err, &keyErr))
	assert.Contains(t, keyErr.Error(), "int")

	// The key type is checked before the nil check and before any entry
	// is visited, so a nil map with a bad key type fails the same way.
	var nilBadMap map[int]string
	_, err = Encode(nilBadMap)
	require.Error(t, err)
	assert.True(t, errors.As(err, &keyErr))

	_, err = Encode(map[bool]string{})
	require.Error(t, err)
	assert.True(t, errors.As(err, &keyErr))
}

func TestEncode_Pointers(t *testing.T) {
	n := 42
	v, err := Encode(&n)
	require.NoError(t, err)
	assert.Equal(t, Int(42), v, "pointers descend to their element")

	var nilPtr *int
	v, err = Encode(nilPtr)
	require.NoError(t, err)
	assert.Equal(t, Null{}, v)

	s := []int{1}
	v, err = Encode(&s)
	require.NoError(t, err)
	assert.Equal(t, Array{Int(1)}, v)
}

func TestEncode_ConverterValueReceiver(t *testing.T) {
	expected := Object{
		{Key: "x", Value: Int(1)},
		{Key: "y", Value: Int(2)},
	}

	v, err := Encode(point{x: 1, y: 2})
	require.NoError(t, err)
	assert.Empty(t, valueDiff(expected, v))

	// A value-receiver implementation also covers the pointer.
	v, err = Encode(&point{x: 1, y: 2})
	require.NoError(t, err)
	assert.Empty(t, valueDiff(expected, v))
}

func TestEncode_ConverterPointerReceiver(t *testing.T) {
	v, err := Encode(&counter{n: 5})
	require.NoError(t, err)
	assert.Equal(t, Int(5), v)
}

func TestEncode_NilPointerShortCircuitsBeforeHook(t *testing.T) {
	// The hook must never run on a nil receiver; the encoder returns Null
	// first.
	var c *counter
	v, err := Encode(c)
	require.NoError(t, err)
	assert.Equal(t, Null{}, v)

	var p *point
	v, err = Encode(p)
	require.NoError(t, err)
	assert.Equal(t, Null{}, v)
}

func TestEncode_UserAggregate(t *testing.T) {
	v, err := Encode(record{id: 12, tags: []string{"a", "b"}})
	require.NoError(t, err)

	expected := Object{
		{Key: "i", Value: Int(12)},
		{Key: "a", Value: Array{String("a"), String("b")}},
	}
	assert.Empty(t, valueDiff(expected, v))
}

func TestEncode_SliceOfConverters(t *testing.T) {
	v, err := Encode([]point{{x: 1, y: 2}, {x: 3, y: 4}})
	require.NoError(t, err)

	expected := Array{
		Object{{Key: "x", Value: Int(1)}, {Key: "y", Value: Int(2)}},
		Object{{Key: "x", Value: Int(3)}, {Key: "y", Value: Int(4)}},
	}
	assert.Empty(t, valueDiff(expected, v))
}

func TestEncode_UnsupportedTypes(t *testing.T) {
	inputs := []any{
		plain{A: 1},
		make(chan int),
		func() {},
		complex(1, 2),
	}
	for _, in := range inputs {
		_, err := Encode(in)
		require.Error(t, err, "input %T", in)

		var typeErr *UnsupportedTypeError
		require.True(t, errors.As(err, &typeErr), "input %T", in)
		assert.Contains(t, typeErr.Error(), "unsupported type")
	}
}

func TestEncode_DeepNesting(t *testing.T) {
	v, err := Encode(map[string]any{
		"users": []any{
			map[string]any{
				"name":  "Alice",
				"roles": []string{"admin"},
				"stats": map[string]any{"logins": 42, "ratio": 0.75},
			},
		},
		"active": true,
	})
	require.NoError(t, err)

	expected := Object{
		{Key: "active", Value: Bool(true)},
		{Key: "users", Value: Array{
			Object{
				{Key: "name", Value: String("Alice")},
				{Key: "roles", Value: Array{String("admin")}},
				{Key: "stats", Value: Object{
					{Key: "logins", Value: Int(42)},
					{Key: "ratio", Value: Float(0.75)},
				}},
			},
		}},
	}
	assert.Empty(t, valueDiff(expected, v))
}
