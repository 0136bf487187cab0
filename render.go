package jsonize

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// indent is the per-level indentation used by pretty rendering.
const indent = "    "

// Render produces JSON text for v. Compact mode emits minimal separators
// and no interior whitespace. Pretty mode places one value per line inside
// arrays and objects, indents four spaces per nesting level, and aligns
// each closing bracket with its opening construct; there is no trailing
// newline. Rendering is a pure function of the tree and cannot fail for a
// tree produced by Encode.
//
// Numbers round-trip: floats are written with enough precision to reparse
// to the same 64-bit value, and integers as plain decimal digits with no
// sign on Uint. NaN and the infinities have no JSON representation and are
// written as null.
func Render(v Value, pretty bool) string {
	var buf bytes.Buffer
	writeValue(&buf, v, pretty, 0)
	return buf.String()
}

func writeValue(buf *bytes.Buffer, v Value, pretty bool, depth int) {
	switch val := v.(type) {
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Uint:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case Float:
		writeFloat(buf, float64(val))
	case String:
		writeString(buf, string(val))
	case Array:
		writeArray(buf, val, pretty, depth)
	case Object:
		writeObject(buf, val, pretty, depth)
	default:
		// Null, and nil Values in hand-built trees.
		buf.WriteString("null")
	}
}

func writeArray(buf *bytes.Buffer, arr Array, pretty bool, depth int) {
	if len(arr) == 0 {
		buf.WriteString("[]")
		return
	}
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if pretty {
			buf.WriteByte('\n')
			writeIndent(buf, depth+1)
		}
		writeValue(buf, elem, pretty, depth+1)
	}
	if pretty {
		buf.WriteByte('\n')
		writeIndent(buf, depth)
	}
	buf.WriteByte(']')
}

func writeObject(buf *bytes.Buffer, obj Object, pretty bool, depth int) {
	if len(obj) == 0 {
		buf.WriteString("{}")
		return
	}
	buf.WriteByte('{')
	for i, m := range obj {
		if i > 0 {
			buf.WriteByte(',')
		}
		if pretty {
			buf.WriteByte('\n')
			writeIndent(buf, depth+1)
		}
		writeString(buf, m.Key)
		buf.WriteByte(':')
		if pretty {
			buf.WriteByte(' ')
		}
		writeValue(buf, m.Value, pretty, depth+1)
	}
	if pretty {
		buf.WriteByte('\n')
		writeIndent(buf, depth)
	}
	buf.WriteByte('}')
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(indent)
	}
}

func writeFloat(buf *bytes.Buffer, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	buf.WriteString(s)
	// Integral floats format as bare digits, which a reparse would read
	// back as an integer. Keep the float marker so the variant survives
	// the round trip; exponent forms already reparse as floats.
	if !strings.ContainsAny(s, ".eE") {
		buf.WriteString(".0")
	}
}

const hexDigits = "0123456789abcdef"

// writeString emits s as a JSON string: quote, backslash and control
// characters are escaped, everything else passes through byte-for-byte.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		buf.WriteString(s[start:i])
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0xf])
		}
		start = i + 1
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
}
