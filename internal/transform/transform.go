// Package transform rewrites object keys across a jsonize value tree.
package transform

import (
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonize"
	"github.com/mcncl/jsonize/internal/errors"
)

// Style names a key-rewriting convention.
type Style string

const (
	StyleCamel  Style = "camel"
	StylePascal Style = "pascal"
	StyleSnake  Style = "snake"
	StyleKebab  Style = "kebab"
)

// ParseStyle validates a style name coming from the CLI or a config file.
func ParseStyle(name string) (Style, error) {
	switch Style(name) {
	case StyleCamel, StylePascal, StyleSnake, StyleKebab:
		return Style(name), nil
	}
	return "", errors.NewTransformError(
		fmt.Sprintf("unknown key style '%s' (supported: camel, pascal, snake, kebab)", name),
		errors.ErrUnknownStyle,
	)
}

func (s Style) convert(key string) string {
	switch s {
	case StyleCamel:
		return strcase.ToLowerCamel(key)
	case StylePascal:
		return strcase.ToCamel(key)
	case StyleSnake:
		return strcase.ToSnake(key)
	case StyleKebab:
		return strcase.ToKebab(key)
	}
	return key
}

// Rekey returns a copy of v with every object key rewritten in the given
// style, at every nesting level. Array order and all non-object values pass
// through unchanged, and the input tree is never modified. Keys that
// collide after rewriting collapse into a single member: the first
// occurrence keeps its position, the last one supplies the value.
func Rekey(v jsonize.Value, style Style) jsonize.Value {
	switch val := v.(type) {
	case jsonize.Object:
		out := make(jsonize.Object, 0, len(val))
		for _, m := range val {
			out = out.Set(style.convert(m.Key), Rekey(m.Value, style))
		}
		return out
	case jsonize.Array:
		out := make(jsonize.Array, len(val))
		for i, elem := range val {
			out[i] = Rekey(elem, style)
		}
		return out
	default:
		return v
	}
}
