package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/jsonize"
	"github.com/mcncl/jsonize/internal/errors" // Custom errors package
)

// Parse reads one JSON value from reader and lifts it into a jsonize.Value
// tree. The standard library decoder does the actual parsing; this package
// normalizes the decoded form (numbers in particular) and hands it to
// jsonize.Encode.
func Parse(reader io.Reader) (jsonize.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers are read as json.Number

	var root any
	if err := decoder.Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) { // io.EOF means nothing was decoded at all
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		return nil, errors.NewParsingError("failed to decode JSON", err)
	}

	// Check for trailing data after the first JSON value. Trailing
	// whitespace is fine; a second value is not.
	if decoder.More() {
		var trailing any
		if err := decoder.Decode(&trailing); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return nil, errors.NewParsingError("invalid trailing data after first JSON value", err)
			}
		} else {
			return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}

	value, err := jsonize.Encode(normalize(root))
	if err != nil {
		// Unreachable for decoder output (string-keyed maps, slices and
		// primitives only), but surface it rather than swallow it.
		return nil, errors.NewParsingError("failed to build value tree", err)
	}
	return value, nil
}

// normalize rewrites the decoder's raw types so they hit the right encoder
// rules: json.Number would otherwise be string-kinded and encode as String.
func normalize(val any) any {
	switch v := val.(type) {
	case map[string]any:
		obj := make(map[string]any, len(v))
		for key, value := range v {
			obj[key] = normalize(value)
		}
		return obj
	case []any:
		arr := make([]any, len(v))
		for i, value := range v {
			arr[i] = normalize(value)
		}
		return arr
	case json.Number:
		return normalizeNumber(v)
	default:
		return v // Primitives (string, bool, nil) are returned as is
	}
}

// normalizeNumber maps a JSON number onto the Go value that preserves it:
// int64 when it fits, uint64 for larger positive integers, float64 for
// everything else.
func normalizeNumber(num json.Number) any {
	if i, err := num.Int64(); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(num.String(), 10, 64); err == nil {
		return u
	}
	// Best effort beyond that: ParseFloat saturates out-of-range values to
	// an infinity, which the renderer writes as null.
	f, _ := num.Float64()
	return f
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (jsonize.Value, error) {
	// TrimSpace is important here because an empty string reader will give io.EOF to Decode,
	// but a string with only spaces might not, depending on the decoder's behavior.
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	reader := strings.NewReader(jsonString)
	return Parse(reader)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (jsonize.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	// Check for empty file before parsing
	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
