package jsonize

import "os"

// WriteToFile renders v in pretty form and writes the text to path,
// creating or truncating the target. I/O failures are returned as-is with
// no retry; a failed write can leave a truncated file since no atomic
// replace is attempted.
func WriteToFile(path string, v Value) error {
	return os.WriteFile(path, []byte(Render(v, true)), 0644)
}
