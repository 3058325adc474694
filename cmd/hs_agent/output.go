package main

import (
	"encoding/json"
	"io"
)

// writeJSON prints v as indented JSON, keeping non-ASCII text readable
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
