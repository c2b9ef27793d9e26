package display

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON marshals v with two-space indentation and without HTML
// escaping, so URLs with query strings stay readable
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
