package render

import (
	"encoding/json"
	"io"
)

// JSONRenderer writes resolutions as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the resolutions as a JSON array.
func (r *JSONRenderer) Render(results []*Resolution) error {
	return json.NewEncoder(r.W).Encode(results)
}
