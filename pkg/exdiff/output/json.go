// Package output renders comparison results as JSON, YAML, colored text and
// annotated xlsx reports.
package output

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ToJSON serializes a result to JSON. Cell locations such as "A3 -> A4"
// are written without HTML escaping.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ToYAML serializes a result to YAML.
func ToYAML(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}
