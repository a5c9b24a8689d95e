package assemble

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaIDPrefix is stripped from a schema's $id to form its public path.
const SchemaIDPrefix = "https://aep.dev/"

// Schema converts a YAML or JSON component schema to indented JSON and
// returns the path below the public directory it is served from.
func Schema(raw []byte) (string, []byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	id, _ := doc["$id"].(string)
	if id == "" {
		return "", nil, fmt.Errorf("%w: missing $id", ErrInvalidSchema)
	}
	rel := path.Clean("/" + strings.TrimPrefix(id, SchemaIDPrefix))
	if rel == "/" {
		return "", nil, fmt.Errorf("%w: $id %q has no path", ErrInvalidSchema, id)
	}
	out, err := json.MarshalIndent(jsonCompatible(doc), "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return strings.TrimPrefix(rel, "/"), out, nil
}

// jsonCompatible converts mappings with non-string keys, such as HTTP status
// codes, into string-keyed maps.
func jsonCompatible(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, val := range vv {
			out[k] = jsonCompatible(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(vv))
		for k, val := range vv {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, val := range vv {
			out[i] = jsonCompatible(val)
		}
		return out
	default:
		return v
	}
}
