package codec

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromYAML converts a YAML document into the equivalent JSON wire form, so
// documents may be authored in YAML and decoded with the functions above.
// Mapping keys must be strings.
func FromYAML(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("codec: yaml: %w", err)
	}
	v, err := jsonable(doc, "")
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// jsonable rewrites generic YAML values into values encoding/json style
// marshalers accept.
func jsonable(v any, at string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			c, err := jsonable(e, at+"/"+k)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("codec: yaml: non-string key %v at %s", k, pointer(at))
			}
			c, err := jsonable(e, at+"/"+ks)
			if err != nil {
				return nil, err
			}
			out[ks] = c
		}
		return out, nil
	case []any:
		for i, e := range t {
			c, err := jsonable(e, fmt.Sprintf("%s/%d", at, i))
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	}
	return v, nil
}

func pointer(at string) string {
	if at == "" {
		return "/"
	}
	return at
}
