package assumption

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	hjson "github.com/hjson/hjson-go/v4"
	yaml "gopkg.in/yaml.v2"
)

// Load reads an assumption set from disk. Hjson is the preferred format
// (comments survive review); yaml is accepted for sets exported by the
// dashboard. The returned set has defaults applied and is validated.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assumption set: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse decodes an hjson (or plain JSON) assumption set.
func Parse(data []byte) (*Set, error) {
	var set Set
	if err := hjson.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse assumption set: %w", err)
	}
	return finish(&set)
}

// ParseYAML decodes a yaml assumption set. yaml.v2 produces
// interface-keyed maps, so the document is normalized through JSON to
// reuse the same struct tags as the hjson path.
func ParseYAML(data []byte) (*Set, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse assumption yaml: %w", err)
	}
	normalized, err := json.Marshal(stringifyKeys(raw))
	if err != nil {
		return nil, fmt.Errorf("normalize assumption yaml: %w", err)
	}
	var set Set
	if err := json.Unmarshal(normalized, &set); err != nil {
		return nil, fmt.Errorf("decode assumption yaml: %w", err)
	}
	return finish(&set)
}

func finish(set *Set) (*Set, error) {
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}
	set.ApplyDefaults()
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// stringifyKeys rewrites yaml.v2 interface-keyed maps into string-keyed
// maps so the tree is JSON-marshalable.
func stringifyKeys(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = stringifyKeys(item)
		}
		return out
	case []interface{}:
		for i, item := range val {
			val[i] = stringifyKeys(item)
		}
		return val
	default:
		return v
	}
}
