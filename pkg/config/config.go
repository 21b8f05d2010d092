// Package config loads the toolkit's tunables from YAML, grounded on
// cmd/config.go's LoadConfig shape (read a YAML file, unmarshal, return a
// typed struct). Unlike that teacher function, the raw document is checked
// against an embedded JSON Schema before being decoded into the typed
// Config, so a malformed config file fails with a field-level error instead
// of a zero-valued struct silently missing a setting.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v2"
)

// Config holds the toolkit-wide tunables read from a YAML file.
type Config struct {
	// DepthLimit is the configured parse nesting limit. The parsers do not
	// read it; they always apply astparser.MaxDepth.
	DepthLimit int `mapstructure:"depthLimit"`
	// OneOfInputObjectsEnabled is the configured `@oneOf` input-object
	// coercion setting. Package coercion does not read it.
	OneOfInputObjectsEnabled bool `mapstructure:"oneOfInputObjectsEnabled"`
	// ValidationCacheSize is the configured validation cache size.
	// astvisitor.NewCache does not read it; it sizes its cache to the
	// document's fragment count.
	ValidationCacheSize int `mapstructure:"validationCacheSize"`
}

// Default returns the zero-config toolkit defaults.
func Default() Config {
	return Config{
		DepthLimit:          64,
		ValidationCacheSize: 256,
	}
}

// schemaDoc is the JSON Schema a loaded config document must satisfy before
// being decoded. Kept inline rather than as a separate asset file since it's
// small and only config.go ever compiles it.
const schemaDoc = `{
  "type": "object",
  "properties": {
    "depthLimit": {"type": "integer", "minimum": 1},
    "oneOfInputObjectsEnabled": {"type": "boolean"},
    "validationCacheSize": {"type": "integer", "minimum": 1}
  },
  "additionalProperties": false
}`

// Load reads, validates, and decodes the YAML config file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %q: %w", path, err)
	}
	return Parse(raw)
}

// Parse validates and decodes a YAML document already in memory.
func Parse(raw []byte) (Config, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("parsing yaml: %w", err)
	}
	jsonCompatible := toJSONCompatible(doc)

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", strings.NewReader(schemaDoc)); err != nil {
		return Config{}, fmt.Errorf("compiling embedded config schema: %w", err)
	}
	validator, err := compiler.Compile("config.schema.json")
	if err != nil {
		return Config{}, fmt.Errorf("compiling embedded config schema: %w", err)
	}
	if err := validator.Validate(jsonCompatible); err != nil {
		return Config{}, fmt.Errorf("config file does not match schema: %w", err)
	}

	cfg := Default()
	if err := mapstructure.Decode(jsonCompatible, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// toJSONCompatible recursively converts yaml.v2's map[interface{}]interface{}
// nodes into map[string]interface{}, since jsonschema (and json.Marshal in
// general) rejects the former.
func toJSONCompatible(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[fmt.Sprintf("%v", k)] = toJSONCompatible(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = toJSONCompatible(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = toJSONCompatible(val)
		}
		return out
	default:
		return v
	}
}
