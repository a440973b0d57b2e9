package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://hanzi-catalog.json"

var levelEnum = []any{"HSK1", "HSK2", "HSK3", "HSK4", "HSK5"}

// documentSchema is the JSON schema every catalog file must satisfy.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"levels": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"enum": levelEnum},
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
				},
				"required": []any{"id", "name"},
			},
		},
		"topics": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"icon":        map[string]any{"type": "string"},
					"hskLevels": map[string]any{
						"type":  "array",
						"items": map[string]any{"enum": levelEnum},
					},
				},
				"required": []any{"id", "name"},
			},
		},
		"words": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":                 map[string]any{"type": "integer", "minimum": 1},
					"chinese":            map[string]any{"type": "string", "minLength": 1},
					"pinyin":             map[string]any{"type": "string"},
					"vietnamese":         map[string]any{"type": "string"},
					"english":            map[string]any{"type": "string"},
					"example":            map[string]any{"type": "string"},
					"exampleTranslation": map[string]any{"type": "string"},
					"hskLevel":           map[string]any{"enum": levelEnum},
					"topic":              map[string]any{"type": "string"},
				},
				"required": []any{"id", "chinese", "pinyin", "hskLevel"},
			},
		},
	},
	"required": []any{"words"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, documentSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(documentSchemaURL)
	})
	return compiledSchema, compileErr
}

// Validate checks raw catalog JSON against the document schema.
func Validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}
