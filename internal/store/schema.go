package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todo/internal/model"
)

const itemsSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "done"],
    "properties": {
      "id":   {"type": "integer", "minimum": 1},
      "text": {"type": "string", "minLength": 1},
      "done": {"type": "boolean"}
    },
    "additionalProperties": false
  }
}`

var itemsSchema = jsonschema.MustCompileString("todos.schema.json", itemsSchemaJSON)

// decodeItems parses the persisted list and rejects anything the store
// could not have written itself.
func decodeItems(b []byte) ([]model.Item, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if err := itemsSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	seen := make(map[int]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("duplicate id %d", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return items, nil
}

func encodeItems(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}
