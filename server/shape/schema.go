package shape

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "shape.schema.json"

// schemaSource describes the subset of the shape format that is used to build
// meshes and attachment points. Unknown properties, such as textures or
// animations, are permitted.
const schemaSource = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["elements"],
  "properties": {
    "textureWidth": {"type": "number", "exclusiveMinimum": 0},
    "textureHeight": {"type": "number", "exclusiveMinimum": 0},
    "elements": {"type": "array", "items": {"$ref": "#/$defs/element"}}
  },
  "$defs": {
    "vec3": {"type": "array", "items": {"type": "number"}, "minItems": 3, "maxItems": 3},
    "element": {
      "type": "object",
      "required": ["from", "to"],
      "properties": {
        "name": {"type": "string"},
        "from": {"$ref": "#/$defs/vec3"},
        "to": {"$ref": "#/$defs/vec3"},
        "rotationOrigin": {"$ref": "#/$defs/vec3"},
        "rotationX": {"type": "number"},
        "rotationY": {"type": "number"},
        "rotationZ": {"type": "number"},
        "faces": {
          "type": "object",
          "propertyNames": {"enum": ["north", "east", "south", "west", "up", "down"]},
          "additionalProperties": {"$ref": "#/$defs/face"}
        },
        "children": {"type": "array", "items": {"$ref": "#/$defs/element"}},
        "attachmentpoints": {"type": "array", "items": {"$ref": "#/$defs/attachmentPoint"}}
      }
    },
    "face": {
      "type": "object",
      "properties": {
        "texture": {"type": "string"},
        "uv": {"type": "array", "items": {"type": "number"}, "minItems": 4, "maxItems": 4},
        "enabled": {"type": "boolean"}
      }
    },
    "attachmentPoint": {
      "type": "object",
      "required": ["code"],
      "properties": {
        "code": {"type": "string", "minLength": 1},
        "posX": {"type": "number"},
        "posY": {"type": "number"},
        "posZ": {"type": "number"},
        "rotationX": {"type": "number"},
        "rotationY": {"type": "number"},
        "rotationZ": {"type": "number"}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles the shape schema on first use.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaSource)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile shape schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}
