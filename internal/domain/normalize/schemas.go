package normalize

import "github.com/santhosh-tekuri/jsonschema/v5"

// Top-level response shapes, tried in order.
const nestedResponseSchema = `{
  "type": "object",
  "required": ["matches"],
  "properties": {
    "matches": {"type": "array"}
  }
}`

const flatResponseSchema = `{
  "type": "array"
}`

// Per-match encodings, tried in order.
const contextMatchSchema = `{
  "type": "object",
  "required": ["message", "context"],
  "properties": {
    "message": {"type": "string"},
    "offset": {"type": "integer", "minimum": 0},
    "length": {"type": "integer", "minimum": 0},
    "context": {
      "type": "object",
      "required": ["text", "offset", "length"],
      "properties": {
        "text": {"type": "string"},
        "offset": {"type": "integer", "minimum": 0},
        "length": {"type": "integer", "minimum": 0}
      }
    },
    "replacements": {"type": "array"}
  }
}`

const absoluteMatchSchema = `{
  "type": "object",
  "required": ["message", "offset", "length"],
  "properties": {
    "message": {"type": "string"},
    "word": {"type": "string"},
    "offset": {"type": "integer", "minimum": 0},
    "length": {"type": "integer", "minimum": 0},
    "replacements": {"type": "array"}
  }
}`

const languagesSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name"],
    "properties": {
      "name": {"type": "string"},
      "code": {"type": "string"},
      "longCode": {"type": "string"}
    },
    "anyOf": [{"required": ["longCode"]}, {"required": ["code"]}]
  }
}`

func compile(name, src string) *jsonschema.Schema {
	return jsonschema.MustCompileString("mem://texspell/"+name+".json", src)
}
