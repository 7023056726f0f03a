package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// Schema for the canonical collection format, used by Validate. Folders
// nest via the same definition at arbitrary depth.
const collectionSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "requests": {"type": "array", "items": {"$ref": "#/definitions/request"}},
    "folders": {"type": "array", "items": {"$ref": "#/definitions/folder"}}
  },
  "definitions": {
    "folder": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "requests": {"type": "array", "items": {"$ref": "#/definitions/request"}},
        "folders": {"type": "array", "items": {"$ref": "#/definitions/folder"}}
      }
    },
    "request": {
      "type": "object",
      "required": ["name", "url"],
      "properties": {
        "name": {"type": "string"},
        "method": {"type": "string"},
        "url": {"type": "string"},
        "headers": {"type": ["object", "array"]},
        "body": {"type": "string"},
        "tests": {"type": "string"}
      }
    }
  }
}`

// Parse decodes collection bytes in either accepted shape. Raw Postman v2.1
// exports (info/item) are detected and normalized through FromPostman; the
// runner itself only ever sees the canonical tree.
func Parse(data []byte) (*Collection, error) {
	if IsPostman(data) {
		return FromPostman(data)
	}

	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return nil, fmt.Errorf("parsing collection: %w", err)
	}
	return &col, nil
}

// Load reads and parses a collection file.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collection file: %w", err)
	}
	return Parse(data)
}

// IsPostman reports whether the document looks like a Postman v2.1 export.
func IsPostman(data []byte) bool {
	return gjson.GetBytes(data, "info.name").Exists() && gjson.GetBytes(data, "item").IsArray()
}

// Validate checks a canonical collection document against the embedded
// schema and returns one error per violation.
func Validate(data []byte) []error {
	schemaLoader := gojsonschema.NewStringLoader(collectionSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return []error{fmt.Errorf("schema validation: %w", err)}
	}
	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, fmt.Errorf("%s", strings.TrimSpace(desc.String())))
	}
	return errs
}
