package env

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"
)

// postmanEnvironment is the Postman environment export shape. Entries with
// enabled:false are excluded; an absent enabled flag counts as enabled.
type postmanEnvironment struct {
	Name   string                    `json:"name"`
	Values []postmanEnvironmentValue `json:"values"`
}

type postmanEnvironmentValue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// Load reads an environment file into a flat variable map. Three formats
// are accepted: Postman environment exports, a flat {key: value} object,
// and dotenv files (by .env extension).
func Load(path string) (map[string]string, error) {
	if filepath.Ext(path) == ".env" {
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading env file: %w", err)
		}
		return vars, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading environment file: %w", err)
	}
	return Parse(data)
}

// Parse decodes environment bytes in either JSON shape.
func Parse(data []byte) (map[string]string, error) {
	if gjson.GetBytes(data, "values").IsArray() {
		var penv postmanEnvironment
		if err := json.Unmarshal(data, &penv); err != nil {
			return nil, fmt.Errorf("parsing Postman environment: %w", err)
		}

		vars := make(map[string]string, len(penv.Values))
		for _, v := range penv.Values {
			if v.Enabled != nil && !*v.Enabled {
				continue
			}
			vars[v.Key] = v.Value
		}
		return vars, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	vars := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			vars[k] = val
		case nil:
			vars[k] = ""
		default:
			vars[k] = fmt.Sprintf("%v", val)
		}
	}
	return vars, nil
}
