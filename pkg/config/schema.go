package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

const schemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "agents": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "command": {"type": "string"},
          "args": {"type": "array", "items": {"type": "string"}},
          "auth": {
            "type": "object",
            "additionalProperties": false,
            "properties": {
              "apiKey": {"type": "string"},
              "apiKeyFrom": {"type": "string"},
              "none": {"type": "boolean"}
            }
          },
          "env": {
            "type": "array",
            "items": {
              "type": "object",
              "additionalProperties": false,
              "required": ["name", "value"],
              "properties": {
                "name": {"type": "string"},
                "value": {"type": "string"}
              }
            }
          },
          "mcpServers": {
            "type": "array",
            "items": {
              "type": "object",
              "additionalProperties": false,
              "required": ["name"],
              "properties": {
                "name": {"type": "string"},
                "url": {"type": "string"},
                "headers": {"type": "object", "additionalProperties": {"type": "string"}},
                "command": {"type": "string"},
                "args": {"type": "array", "items": {"type": "string"}},
                "env": {"type": "object", "additionalProperties": {"type": "string"}}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	resolvedSchema *jsonschema.Resolved
)

func schema() *jsonschema.Resolved {
	schemaOnce.Do(func() {
		var s jsonschema.Schema
		if err := json.Unmarshal([]byte(schemaJSON), &s); err != nil {
			panic(fmt.Sprintf("config schema does not parse: %v", err))
		}
		resolved, err := s.Resolve(nil)
		if err != nil {
			panic(fmt.Sprintf("config schema does not resolve: %v", err))
		}
		resolvedSchema = resolved
	})
	return resolvedSchema
}
