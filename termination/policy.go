package termination

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/markpollack/agentloop"
)

// policySchema constrains the shape of a policy document. Each node is an
// object with exactly one strategy key; combinator nodes nest recursively.
const policySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$ref": "#/$defs/node",
  "$defs": {
    "node": {
      "type": "object",
      "minProperties": 1,
      "maxProperties": 1,
      "properties": {
        "max_turns": {"type": "integer", "minimum": 1},
        "timeout": {"type": "string", "minLength": 2},
        "cost_limit": {"type": "number", "exclusiveMinimum": 0},
        "stagnation": {
          "type": "object",
          "properties": {
            "window": {"type": "integer", "minimum": 1},
            "similarity": {"type": "number", "minimum": 0, "maximum": 1}
          },
          "additionalProperties": false
        },
        "all_of": {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/node"}},
        "any_of": {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/node"}}
      },
      "additionalProperties": false
    }
  }
}`

var compiledPolicySchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(policySchema))
	if err != nil {
		return nil, fmt.Errorf("parse policy schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("policy.json", doc); err != nil {
		return nil, fmt.Errorf("add policy schema resource: %w", err)
	}
	return c.Compile("policy.json")
})

// LoadPolicy parses a YAML policy document into a composed termination
// strategy. The document is a single strategy node:
//
//	any_of:
//	  - max_turns: 20
//	  - timeout: 10m
//	  - cost_limit: 5.0
//	  - stagnation:
//	      window: 3
//	      similarity: 0.95
//
// Available node keys: max_turns (int), timeout (Go duration string),
// cost_limit (number), stagnation (window/similarity), all_of and any_of
// (lists of nodes). The document is validated against a JSON Schema before
// building, so unknown keys and malformed values are configuration errors
// reported here, not surprises at run time.
//
// LoadPolicy builds fresh strategy instances on every call, so each run can
// load its own policy without sharing stateful strategies.
func LoadPolicy(data []byte) (agentloop.TerminationStrategy, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("termination: parse policy: %w", err)
	}

	// Round-trip through JSON so YAML-decoded values take the shapes the
	// schema validator expects.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("termination: normalize policy: %w", err)
	}

	schema, err := compiledPolicySchema()
	if err != nil {
		return nil, fmt.Errorf("termination: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(normalized))
	if err != nil {
		return nil, fmt.Errorf("termination: normalize policy: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("termination: invalid policy: %w", err)
	}

	var tree any
	if err := json.Unmarshal(normalized, &tree); err != nil {
		return nil, fmt.Errorf("termination: normalize policy: %w", err)
	}
	return buildPolicyNode(tree)
}

func buildPolicyNode(node any) (agentloop.TerminationStrategy, error) {
	m, ok := node.(map[string]any)
	if !ok || len(m) != 1 {
		return nil, fmt.Errorf("termination: policy node must have exactly one key")
	}

	for key, val := range m {
		switch key {
		case "max_turns":
			return NewMaxTurns(int(val.(float64))), nil

		case "timeout":
			d, err := time.ParseDuration(val.(string))
			if err != nil {
				return nil, fmt.Errorf("termination: invalid timeout %q: %w", val, err)
			}
			return NewTimeout(d), nil

		case "cost_limit":
			return NewCostLimit(val.(float64)), nil

		case "stagnation":
			cfg, _ := val.(map[string]any)
			window := 3
			similarity := 0.95
			if v, ok := cfg["window"].(float64); ok {
				window = int(v)
			}
			if v, ok := cfg["similarity"].(float64); ok {
				similarity = v
			}
			return NewStagnation(window, similarity), nil

		case "all_of", "any_of":
			items := val.([]any)
			subs := make([]agentloop.TerminationStrategy, 0, len(items))
			for _, item := range items {
				sub, err := buildPolicyNode(item)
				if err != nil {
					return nil, err
				}
				subs = append(subs, sub)
			}
			if key == "all_of" {
				return AllOf(subs...), nil
			}
			return AnyOf(subs...), nil
		}
	}

	// Schema validation rejects unknown keys before we get here.
	return nil, fmt.Errorf("termination: unknown policy key")
}
