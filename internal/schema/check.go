package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Check verifies that data, a JSON document, conforms to the schema: every
// required field present, primitive types correct, enum fields restricted
// to their declared set. All problems found are returned; an empty slice
// means the document conforms.
func Check(s *Schema, data []byte) []string {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return []string{fmt.Sprintf("invalid JSON: %v", err)}
	}
	return checkValue(s, v, "$")
}

func checkValue(s *Schema, v any, path string) []string {
	var problems []string

	switch s.Type {
	case "object":
		obj, ok := v.(map[string]any)
		if !ok {
			return []string{fmt.Sprintf("%s: expected object, got %s", path, typeName(v))}
		}
		for _, req := range s.Required {
			if _, present := obj[req]; !present {
				problems = append(problems, fmt.Sprintf("%s: missing required field %q", path, req))
			}
		}
		for name, prop := range s.Properties {
			val, present := obj[name]
			if !present {
				continue
			}
			problems = append(problems, checkProperty(prop, val, path+"."+name)...)
		}
	case "array":
		arr, ok := v.([]any)
		if !ok {
			return []string{fmt.Sprintf("%s: expected array, got %s", path, typeName(v))}
		}
		if s.Items != nil {
			for i, item := range arr {
				problems = append(problems, checkValue(s.Items, item, fmt.Sprintf("%s[%d]", path, i))...)
			}
		}
	default:
		problems = append(problems, checkPrimitive(s.Type, nil, v, path)...)
	}

	return problems
}

func checkProperty(p Property, v any, path string) []string {
	// A property is itself a schema node; re-wrap the recursive cases.
	switch p.Type {
	case "object":
		return checkValue(&Schema{Type: "object", Properties: p.Properties, Required: p.Required}, v, path)
	case "array":
		return checkValue(&Schema{Type: "array", Items: p.Items}, v, path)
	default:
		return checkPrimitive(p.Type, p.Enum, v, path)
	}
}

func checkPrimitive(typ string, enum []string, v any, path string) []string {
	switch typ {
	case "string":
		str, ok := v.(string)
		if !ok {
			return []string{fmt.Sprintf("%s: expected string, got %s", path, typeName(v))}
		}
		if len(enum) > 0 && !contains(enum, str) {
			return []string{fmt.Sprintf("%s: value %q not in allowed set %v", path, str, enum)}
		}
	case "number", "integer":
		num, ok := v.(json.Number)
		if !ok {
			return []string{fmt.Sprintf("%s: expected %s, got %s", path, typ, typeName(v))}
		}
		if typ == "integer" {
			if _, err := num.Int64(); err != nil {
				return []string{fmt.Sprintf("%s: expected integer, got %s", path, num)}
			}
		}
	case "boolean":
		if _, ok := v.(bool); !ok {
			return []string{fmt.Sprintf("%s: expected boolean, got %s", path, typeName(v))}
		}
	}
	return nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func contains(set []string, s string) bool {
	for _, e := range set {
		if e == s {
			return true
		}
	}
	return false
}
