package agui

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// SchemaFor generates a JSON Schema for a tool's parameters by reflecting
// on the struct type T. Field names come from json tags; `desc` tags become
// property descriptions and `required:"true"` marks a field required.
//
// Example:
//
//	type SearchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	    Limit int    `json:"limit" desc:"Maximum results"`
//	}
func SchemaFor[T any]() (json.RawMessage, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("agui: cannot build schema for interface type")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("agui: schema type must be a struct, got %s", t.Kind())
	}
	node := structSchema(t)
	return json.Marshal(node)
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

type schemaNode struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Items       *schemaNode            `json:"items,omitempty"`
	Properties  map[string]*schemaNode `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

func structSchema(t reflect.Type) *schemaNode {
	node := &schemaNode{Type: "object", Properties: map[string]*schemaNode{}}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}
		prop := typeSchema(field.Type)
		if desc := field.Tag.Get("desc"); desc != "" {
			prop.Description = desc
		}
		node.Properties[name] = prop
		if field.Tag.Get("required") == "true" {
			node.Required = append(node.Required, name)
		}
	}
	return node
}

func typeSchema(t reflect.Type) *schemaNode {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return &schemaNode{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &schemaNode{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &schemaNode{Type: "number"}
	case reflect.Bool:
		return &schemaNode{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &schemaNode{Type: "array", Items: typeSchema(t.Elem())}
	case reflect.Struct:
		return structSchema(t)
	case reflect.Map:
		return &schemaNode{Type: "object", Properties: map[string]*schemaNode{}}
	default:
		return &schemaNode{Type: "string"}
	}
}
