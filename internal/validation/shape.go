package validation

import (
	"sort"
	"strconv"
)

// Shape is a structural contract for one JSON value decoded into `any`.
type Shape interface {
	check(path string, value any, out *[]Violation)
}

type primitive string

const (
	Number primitive = "number"
	String primitive = "string"
	Bool   primitive = "boolean"
)

func (p primitive) check(path string, value any, out *[]Violation) {
	got := typeName(value)
	if got != string(p) {
		*out = append(*out, Violation{Path: path, Reason: "expected " + string(p) + ", got " + got})
	}
}

// Field is one declared member of an object contract.
type Field struct {
	Name     string
	Shape    Shape
	Optional bool
}

// Req declares a field that must be present and non-null.
func Req(name string, shape Shape) Field {
	return Field{Name: name, Shape: shape}
}

// Opt declares a field that may be absent or null; when present it must match shape.
func Opt(name string, shape Shape) Field {
	return Field{Name: name, Shape: shape, Optional: true}
}

type objectShape struct {
	fields []Field
}

// Object matches a JSON object. Undeclared members are ignored.
func Object(fields ...Field) Shape {
	return objectShape{fields: fields}
}

func (s objectShape) check(path string, value any, out *[]Violation) {
	obj, ok := value.(map[string]any)
	if !ok {
		*out = append(*out, Violation{Path: path, Reason: "expected object, got " + typeName(value)})
		return
	}

	for _, f := range s.fields {
		fieldPath := joinField(path, f.Name)
		v, present := obj[f.Name]
		switch {
		case !present && f.Optional, present && v == nil && f.Optional:
			continue
		case !present:
			*out = append(*out, Violation{Path: fieldPath, Reason: "required field is missing"})
		case v == nil:
			*out = append(*out, Violation{Path: fieldPath, Reason: "required field is null"})
		default:
			f.Shape.check(fieldPath, v, out)
		}
	}
}

type arrayShape struct {
	elem Shape
}

func ArrayOf(elem Shape) Shape {
	return arrayShape{elem: elem}
}

func (s arrayShape) check(path string, value any, out *[]Violation) {
	items, ok := value.([]any)
	if !ok {
		*out = append(*out, Violation{Path: path, Reason: "expected array, got " + typeName(value)})
		return
	}
	for i, item := range items {
		itemPath := path + "[" + strconv.Itoa(i) + "]"
		if item == nil {
			*out = append(*out, Violation{Path: itemPath, Reason: "array element is null"})
			continue
		}
		s.elem.check(itemPath, item, out)
	}
}

type mapShape struct {
	elem Shape
}

// MapOf matches an object used as a dictionary: every value must match elem.
func MapOf(elem Shape) Shape {
	return mapShape{elem: elem}
}

func (s mapShape) check(path string, value any, out *[]Violation) {
	obj, ok := value.(map[string]any)
	if !ok {
		*out = append(*out, Violation{Path: path, Reason: "expected object, got " + typeName(value)})
		return
	}

	// sorted so violations come out in a stable order
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		entryPath := joinField(path, k)
		v := obj[k]
		if v == nil {
			*out = append(*out, Violation{Path: entryPath, Reason: "map value is null"})
			continue
		}
		s.elem.check(entryPath, v, out)
	}
}

func joinField(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, uint64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
