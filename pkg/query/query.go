// Package query filters the flat collections of a project by field values.
//
// Items are compared in their JSON form: the key path uses the JSON field names
// of the model (e.g. "programmingStatus", "serialNumber") and numbers compare
// by value, so 1 matches 1.0.
package query

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/jmespath/go-jmespath"
)

// ByKey returns the items whose field at keyPath equals value. Items without
// the field never match.
func ByKey[T any](items []T, keyPath []string, value any) ([]T, error) {
	if len(keyPath) == 0 {
		return nil, fmt.Errorf("query: empty key path")
	}
	expr, err := jmespath.Compile(pathExpression(keyPath))
	if err != nil {
		return nil, fmt.Errorf("query: key path %v: %w", keyPath, err)
	}
	want, err := jsonForm(value)
	if err != nil {
		return nil, err
	}

	var out []T
	for _, item := range items {
		got, err := search(expr, item)
		if err != nil {
			return nil, err
		}
		if got != nil && reflect.DeepEqual(got, want) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Where returns the items for which the JMESPath expression is truthy.
func Where[T any](items []T, expression string) ([]T, error) {
	expr, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("query: %q: %w", expression, err)
	}

	var out []T
	for _, item := range items {
		got, err := search(expr, item)
		if err != nil {
			return nil, err
		}
		if truthy(got) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Field returns the JSON form of the item's field at keyPath, or nil when the
// field does not exist.
func Field(item any, keyPath []string) (any, error) {
	expr, err := jmespath.Compile(pathExpression(keyPath))
	if err != nil {
		return nil, fmt.Errorf("query: key path %v: %w", keyPath, err)
	}
	return search(expr, item)
}

// ParseKeyPath splits a dotted key path ("programmingStatus.serialNumber").
func ParseKeyPath(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}

// pathExpression quotes every key so names are never read as JMESPath syntax.
func pathExpression(keyPath []string) string {
	quoted := make([]string, len(keyPath))
	for i, k := range keyPath {
		quoted[i] = strconv.Quote(k)
	}
	if len(quoted) == 0 {
		return "@"
	}
	return strings.Join(quoted, ".")
}

func search(expr *jmespath.JMESPath, item any) (any, error) {
	data, err := jsonForm(item)
	if err != nil {
		return nil, err
	}
	got, err := expr.Search(data)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return got, nil
}

func jsonForm(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return out, nil
}

// truthy follows JMESPath: false, null and empty strings, arrays and objects
// are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
