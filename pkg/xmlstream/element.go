// Package xmlstream delivers the open and close tags of an XML document to a
// Handler, one element at a time, without building a tree.
package xmlstream

import (
	"strconv"
	"strings"
)

// Element is an opened tag: its local name and attributes keyed by local name.
type Element struct {
	Name  string
	Attrs map[string]string
}

// Attr returns the attribute value, or "" when absent.
func (e Element) Attr(name string) string {
	return e.Attrs[name]
}

// Has reports whether the attribute is present.
func (e Element) Has(name string) bool {
	_, ok := e.Attrs[name]
	return ok
}

// Bool coerces an attribute to a boolean. "true" and "enabled" (any case) and
// "1" are true; everything else, including an absent attribute, is false.
func (e Element) Bool(name string) bool {
	v := e.Attrs[name]
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "enabled") || v == "1"
}

// Int parses an integer attribute. Absent or unparsable values yield nil.
func (e Element) Int(name string) *int {
	v, ok := e.Attrs[name]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &n
}

// Float parses a floating point attribute. Absent or unparsable values yield nil.
func (e Element) Float(name string) *float64 {
	v, ok := e.Attrs[name]
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &f
}
