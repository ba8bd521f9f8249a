// Package inspect provides project inspection utilities.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "devices/P-0001-0_DI-1/programmingStatus")
//   - Resolving collections, items and fields of a built project
//   - Formatting trees and summaries for display
package inspect

import (
	"errors"
	"fmt"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath         = errors.New("empty path")
	ErrInvalidPath       = errors.New("invalid path format")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Path represents a parsed inspection path.
// Format: collection[/id[/field.path]]
type Path struct {
	// Collection is the resolved collection.
	Collection Collection

	// ID selects a single item of the collection (empty for the whole collection).
	ID string

	// Field is the key path inside the item (empty for the whole item).
	Field []string

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "devices" - the whole collection
//   - "devices/<id>" - a single item
//   - "devices/<id>/programmingStatus.serialNumber" - a field of an item
//
// Collection names are case-insensitive and accept the short aliases of
// ResolveCollection.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	// Check for invalid patterns
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.SplitN(input, "/", 3)
	c, ok := ResolveCollection(parts[0])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, parts[0])
	}

	p := &Path{Collection: c, Raw: input}
	if len(parts) > 1 {
		p.ID = parts[1]
	}
	if len(parts) > 2 {
		for _, key := range strings.Split(parts[2], ".") {
			if key == "" {
				return nil, fmt.Errorf("%w: empty field name in %q", ErrInvalidPath, parts[2])
			}
			p.Field = append(p.Field, key)
		}
	}
	return p, nil
}

// IsCollection reports whether the path selects a whole collection.
func (p *Path) IsCollection() bool {
	return p.ID == ""
}

// String returns the path as a string.
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString(string(p.Collection))
	if p.ID != "" {
		sb.WriteString("/")
		sb.WriteString(p.ID)
	}
	if len(p.Field) > 0 {
		sb.WriteString("/")
		sb.WriteString(strings.Join(p.Field, "."))
	}
	return sb.String()
}
