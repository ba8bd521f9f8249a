package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/advancedknx/ets-proj-parser/pkg/inspect"
	"github.com/advancedknx/ets-proj-parser/pkg/project"
	"github.com/advancedknx/ets-proj-parser/pkg/query"
)

// QueryOptions selects items of one collection.
type QueryOptions struct {
	// Collection name or alias
	Collection string

	// Key is a dotted key path compared with Value (optional)
	Key   string
	Value string

	// Where is a JMESPath expression evaluated per item (optional)
	Where string

	// Field prints only this dotted key path of each match (optional)
	Field string
}

// ParseValue reads a command-line value as JSON, falling back to the plain
// string. "1" is the number 1, "true" the boolean and "Kitchen" a string.
func ParseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// Query applies opts to p and returns the matching items, or their field
// values when opts.Field is set.
func Query(p *project.Project, opts QueryOptions) ([]any, error) {
	c, ok := inspect.ResolveCollection(opts.Collection)
	if !ok {
		return nil, fmt.Errorf("%w: %q", inspect.ErrUnknownCollection, opts.Collection)
	}
	items, err := inspect.NewInspector(p).Items(c)
	if err != nil {
		return nil, err
	}

	if opts.Key != "" {
		items, err = query.ByKey(items, query.ParseKeyPath(opts.Key), ParseValue(opts.Value))
		if err != nil {
			return nil, err
		}
	}
	if opts.Where != "" {
		items, err = query.Where(items, opts.Where)
		if err != nil {
			return nil, err
		}
	}
	if opts.Field == "" {
		return items, nil
	}

	keyPath := query.ParseKeyPath(opts.Field)
	values := make([]any, 0, len(items))
	for _, item := range items {
		v, err := query.Field(item, keyPath)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// RunQuery loads an export, runs the query and writes the result as JSON.
func RunQuery(path string, opts QueryOptions, w io.Writer) error {
	p, err := LoadExport(path)
	if err != nil {
		return err
	}
	result, err := Query(p, opts)
	if err != nil {
		return err
	}
	if result == nil {
		result = []any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
