package inspect

import (
	"errors"
	"fmt"

	"github.com/advancedknx/ets-proj-parser/pkg/project"
	"github.com/advancedknx/ets-proj-parser/pkg/query"
)

// Inspector errors.
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrFieldNotFound = errors.New("field not found")
)

// Inspector resolves paths against a built project.
type Inspector struct {
	project *project.Project
}

// NewInspector creates a new Inspector for the given project.
func NewInspector(p *project.Project) *Inspector {
	return &Inspector{project: p}
}

// Project returns the underlying project.
func (i *Inspector) Project() *project.Project {
	return i.project
}

// Items returns the items of a collection. Recursive collections are
// flattened without their substructure.
func (i *Inspector) Items(c Collection) ([]any, error) {
	p := i.project
	switch c {
	case Areas:
		return anySlice(p.Areas()), nil
	case Lines:
		return anySlice(p.Lines()), nil
	case Devices:
		return anySlice(p.Devices()), nil
	case UnassignedDevices:
		return anySlice(p.UnassignedDevices()), nil
	case BuildingParts:
		return anySlice(p.BuildingParts(false)), nil
	case Functions:
		return anySlice(p.Functions()), nil
	case GroupRanges:
		return anySlice(p.GroupRanges(false)), nil
	case GroupAddresses:
		return anySlice(p.GroupAddressList()), nil
	case ProductFamilies:
		return anySlice(p.ProductFamilies()), nil
	case Products:
		return anySlice(p.Products()), nil
	case Manufacturers:
		return anySlice(p.Manufacturers()), nil
	case DatapointTypes:
		return anySlice(p.DatapointTypes()), nil
	case DatapointSubtypes:
		return anySlice(p.DatapointSubtypes()), nil
	case MediumTypes:
		return anySlice(p.MediumTypes()), nil
	case ApplicationPrograms:
		return anySlice(p.ApplicationPrograms()), nil
	case MaskVersions:
		return anySlice(p.MaskVersions()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
}

// Resolve returns what the path selects: the collection items, a single item
// or a field value in its JSON form.
func (i *Inspector) Resolve(path *Path) (any, error) {
	items, err := i.Items(path.Collection)
	if err != nil {
		return nil, err
	}
	if path.IsCollection() {
		return items, nil
	}

	matches, err := query.ByKey(items, []string{"id"}, path.ID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrItemNotFound, path.Collection, path.ID)
	}
	item := matches[0]
	if len(path.Field) == 0 {
		return item, nil
	}

	v, err := query.Field(item, path.Field)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, path)
	}
	return v, nil
}

func anySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
