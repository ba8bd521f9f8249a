package project

import (
	"fmt"

	"github.com/mitchellh/copystructure"
)

// Areas returns all areas of the topology.
func (p *Project) Areas() []*Area {
	return p.Topology.Areas
}

// Lines returns the lines of all areas.
func (p *Project) Lines() []*Line {
	var lines []*Line
	for _, a := range p.Topology.Areas {
		lines = append(lines, a.Lines...)
	}
	return lines
}

// Devices returns the devices of all lines. Unassigned devices are not included.
func (p *Project) Devices() []*Device {
	var devices []*Device
	for _, l := range p.Lines() {
		devices = append(devices, l.Devices...)
	}
	return devices
}

// UnassignedDevices returns the devices that are not assigned to a line.
func (p *Project) UnassignedDevices() []*Device {
	return p.Topology.UnassignedDevices
}

// BuildingParts flattens the building forest.
//
// With keepSubstructure false every returned part is a detached copy whose
// BuildingParts field is nil, so printing all parts does not repeat descendants.
// With keepSubstructure true the live nodes are returned.
func (p *Project) BuildingParts(keepSubstructure bool) []*BuildingPart {
	parts := flattenBuildingParts(p.Buildings)
	if keepSubstructure {
		return parts
	}

	stripped := make([]*BuildingPart, 0, len(parts))
	for _, part := range parts {
		c := mustCopy(part)
		c.BuildingParts = nil
		stripped = append(stripped, c)
	}
	return stripped
}

// flattenBuildingParts returns the given sequence followed by the flattened
// children of each of its elements.
func flattenBuildingParts(parts []*BuildingPart) []*BuildingPart {
	out := append([]*BuildingPart(nil), parts...)
	for _, part := range parts {
		if len(part.BuildingParts) > 0 {
			out = append(out, flattenBuildingParts(part.BuildingParts)...)
		}
	}
	return out
}

// Functions returns the functions of all building parts.
func (p *Project) Functions() []*Function {
	var functions []*Function
	for _, part := range flattenBuildingParts(p.Buildings) {
		functions = append(functions, part.Functions...)
	}
	return functions
}

// GroupRanges flattens the group range forest. keepSubstructure behaves as in
// BuildingParts; stripped copies keep their group addresses.
func (p *Project) GroupRanges(keepSubstructure bool) []*GroupRange {
	ranges := flattenGroupRanges(p.GroupAddresses.GroupRanges)
	if keepSubstructure {
		return ranges
	}

	stripped := make([]*GroupRange, 0, len(ranges))
	for _, r := range ranges {
		c := mustCopy(r)
		c.GroupRanges = nil
		stripped = append(stripped, c)
	}
	return stripped
}

func flattenGroupRanges(ranges []*GroupRange) []*GroupRange {
	out := append([]*GroupRange(nil), ranges...)
	for _, r := range ranges {
		if len(r.GroupRanges) > 0 {
			out = append(out, flattenGroupRanges(r.GroupRanges)...)
		}
	}
	return out
}

// GroupAddressList returns every group address of the forest. The addresses of
// nested ranges come before the addresses of their parent range.
func (p *Project) GroupAddressList() []*GroupAddress {
	return collectGroupAddresses(p.GroupAddresses.GroupRanges)
}

func collectGroupAddresses(ranges []*GroupRange) []*GroupAddress {
	var out []*GroupAddress
	for _, r := range ranges {
		if len(r.GroupRanges) > 0 {
			out = append(out, collectGroupAddresses(r.GroupRanges)...)
		}
		out = append(out, r.GroupAddresses...)
	}
	return out
}

// ProductFamilies returns the product family table.
func (p *Project) ProductFamilies() []*ProductFamily {
	return p.ProductFamilyTable
}

// Products returns every product of every family. Each result is a copy that
// carries a copy of its family (without the family's product list).
func (p *Project) Products() []*Product {
	var products []*Product
	for _, family := range p.ProductFamilyTable {
		info := mustCopy(family)
		info.Products = nil

		for _, product := range family.Products {
			c := mustCopy(product)
			c.Family = info
			products = append(products, c)
		}
	}
	return products
}

// Manufacturers returns the manufacturer table.
func (p *Project) Manufacturers() []*Manufacturer {
	return p.ManufacturerTable
}

// DatapointTypes returns the datapoint type table.
func (p *Project) DatapointTypes() []*DatapointType {
	return p.DatapointTypeTable
}

// DatapointSubtypes returns every subtype of every datapoint type. Each result
// is a copy that carries a copy of its parent type (without its subtype list).
func (p *Project) DatapointSubtypes() []*DatapointSubtype {
	var subtypes []*DatapointSubtype
	for _, dpt := range p.DatapointTypeTable {
		parent := mustCopy(dpt)
		parent.Subtypes = nil

		for _, sub := range dpt.Subtypes {
			c := mustCopy(sub)
			c.Parent = parent
			subtypes = append(subtypes, c)
		}
	}
	return subtypes
}

// MediumTypes returns the medium type table.
func (p *Project) MediumTypes() []*MediumType {
	return p.MediumTypeTable
}

// ApplicationPrograms returns the application program table.
func (p *Project) ApplicationPrograms() []*ApplicationProgram {
	return p.ApplicationProgramTable
}

// MaskVersions returns the mask version table.
func (p *Project) MaskVersions() []*MaskVersion {
	return p.MaskVersionTable
}

// mustCopy deep-copies a model value. The model only holds plain data, so a
// failing copy is a programming error.
func mustCopy[T any](v *T) *T {
	c, err := copystructure.Copy(v)
	if err != nil {
		panic(fmt.Sprintf("project: copying %T: %v", v, err))
	}
	return c.(*T)
}

// Counts returns the number of entities per collection, keyed like the
// collection names of the export.
func (p *Project) Counts() map[string]int {
	return map[string]int{
		"areas":               len(p.Topology.Areas),
		"lines":               len(p.Lines()),
		"devices":             len(p.Devices()),
		"unassignedDevices":   len(p.Topology.UnassignedDevices),
		"buildingParts":       len(flattenBuildingParts(p.Buildings)),
		"functions":           len(p.Functions()),
		"groupRanges":         len(flattenGroupRanges(p.GroupAddresses.GroupRanges)),
		"groupAddresses":      len(p.GroupAddressList()),
		"productFamilies":     len(p.ProductFamilyTable),
		"products":            countProducts(p.ProductFamilyTable),
		"manufacturers":       len(p.ManufacturerTable),
		"datapointTypes":      len(p.DatapointTypeTable),
		"datapointSubtypes":   countSubtypes(p.DatapointTypeTable),
		"mediumTypes":         len(p.MediumTypeTable),
		"applicationPrograms": len(p.ApplicationProgramTable),
		"maskVersions":        len(p.MaskVersionTable),
	}
}

func countProducts(families []*ProductFamily) int {
	n := 0
	for _, f := range families {
		n += len(f.Products)
	}
	return n
}

func countSubtypes(types []*DatapointType) int {
	n := 0
	for _, t := range types {
		n += len(t.Subtypes)
	}
	return n
}
