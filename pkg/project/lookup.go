package project

// The lookups below resolve opaque identifier references. None of them fail:
// an identifier that was never parsed simply reports false.

// Device returns the device (assigned or unassigned) with the given ID.
func (p *Project) Device(id string) (*Device, bool) {
	if d, ok := find(p.Devices(), id, func(d *Device) string { return d.ID }); ok {
		return d, true
	}
	return find(p.Topology.UnassignedDevices, id, func(d *Device) string { return d.ID })
}

// BuildingPart returns the building part with the given ID.
func (p *Project) BuildingPart(id string) (*BuildingPart, bool) {
	return find(flattenBuildingParts(p.Buildings), id, func(b *BuildingPart) string { return b.ID })
}

// GroupAddress returns the group address with the given ID.
func (p *Project) GroupAddress(id string) (*GroupAddress, bool) {
	return find(p.GroupAddressList(), id, func(ga *GroupAddress) string { return ga.ID })
}

// ProductFamily returns the product family with the given ID.
func (p *Project) ProductFamily(id string) (*ProductFamily, bool) {
	return find(p.ProductFamilyTable, id, func(pf *ProductFamily) string { return pf.ID })
}

// Product returns the product with the given ID together with its family.
func (p *Project) Product(id string) (*Product, *ProductFamily, bool) {
	if id == "" {
		return nil, nil, false
	}
	for _, family := range p.ProductFamilyTable {
		for _, product := range family.Products {
			if product.ID == id {
				return product, family, true
			}
		}
	}
	return nil, nil, false
}

// Manufacturer returns the manufacturer with the given ID.
func (p *Project) Manufacturer(id string) (*Manufacturer, bool) {
	return find(p.ManufacturerTable, id, func(m *Manufacturer) string { return m.ID })
}

// DatapointType returns the datapoint type with the given ID.
func (p *Project) DatapointType(id string) (*DatapointType, bool) {
	return find(p.DatapointTypeTable, id, func(d *DatapointType) string { return d.ID })
}

// DatapointSubtype returns the datapoint subtype with the given ID together
// with its parent type.
func (p *Project) DatapointSubtype(id string) (*DatapointSubtype, *DatapointType, bool) {
	if id == "" {
		return nil, nil, false
	}
	for _, dpt := range p.DatapointTypeTable {
		for _, sub := range dpt.Subtypes {
			if sub.ID == id {
				return sub, dpt, true
			}
		}
	}
	return nil, nil, false
}

// MediumType returns the medium type with the given ID.
func (p *Project) MediumType(id string) (*MediumType, bool) {
	return find(p.MediumTypeTable, id, func(m *MediumType) string { return m.ID })
}

// ApplicationProgram returns the application program with the given ID.
func (p *Project) ApplicationProgram(id string) (*ApplicationProgram, bool) {
	return find(p.ApplicationProgramTable, id, func(a *ApplicationProgram) string { return a.ID })
}

// MaskVersion returns the mask version with the given ID.
func (p *Project) MaskVersion(id string) (*MaskVersion, bool) {
	return find(p.MaskVersionTable, id, func(m *MaskVersion) string { return m.ID })
}

func find[T any](items []*T, id string, key func(*T) string) (*T, bool) {
	if id == "" {
		return nil, false
	}
	for _, item := range items {
		if key(item) == id {
			return item, true
		}
	}
	return nil, false
}
