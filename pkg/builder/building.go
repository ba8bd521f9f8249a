package builder

import "github.com/advancedknx/ets-proj-parser/pkg/project"

// OpenBuildingPart opens a building part below the innermost open part. Parts
// of type "Building" always start a new tree of the building forest.
func (b *Builder) OpenBuildingPart(id, name, kind, defaultLine string) error {
	part := &project.BuildingPart{
		ID:               id,
		Name:             name,
		Type:             kind,
		DefaultLine:      defaultLine,
		DeviceReferences: []*project.DeviceReference{},
		Functions:        []*project.Function{},
		BuildingParts:    []*project.BuildingPart{},
	}

	if kind == project.BuildingTypeBuilding {
		b.buildings.openRoot(part)
		return nil
	}
	return b.buildings.open(part)
}

// CloseBuildingPart closes the innermost open building part.
func (b *Builder) CloseBuildingPart() error {
	return b.buildings.close()
}

// AddDeviceReference places a device into the innermost open building part.
func (b *Builder) AddDeviceReference(deviceRefID string) error {
	part, err := b.currentBuildingPart("AddDeviceReference")
	if err != nil {
		return err
	}
	part.DeviceReferences = append(part.DeviceReferences, &project.DeviceReference{DeviceRefID: deviceRefID})
	return nil
}

// AddFunction appends a function to the innermost open building part.
func (b *Builder) AddFunction(id, name, kind string) error {
	part, err := b.currentBuildingPart("AddFunction")
	if err != nil {
		return err
	}
	part.Functions = append(part.Functions, &project.Function{
		ID:                     id,
		Name:                   name,
		Type:                   kind,
		GroupAddressReferences: []*project.GroupAddressReference{},
	})
	return nil
}

// AddGroupAddressReference appends a group address reference to the last
// function of the innermost open building part.
func (b *Builder) AddGroupAddressReference(id, name, role, groupAddressRefID string) error {
	part, err := b.currentBuildingPart("AddGroupAddressReference")
	if err != nil {
		return err
	}
	fn := last(part.Functions)
	if fn == nil {
		return precondition("AddGroupAddressReference", "a function")
	}
	fn.GroupAddressReferences = append(fn.GroupAddressReferences, &project.GroupAddressReference{
		ID:                id,
		Name:              name,
		Role:              role,
		GroupAddressRefID: groupAddressRefID,
	})
	return nil
}

func (b *Builder) currentBuildingPart(op string) (*project.BuildingPart, error) {
	part, err := b.buildings.current()
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, precondition(op, "an open building part")
	}
	return part, nil
}
