package inspect

import "github.com/advancedknx/ets-proj-parser/pkg/project"

func intPtr(v int) *int { return &v }

func testProject() *project.Project {
	p := project.New()
	p.Information = project.ProjectInformation{
		ID:                "P-0001",
		Name:              "Sample",
		EtsVersion:        project.EtsVersion{Application: "ETS5", Version: "5.7"},
		GroupAddressStyle: StyleThreeLevel,
	}

	p.Topology.Areas = []*project.Area{{
		ID: "A1", Name: "Backbone", Address: "1",
		Lines: []*project.Line{{
			ID: "L1", Name: "Floor line", Address: "1.1",
			Devices: []*project.Device{
				{ID: "D1", Name: "Switch", Address: "1.1.1", ProgrammingStatus: project.ProgrammingStatus{SerialNumber: "0001"}},
				{ID: "D2", Name: "Dimmer", Address: "1.1.2"},
			},
		}},
	}}
	p.Topology.UnassignedDevices = []*project.Device{{ID: "U1", Name: "Spare"}}

	p.Buildings = []*project.BuildingPart{{
		ID: "B1", Name: "House", Type: project.BuildingTypeBuilding,
		BuildingParts: []*project.BuildingPart{{
			ID: "R1", Name: "Kitchen", Type: "Room",
			DeviceReferences: []*project.DeviceReference{{DeviceRefID: "D1"}},
			Functions: []*project.Function{{
				ID: "FN1", Name: "Ceiling light",
				GroupAddressReferences: []*project.GroupAddressReference{{ID: "GR-1", GroupAddressRefID: "GA1"}},
			}},
		}},
	}}

	p.GroupAddresses.GroupRanges = []*project.GroupRange{{
		ID: "GR1", Name: "Lights", RangeStart: intPtr(0), RangeEnd: intPtr(2047),
		GroupRanges: []*project.GroupRange{{
			ID: "GR2", Name: "Switching", RangeStart: intPtr(256), RangeEnd: intPtr(511), PassThroughLineCoupler: true,
			GroupAddresses: []*project.GroupAddress{{ID: "GA1", Name: "Kitchen on/off", Address: intPtr(257), DatapointType: "DPST-1-1"}},
		}},
	}}

	p.ManufacturerTable = []*project.Manufacturer{{ID: "M-0083", Name: "MDT"}}
	return p
}
