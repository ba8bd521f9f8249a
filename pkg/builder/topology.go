package builder

import (
	"fmt"

	"github.com/advancedknx/ets-proj-parser/pkg/project"
)

// AddArea appends an area to the topology.
func (b *Builder) AddArea(id, name, address string) {
	b.project.Topology.Areas = append(b.project.Topology.Areas, &project.Area{
		ID:      id,
		Name:    name,
		Address: address,
		Lines:   []*project.Line{},
	})
}

// AddLine appends a line to the last area.
func (b *Builder) AddLine(id, name, address, mediumTypeRefID string) error {
	area := last(b.project.Topology.Areas)
	if area == nil {
		return precondition("AddLine", "an area")
	}
	area.Lines = append(area.Lines, &project.Line{
		ID:              id,
		Name:            name,
		Address:         address,
		MediumTypeRefID: mediumTypeRefID,
		Devices:         []*project.Device{},
	})
	return nil
}

// StartUnassigned routes following devices to the unassigned device list.
func (b *Builder) StartUnassigned() error {
	if b.unassigned {
		return fmt.Errorf("%w: unassigned device section already open", ErrPrecondition)
	}
	b.unassigned = true
	return nil
}

// StopUnassigned routes following devices back to the last line.
func (b *Builder) StopUnassigned() error {
	if !b.unassigned {
		return fmt.Errorf("%w: no unassigned device section open", ErrPrecondition)
	}
	b.unassigned = false
	return nil
}

// Unassigned reports whether devices currently go to the unassigned list.
func (b *Builder) Unassigned() bool {
	return b.unassigned
}

// AddDevice appends a device to the last line, or to the unassigned list while
// an unassigned section is open. The device's owned sequences are reset.
func (b *Builder) AddDevice(d project.Device) error {
	dev := &d
	dev.Security = nil
	dev.ParameterReferences = []*project.ParameterReference{}
	dev.CommunicationReferences = []*project.CommunicationReference{}

	if b.unassigned {
		b.project.Topology.UnassignedDevices = append(b.project.Topology.UnassignedDevices, dev)
		return nil
	}

	line, err := b.lastLine("AddDevice")
	if err != nil {
		return err
	}
	line.Devices = append(line.Devices, dev)
	return nil
}

// SetSecurity sets the security record of the last device.
func (b *Builder) SetSecurity(sequenceNumber *int, timestamp string) error {
	dev, err := b.lastDevice("SetSecurity")
	if err != nil {
		return err
	}
	dev.Security = &project.Security{
		SequenceNumber:          sequenceNumber,
		SequenceNumberTimestamp: timestamp,
	}
	return nil
}

// AddParameterReference appends a parameter value to the last device.
func (b *Builder) AddParameterReference(refID, value string) error {
	dev, err := b.lastDevice("AddParameterReference")
	if err != nil {
		return err
	}
	dev.ParameterReferences = append(dev.ParameterReferences, &project.ParameterReference{
		ParameterRefID: refID,
		Value:          value,
	})
	return nil
}

// AddCommunicationReference appends a communication object to the last device.
func (b *Builder) AddCommunicationReference(ref project.CommunicationReference) error {
	dev, err := b.lastDevice("AddCommunicationReference")
	if err != nil {
		return err
	}
	ref.Connectors = []*project.Connector{}
	dev.CommunicationReferences = append(dev.CommunicationReferences, &ref)
	return nil
}

// AddConnector appends a connector to the last communication object of the last device.
func (b *Builder) AddConnector() error {
	dev, err := b.lastDevice("AddConnector")
	if err != nil {
		return err
	}
	ref := last(dev.CommunicationReferences)
	if ref == nil {
		return precondition("AddConnector", "a communication reference")
	}
	ref.Connectors = append(ref.Connectors, &project.Connector{
		Send:    []*project.GroupAddressLink{},
		Receive: []*project.GroupAddressLink{},
	})
	return nil
}

// AddSend appends a send target to the last connector.
func (b *Builder) AddSend(groupAddressRefID string) error {
	c, err := b.lastConnector("AddSend")
	if err != nil {
		return err
	}
	c.Send = append(c.Send, &project.GroupAddressLink{GroupAddressRefID: groupAddressRefID})
	return nil
}

// AddReceive appends a receive target to the last connector.
func (b *Builder) AddReceive(groupAddressRefID string) error {
	c, err := b.lastConnector("AddReceive")
	if err != nil {
		return err
	}
	c.Receive = append(c.Receive, &project.GroupAddressLink{GroupAddressRefID: groupAddressRefID})
	return nil
}

func (b *Builder) lastLine(op string) (*project.Line, error) {
	area := last(b.project.Topology.Areas)
	if area == nil {
		return nil, precondition(op, "an area")
	}
	line := last(area.Lines)
	if line == nil {
		return nil, precondition(op, "a line")
	}
	return line, nil
}

// lastDevice returns the device that sub-records attach to: the last
// unassigned device while the unassigned section is open, else the last
// device of the last line.
func (b *Builder) lastDevice(op string) (*project.Device, error) {
	var dev *project.Device
	if b.unassigned {
		dev = last(b.project.Topology.UnassignedDevices)
	} else {
		line, err := b.lastLine(op)
		if err != nil {
			return nil, err
		}
		dev = last(line.Devices)
	}
	if dev == nil {
		return nil, precondition(op, "a device")
	}
	return dev, nil
}

func (b *Builder) lastConnector(op string) (*project.Connector, error) {
	dev, err := b.lastDevice(op)
	if err != nil {
		return nil, err
	}
	ref := last(dev.CommunicationReferences)
	if ref == nil {
		return nil, precondition(op, "a communication reference")
	}
	c := last(ref.Connectors)
	if c == nil {
		return nil, precondition(op, "a connector")
	}
	return c, nil
}
