package builder

import "github.com/advancedknx/ets-proj-parser/pkg/project"

// OpenGroupRange opens a group range below the innermost open range.
//
// The range passes through line couplers if unfiltered is set or if the
// enclosing range already does. The flag is decided here, once, and never
// recomputed.
func (b *Builder) OpenGroupRange(id, name string, rangeStart, rangeEnd *int, unfiltered bool) error {
	parent, err := b.groups.current()
	if err != nil {
		return err
	}
	if parent != nil && parent.PassThroughLineCoupler {
		unfiltered = true
	}

	return b.groups.open(&project.GroupRange{
		ID:                     id,
		Name:                   name,
		RangeStart:             rangeStart,
		RangeEnd:               rangeEnd,
		PassThroughLineCoupler: unfiltered,
		GroupAddresses:         []*project.GroupAddress{},
		GroupRanges:            []*project.GroupRange{},
	})
}

// CloseGroupRange closes the innermost open group range.
func (b *Builder) CloseGroupRange() error {
	return b.groups.close()
}

// AddGroupAddress appends a group address to the innermost open range. The
// address takes the range's line coupler flag as it is at this moment.
func (b *Builder) AddGroupAddress(ga project.GroupAddress) error {
	r, err := b.groups.current()
	if err != nil {
		return err
	}
	if r == nil {
		return precondition("AddGroupAddress", "an open group range")
	}
	ga.PassThroughLineCoupler = r.PassThroughLineCoupler
	r.GroupAddresses = append(r.GroupAddresses, &ga)
	return nil
}
