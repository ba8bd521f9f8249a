package builder

import (
	"fmt"

	"github.com/advancedknx/ets-proj-parser/pkg/project"
)

// Builder assembles a project.Project from structural events delivered in
// document order. All per-document state (depth counters, the unassigned
// device mode, the resource gate) lives in the Builder, so a new Builder is
// created for every streamed document while the Project is shared.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	project *project.Project

	buildings *depthTree[project.BuildingPart]
	groups    *depthTree[project.GroupRange]

	unassigned   bool
	resourceOpen bool
}

// New creates a Builder that appends into p. A nil p starts a new project.
func New(p *project.Project) *Builder {
	if p == nil {
		p = project.New()
	}
	return &Builder{
		project: p,
		buildings: newDepthTree(&p.Buildings, func(bp *project.BuildingPart) *[]*project.BuildingPart {
			return &bp.BuildingParts
		}),
		groups: newDepthTree(&p.GroupAddresses.GroupRanges, func(gr *project.GroupRange) *[]*project.GroupRange {
			return &gr.GroupRanges
		}),
	}
}

// Project returns the project being built.
func (b *Builder) Project() *project.Project {
	return b.project
}

// BuildingDepth returns the number of open building parts.
func (b *Builder) BuildingDepth() int {
	return b.buildings.depth
}

// GroupRangeDepth returns the number of open group ranges.
func (b *Builder) GroupRangeDepth() int {
	return b.groups.depth
}

// Finish verifies that every scope opened on this Builder was closed.
func (b *Builder) Finish() error {
	switch {
	case b.buildings.depth != 0:
		return fmt.Errorf("%w: %d building parts left open", ErrPrecondition, b.buildings.depth)
	case b.groups.depth != 0:
		return fmt.Errorf("%w: %d group ranges left open", ErrPrecondition, b.groups.depth)
	case b.unassigned:
		return fmt.Errorf("%w: unassigned device section left open", ErrPrecondition)
	case b.resourceOpen:
		return fmt.Errorf("%w: resource left open", ErrPrecondition)
	}
	return nil
}

// SetProjectInformation stores the general project data.
func (b *Builder) SetProjectInformation(info project.ProjectInformation) {
	b.project.Information = info
}

// NormalizeAddresses runs the address normalizer over the topology. It is run
// once after the topology document ends.
func (b *Builder) NormalizeAddresses() {
	b.project.Topology.NormalizeAddresses()
}

func last[T any](s []*T) *T {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}
