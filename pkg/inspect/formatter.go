package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/advancedknx/ets-proj-parser/pkg/project"
)

// Group address styles of ProjectInformation.GroupAddressStyle.
const (
	StyleThreeLevel = "ThreeLevel"
	StyleTwoLevel   = "TwoLevel"
	StyleFree       = "Free"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowIDs includes element IDs alongside names
	ShowIDs bool

	// ShowEmpty includes empty collections in summaries
	ShowEmpty bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowIDs:     false,
		ShowEmpty:   true,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatValue formats a value in its JSON form for display.
func (f *Formatter) FormatValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"

	case string:
		return fmt.Sprintf("%q", v)

	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)

	case int:
		return fmt.Sprintf("%d", v)

	case []any:
		if len(v) == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d items]", len(v))

	case map[string]any:
		if len(v) == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d keys}", len(v))

	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatGroupAddress renders a raw group address in the given style. Unknown
// styles and a nil address render as in the free style.
func FormatGroupAddress(address *int, style string) string {
	if address == nil {
		return "-"
	}
	a := *address
	switch style {
	case StyleThreeLevel:
		return fmt.Sprintf("%d/%d/%d", (a>>11)&0x1f, (a>>8)&0x07, a&0xff)
	case StyleTwoLevel:
		return fmt.Sprintf("%d/%d", (a>>11)&0x1f, a&0x7ff)
	default:
		return fmt.Sprintf("%d", a)
	}
}

func (f *Formatter) label(id, address, name string) string {
	var parts []string
	if address != "" {
		parts = append(parts, address)
	}
	if name != "" {
		parts = append(parts, name)
	}
	if f.ShowIDs && id != "" {
		parts = append(parts, "("+id+")")
	}
	if len(parts) == 0 {
		return id
	}
	return strings.Join(parts, " ")
}

// Topology renders the Area > Line > Device hierarchy and the unassigned devices.
func (f *Formatter) Topology(p *project.Project) string {
	tree := treeprint.NewWithRoot("Topology")
	for _, area := range p.Topology.Areas {
		ab := tree.AddBranch(f.label(area.ID, area.Address, area.Name))
		for _, line := range area.Lines {
			lb := ab.AddBranch(f.label(line.ID, line.Address, line.Name))
			for _, d := range line.Devices {
				lb.AddNode(f.label(d.ID, d.Address, d.Name))
			}
		}
	}
	if len(p.Topology.UnassignedDevices) > 0 {
		ub := tree.AddBranch("Unassigned")
		for _, d := range p.Topology.UnassignedDevices {
			ub.AddNode(f.label(d.ID, d.Address, d.Name))
		}
	}
	return tree.String()
}

// Buildings renders the building forest with device references and functions.
func (f *Formatter) Buildings(p *project.Project) string {
	tree := treeprint.NewWithRoot("Buildings")
	for _, part := range p.Buildings {
		f.addBuildingPart(tree, part)
	}
	return tree.String()
}

func (f *Formatter) addBuildingPart(t treeprint.Tree, part *project.BuildingPart) {
	name := f.label(part.ID, "", part.Name)
	if part.Type != "" {
		name += " [" + part.Type + "]"
	}
	b := t.AddBranch(name)
	for _, ref := range part.DeviceReferences {
		b.AddNode("device " + ref.DeviceRefID)
	}
	for _, fn := range part.Functions {
		fb := b.AddBranch("function " + f.label(fn.ID, "", fn.Name))
		for _, ref := range fn.GroupAddressReferences {
			fb.AddNode("ga " + ref.GroupAddressRefID)
		}
	}
	for _, child := range part.BuildingParts {
		f.addBuildingPart(b, child)
	}
}

// GroupRanges renders the group range forest. Addresses are shown in the
// project's group address style.
func (f *Formatter) GroupRanges(p *project.Project) string {
	tree := treeprint.NewWithRoot("Group Addresses")
	style := p.Information.GroupAddressStyle
	for _, gr := range p.GroupAddresses.GroupRanges {
		f.addGroupRange(tree, gr, style)
	}
	return tree.String()
}

func (f *Formatter) addGroupRange(t treeprint.Tree, gr *project.GroupRange, style string) {
	name := f.label(gr.ID, "", gr.Name)
	if gr.RangeStart != nil && gr.RangeEnd != nil {
		name += fmt.Sprintf(" [%s..%s]", FormatGroupAddress(gr.RangeStart, style), FormatGroupAddress(gr.RangeEnd, style))
	}
	if gr.PassThroughLineCoupler {
		name += " (pass-through)"
	}
	b := t.AddBranch(name)
	for _, child := range gr.GroupRanges {
		f.addGroupRange(b, child, style)
	}
	for _, ga := range gr.GroupAddresses {
		label := f.label(ga.ID, FormatGroupAddress(ga.Address, style), ga.Name)
		if ga.DatapointType != "" {
			label += " " + ga.DatapointType
		}
		b.AddNode(label)
	}
}

// Summary renders the project header and the size of every collection.
func (f *Formatter) Summary(p *project.Project) string {
	var sb strings.Builder
	info := p.Information
	sb.WriteString(fmt.Sprintf("Project: %s\n", info.Name))
	if info.EtsVersion.Version != "" {
		sb.WriteString(f.Indent(1, fmt.Sprintf("ETS: %s %s\n", info.EtsVersion.Application, info.EtsVersion.Version)))
	}
	if info.GroupAddressStyle != "" {
		sb.WriteString(f.Indent(1, fmt.Sprintf("Group address style: %s\n", info.GroupAddressStyle)))
	}

	counts := p.Counts()
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString("Collections:\n")
	for _, k := range keys {
		if counts[k] == 0 && !f.ShowEmpty {
			continue
		}
		sb.WriteString(f.Indent(1, fmt.Sprintf("%s: %d\n", k, counts[k])))
	}
	return sb.String()
}
