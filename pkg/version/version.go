// Package version provides ETS tool version parsing and support checks.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Range of ETS major versions whose archive layout is understood.
const (
	MinSupportedMajor = 4
	MaxSupportedMajor = 6
)

// ToolVersion represents a parsed "major.minor[.build[.revision]]" ETS version,
// as found in the ToolVersion attribute of project.xml.
type ToolVersion struct {
	Major    uint32
	Minor    uint32
	Build    uint32
	Revision uint32

	// parts is the number of components present in the parsed string.
	parts int
}

// Parse parses a version string with two to four numeric components.
func Parse(s string) (ToolVersion, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 4 {
		return ToolVersion{}, fmt.Errorf("invalid version %q: expected major.minor[.build[.revision]]", s)
	}

	var nums [4]uint32
	names := [4]string{"major", "minor", "build", "revision"}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil || p == "" {
			return ToolVersion{}, fmt.Errorf("invalid version %q: bad %s component", s, names[i])
		}
		nums[i] = uint32(n)
	}

	return ToolVersion{
		Major:    nums[0],
		Minor:    nums[1],
		Build:    nums[2],
		Revision: nums[3],
		parts:    len(parts),
	}, nil
}

// String returns the version with as many components as were parsed.
func (v ToolVersion) String() string {
	switch v.parts {
	case 3:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
	case 4:
		return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
	default:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
}

// Supported returns true if archives of this major version can be read.
func (v ToolVersion) Supported() bool {
	return v.Major >= MinSupportedMajor && v.Major <= MaxSupportedMajor
}

// Less reports whether v is older than other.
func (v ToolVersion) Less(other ToolVersion) bool {
	a := [4]uint32{v.Major, v.Minor, v.Build, v.Revision}
	b := [4]uint32{other.Major, other.Minor, other.Build, other.Revision}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
