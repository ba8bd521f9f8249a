package inspect

import (
	"sort"
	"strings"
)

// Collection names a flat collection of the project model. The names are the
// keys of the export and of project.Counts.
type Collection string

// Collections of a project.
const (
	Areas               Collection = "areas"
	Lines               Collection = "lines"
	Devices             Collection = "devices"
	UnassignedDevices   Collection = "unassignedDevices"
	BuildingParts       Collection = "buildingParts"
	Functions           Collection = "functions"
	GroupRanges         Collection = "groupRanges"
	GroupAddresses      Collection = "groupAddresses"
	ProductFamilies     Collection = "productFamilies"
	Products            Collection = "products"
	Manufacturers       Collection = "manufacturers"
	DatapointTypes      Collection = "datapointTypes"
	DatapointSubtypes   Collection = "datapointSubtypes"
	MediumTypes         Collection = "mediumTypes"
	ApplicationPrograms Collection = "applicationPrograms"
	MaskVersions        Collection = "maskVersions"
)

// Short aliases accepted on the command line.
var collectionAliases = map[string]Collection{
	"ga":       GroupAddresses,
	"gas":      GroupAddresses,
	"gr":       GroupRanges,
	"rooms":    BuildingParts,
	"building": BuildingParts,
	"hardware": ProductFamilies,
	"dpt":      DatapointTypes,
	"dpst":     DatapointSubtypes,
	"apps":     ApplicationPrograms,
	"masks":    MaskVersions,
}

// AllCollections returns every collection name, sorted.
func AllCollections() []Collection {
	all := []Collection{
		Areas, Lines, Devices, UnassignedDevices, BuildingParts, Functions,
		GroupRanges, GroupAddresses, ProductFamilies, Products, Manufacturers,
		DatapointTypes, DatapointSubtypes, MediumTypes, ApplicationPrograms, MaskVersions,
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}

// ResolveCollection resolves a collection name or alias (case-insensitive).
func ResolveCollection(name string) (Collection, bool) {
	lname := strings.ToLower(name)
	if c, ok := collectionAliases[lname]; ok {
		return c, true
	}
	for _, c := range AllCollections() {
		if strings.ToLower(string(c)) == lname {
			return c, true
		}
	}
	return "", false
}
