package builder

import (
	"fmt"

	"github.com/advancedknx/ets-proj-parser/pkg/project"
)

// Reference tables are append-only. Sub-records always directly follow their
// parent record in the source, so they attach to the most recent entry.

// AddManufacturer appends a manufacturer.
func (b *Builder) AddManufacturer(m project.Manufacturer) {
	b.project.ManufacturerTable = append(b.project.ManufacturerTable, &m)
}

// AddDatapointType appends a datapoint type.
func (b *Builder) AddDatapointType(dpt project.DatapointType) {
	dpt.Subtypes = []*project.DatapointSubtype{}
	b.project.DatapointTypeTable = append(b.project.DatapointTypeTable, &dpt)
}

// AddDatapointSubtype appends a subtype to the most recent datapoint type.
func (b *Builder) AddDatapointSubtype(sub project.DatapointSubtype) error {
	dpt := last(b.project.DatapointTypeTable)
	if dpt == nil {
		return precondition("AddDatapointSubtype", "a datapoint type")
	}
	sub.Parent = nil
	dpt.Subtypes = append(dpt.Subtypes, &sub)
	return nil
}

// AddMediumType appends a medium type.
func (b *Builder) AddMediumType(mt project.MediumType) {
	b.project.MediumTypeTable = append(b.project.MediumTypeTable, &mt)
}

// AddApplicationProgram appends an application program.
func (b *Builder) AddApplicationProgram(app project.ApplicationProgram) {
	b.project.ApplicationProgramTable = append(b.project.ApplicationProgramTable, &app)
}

// AddProductFamily appends a product family (a Hardware entry).
func (b *Builder) AddProductFamily(pf project.ProductFamily) {
	pf.Products = []*project.Product{}
	b.project.ProductFamilyTable = append(b.project.ProductFamilyTable, &pf)
}

// AddProduct appends a product to the most recent product family.
func (b *Builder) AddProduct(p project.Product) error {
	pf := last(b.project.ProductFamilyTable)
	if pf == nil {
		return precondition("AddProduct", "a product family")
	}
	p.Family = nil
	pf.Products = append(pf.Products, &p)
	return nil
}

// SetProductFamilyApplicationProgram sets the application program reference
// of the most recent product family.
func (b *Builder) SetProductFamilyApplicationProgram(refID string) error {
	pf := last(b.project.ProductFamilyTable)
	if pf == nil {
		return precondition("SetProductFamilyApplicationProgram", "a product family")
	}
	pf.ApplicationProgramRefID = refID
	return nil
}

// AddMaskVersion appends a mask version entry.
func (b *Builder) AddMaskVersion(mv project.MaskVersion) {
	mv.Resources = []*project.Resource{}
	mv.CompatibleMaskVersionIDs = []string{}
	b.project.MaskVersionTable = append(b.project.MaskVersionTable, &mv)
}

// AddCompatibleMaskVersion records a downward compatible mask version on the
// most recent mask version entry.
func (b *Builder) AddCompatibleMaskVersion(refID string) error {
	mv, err := b.lastMaskVersion("AddCompatibleMaskVersion")
	if err != nil {
		return err
	}
	mv.CompatibleMaskVersionIDs = append(mv.CompatibleMaskVersionIDs, refID)
	return nil
}

// MaskVersionFeature names a feature value of a mask version.
type MaskVersionFeature string

// Mask version features carried by the master data.
const (
	FeatureMaxIndividualAddress      MaskVersionFeature = "MaxIndividualAddress"
	FeatureMaxGroupAddress           MaskVersionFeature = "MaxGroupAddress"
	FeatureUnloadedIndividualAddress MaskVersionFeature = "UnloadedIndividualAddress"
)

// SetMaskVersionFeature sets a feature value on the most recent mask version
// entry. Unknown features are ignored.
func (b *Builder) SetMaskVersionFeature(feature MaskVersionFeature, value *int) error {
	mv, err := b.lastMaskVersion("SetMaskVersionFeature")
	if err != nil {
		return err
	}
	switch feature {
	case FeatureMaxIndividualAddress:
		mv.MaxIndividualAddress = value
	case FeatureMaxGroupAddress:
		mv.MaxGroupAddress = value
	case FeatureUnloadedIndividualAddress:
		mv.UnloadedIndividualAddress = value
	}
	return nil
}

// OpenResource appends a resource to the most recent mask version entry and
// opens the resource scope in which location data is accepted.
func (b *Builder) OpenResource(name, access string) error {
	mv, err := b.lastMaskVersion("OpenResource")
	if err != nil {
		return err
	}
	mv.Resources = append(mv.Resources, &project.Resource{Name: name, Access: access})
	b.resourceOpen = true
	return nil
}

// CloseResource closes the resource scope.
func (b *Builder) CloseResource() {
	b.resourceOpen = false
}

// ResourceOpen reports whether a resource scope is open.
func (b *Builder) ResourceOpen() bool {
	return b.resourceOpen
}

// ResourceLocation is the location part of a resource.
type ResourceLocation struct {
	AddressSpace       string
	StartAddress       *int
	PtrResource        string
	InterfaceObjectRef *int
	PropertyID         *int
	Occurrence         *int
}

// SetResourceLocation applies location data to the most recent resource. It
// reports false and changes nothing when no resource scope is open, because
// location data outside a resource belongs to something else.
func (b *Builder) SetResourceLocation(loc ResourceLocation) (bool, error) {
	if !b.resourceOpen {
		return false, nil
	}
	r, err := b.lastResource("SetResourceLocation")
	if err != nil {
		return false, err
	}
	r.AddressSpace = loc.AddressSpace
	r.StartAddress = loc.StartAddress
	r.PtrResource = loc.PtrResource
	r.InterfaceObjectRef = loc.InterfaceObjectRef
	r.PropertyID = loc.PropertyID
	r.Occurrence = loc.Occurrence
	return true, nil
}

// SetResourceType sets length and flavour of the most recent resource.
func (b *Builder) SetResourceType(length *int, flavour string) error {
	r, err := b.lastResource("SetResourceType")
	if err != nil {
		return err
	}
	r.Length = length
	r.Flavour = flavour
	return nil
}

// SetResourceAccessRights sets the access rights of the most recent resource.
func (b *Builder) SetResourceAccessRights(read, write string) error {
	r, err := b.lastResource("SetResourceAccessRights")
	if err != nil {
		return err
	}
	r.ReadRights = read
	r.WriteRights = write
	return nil
}

func (b *Builder) lastMaskVersion(op string) (*project.MaskVersion, error) {
	mv := last(b.project.MaskVersionTable)
	if mv == nil {
		return nil, precondition(op, "a mask version")
	}
	return mv, nil
}

func (b *Builder) lastResource(op string) (*project.Resource, error) {
	mv, err := b.lastMaskVersion(op)
	if err != nil {
		return nil, err
	}
	r := last(mv.Resources)
	if r == nil {
		return nil, fmt.Errorf("%w: %s requires a resource on mask version %s", ErrPrecondition, op, mv.ID)
	}
	return r, nil
}
