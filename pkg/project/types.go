package project

// Project is the root of a parsed ETS project.
type Project struct {
	Information    ProjectInformation `json:"projectInformation"`
	Topology       Topology           `json:"topology"`
	Buildings      []*BuildingPart    `json:"buildings"`
	GroupAddresses GroupAddresses     `json:"groupAddresses"`

	// Reference tables.
	ProductFamilyTable      []*ProductFamily      `json:"productFamilies"`
	ManufacturerTable       []*Manufacturer       `json:"manufacturers"`
	DatapointTypeTable      []*DatapointType      `json:"datapointTypes"`
	MediumTypeTable         []*MediumType         `json:"mediumTypes"`
	ApplicationProgramTable []*ApplicationProgram `json:"applicationPrograms"`
	MaskVersionTable        []*MaskVersion        `json:"maskVersions"`
}

// New returns an empty project with all sequences allocated.
func New() *Project {
	return &Project{
		Topology: Topology{
			Areas:             []*Area{},
			UnassignedDevices: []*Device{},
		},
		Buildings:               []*BuildingPart{},
		GroupAddresses:          GroupAddresses{GroupRanges: []*GroupRange{}},
		ProductFamilyTable:      []*ProductFamily{},
		ManufacturerTable:       []*Manufacturer{},
		DatapointTypeTable:      []*DatapointType{},
		MediumTypeTable:         []*MediumType{},
		ApplicationProgramTable: []*ApplicationProgram{},
		MaskVersionTable:        []*MaskVersion{},
	}
}

// ProjectInformation holds the general data of project.xml.
type ProjectInformation struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	EtsVersion        EtsVersion `json:"etsVersion"`
	GroupAddressStyle string     `json:"groupAddressStyle"`
	DeviceCount       string     `json:"deviceCount"`
	LastModified      string     `json:"lastModified"`
	Comment           string     `json:"comment"`
	CodePage          string     `json:"codePage"`
	LastUsedPuid      string     `json:"lastUsedPuid"`
	GUID              string     `json:"guid"`
	CompletionStatus  string     `json:"completionStatus"`
	ProjectStart      string     `json:"projectStart"`
}

// EtsVersion identifies the tool that created the project.
type EtsVersion struct {
	Application string `json:"application"`
	Version     string `json:"version"`
}

// Topology is the fixed-depth Area > Line > Device hierarchy.
type Topology struct {
	Areas             []*Area   `json:"areas"`
	UnassignedDevices []*Device `json:"unassignedDevices"`
}

// Area is the top level of the topology.
type Area struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lines   []*Line `json:"lines"`
}

// Line belongs to an Area and owns devices.
type Line struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	MediumTypeRefID string    `json:"mediumTypeRefId,omitempty"`
	Devices         []*Device `json:"devices"`
}

// Device is a device instance of the topology.
type Device struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Comment     string `json:"comment"`
	Address     string `json:"address"`

	IsCommunicationObjectVisibilityCalculated bool `json:"isCommunicationObjectVisibilityCalculated"`

	ProgrammingStatus       ProgrammingStatus         `json:"programmingStatus"`
	Security                *Security                 `json:"security,omitempty"`
	ParameterReferences     []*ParameterReference     `json:"parameterReferences"`
	CommunicationReferences []*CommunicationReference `json:"communicationReferences"`

	ProductRefID          string `json:"productRefId,omitempty"`
	Hardware2ProgramRefID string `json:"hardware2ProgramRefId,omitempty"`
}

// ProgrammingStatus is the download state of a device.
type ProgrammingStatus struct {
	SerialNumber             string `json:"serialNumber"`
	ApplicationProgramLoaded bool   `json:"applicationProgramLoaded"`
	CommunicationPartLoaded  bool   `json:"communicationPartLoaded"`
	IndividualAddressLoaded  bool   `json:"individualAddressLoaded"`
	ParametersLoaded         bool   `json:"parametersLoaded"`
	MediumConfigLoaded       bool   `json:"mediumConfigLoaded"`
	LastUsedAPDULength       *int   `json:"lastUsedApduLength,omitempty"`
	MaxReadAPDULength        *int   `json:"maxReadApduLength,omitempty"`
	LastModified             string `json:"lastModified"`
	LastDownload             string `json:"lastDownload"`
}

// Security holds the secure-device sequence state.
type Security struct {
	SequenceNumber          *int   `json:"sequenceNumber,omitempty"`
	SequenceNumberTimestamp string `json:"sequenceNumberTimestamp"`
}

// ParameterReference is a parameter value set on a device.
type ParameterReference struct {
	ParameterRefID string `json:"parameterRefId"`
	Value          string `json:"value"`
}

// CommunicationReference is a communication object instance of a device.
type CommunicationReference struct {
	RefID         string       `json:"refId"`
	Text          string       `json:"text"`
	Description   string       `json:"description"`
	DatapointType string       `json:"datapointType"`
	ReadFlag      bool         `json:"readFlag"`
	TransmitFlag  bool         `json:"transmitFlag"`
	UpdateFlag    bool         `json:"updateFlag"`
	WriteFlag     bool         `json:"writeFlag"`
	Priority      string       `json:"priority"`
	IsActive      bool         `json:"isActive"`
	ChannelID     string       `json:"channelId"`
	Connectors    []*Connector `json:"connectors"`
}

// Connector links a communication object to group addresses.
type Connector struct {
	Send    []*GroupAddressLink `json:"send"`
	Receive []*GroupAddressLink `json:"receive"`
}

// GroupAddressLink is a Send or Receive target of a Connector.
type GroupAddressLink struct {
	GroupAddressRefID string `json:"groupAddressRefId"`
}

// BuildingPart is a node of the recursive building forest.
type BuildingPart struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Type             string             `json:"type"`
	DefaultLine      string             `json:"defaultLine"`
	DeviceReferences []*DeviceReference `json:"deviceReferences"`
	Functions        []*Function        `json:"functions"`
	BuildingParts    []*BuildingPart    `json:"buildingParts"`
}

// BuildingTypeBuilding is the kind of a top-level BuildingPart.
const BuildingTypeBuilding = "Building"

// DeviceReference places a device inside a BuildingPart.
type DeviceReference struct {
	DeviceRefID string `json:"deviceRefId"`
}

// Function is a building function (e.g. a light or a blind).
type Function struct {
	ID                     string                   `json:"id"`
	Name                   string                   `json:"name"`
	Type                   string                   `json:"type"`
	GroupAddressReferences []*GroupAddressReference `json:"groupAddressReferences"`
}

// GroupAddressReference links a Function to a group address.
type GroupAddressReference struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	GroupAddressRefID string `json:"groupAddressRefId"`
}

// GroupAddresses holds the recursive group range forest.
type GroupAddresses struct {
	GroupRanges []*GroupRange `json:"groupRanges"`
}

// GroupRange is a node of the group address hierarchy.
type GroupRange struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RangeStart *int   `json:"rangeStart,omitempty"`
	RangeEnd   *int   `json:"rangeEnd,omitempty"`

	// PassThroughLineCoupler is fixed when the range is created: it is set
	// explicitly or inherited from the enclosing range.
	PassThroughLineCoupler bool `json:"passThroughLineCoupler"`

	GroupAddresses []*GroupAddress `json:"groupAddresses"`
	GroupRanges    []*GroupRange   `json:"groupRanges"`
}

// GroupAddress is a single group address of a GroupRange.
type GroupAddress struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Address                *int   `json:"address,omitempty"`
	Description            string `json:"description"`
	DatapointType          string `json:"datapointType"`
	PassThroughLineCoupler bool   `json:"passThroughLineCoupler"`
	Central                bool   `json:"central"`
}

// ProductFamily is a Hardware entry; it groups the products sharing one hardware.
type ProductFamily struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	BusCurrent   *float64     `json:"busCurrent,omitempty"`
	SerialNumber string       `json:"serialNumber"`
	Flags        ProductFlags `json:"flags"`
	Products     []*Product   `json:"products"`

	OriginalManufacturerRefID string `json:"originalManufacturerRefId,omitempty"`
	ManufacturerRefID         string `json:"manufacturerRefId,omitempty"`
	ApplicationProgramRefID   string `json:"applicationProgramRefId,omitempty"`
}

// ProductFlags are the capability flags of a hardware entry.
type ProductFlags struct {
	IsAccessory             bool `json:"isAccessory"`
	IsPowerSupply           bool `json:"isPowerSupply"`
	IsChoke                 bool `json:"isChoke"`
	IsCoupler               bool `json:"isCoupler"`
	IsPowerLineRepeater     bool `json:"isPowerLineRepeater"`
	IsPowerLineSignalFilter bool `json:"isPowerLineSignalFilter"`
	IsCable                 bool `json:"isCable"`
	IsIPEnabled             bool `json:"isIpEnabled"`
	HasApplicationProgram   bool `json:"hasApplicationProgram"`
	HasApplicationProgram2  bool `json:"hasApplicationProgram2"`
	HasIndividualAddress    bool `json:"hasIndividualAddress"`
	NoDownloadWithoutPlugin bool `json:"noDownloadWithoutPlugin"`
}

// Product is an orderable product of a ProductFamily.
type Product struct {
	ID                 string `json:"id"`
	Text               string `json:"text"`
	VisibleDescription string `json:"visibleDescription"`
	OrderNumber        string `json:"orderNumber"`

	// Family is set only on the detached copies returned by Project.Products.
	Family *ProductFamily `json:"family,omitempty"`
}

// Manufacturer is an entry of the manufacturer table.
type Manufacturer struct {
	ID                string `json:"id"`
	KNXManufacturerID string `json:"knxManufacturerId"`
	Name              string `json:"name"`
}

// DatapointType is an entry of the datapoint type table.
type DatapointType struct {
	ID        string              `json:"id"`
	Number    *int                `json:"number,omitempty"`
	Name      string              `json:"name"`
	Text      string              `json:"text"`
	SizeInBit *int                `json:"sizeInBit,omitempty"`
	Subtypes  []*DatapointSubtype `json:"subtypes"`
}

// DatapointSubtype is a subtype of a DatapointType.
type DatapointSubtype struct {
	ID     string `json:"id"`
	Number *int   `json:"number,omitempty"`
	Name   string `json:"name"`
	Text   string `json:"text"`

	// Parent is set only on the detached copies returned by Project.DatapointSubtypes.
	Parent *DatapointType `json:"parent,omitempty"`
}

// MediumType is an entry of the medium type table.
type MediumType struct {
	ID                  string `json:"id"`
	Number              *int   `json:"number,omitempty"`
	Name                string `json:"name"`
	Text                string `json:"text"`
	DomainAddressLength *int   `json:"domainAddressLength,omitempty"`
}

// ApplicationProgram is an entry of the application program table.
type ApplicationProgram struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Number            *int   `json:"number,omitempty"`
	Version           string `json:"version"`
	ProgramType       string `json:"programType"`
	MaskVersion       string `json:"maskVersion"`
	ManufacturerRefID string `json:"manufacturerRefId,omitempty"`
}

// MaskVersion is an entry of the mask version table.
type MaskVersion struct {
	ID              string `json:"id"`
	MaskVersion     *int   `json:"maskVersion,omitempty"`
	Name            string `json:"name"`
	ManagementModel string `json:"managementModel"`

	UnloadedIndividualAddress *int `json:"unloadedIndividualAddress,omitempty"`
	MaxIndividualAddress      *int `json:"maxIndividualAddress,omitempty"`
	MaxGroupAddress           *int `json:"maxGroupAddress,omitempty"`

	MediumTypeRefID      string `json:"mediumTypeRefId,omitempty"`
	OtherMediumTypeRefID string `json:"otherMediumTypeRefId,omitempty"`

	Resources                []*Resource `json:"resources"`
	CompatibleMaskVersionIDs []string    `json:"compatibleMaskVersionIds"`
}

// Resource is a memory or property resource of a mask version.
type Resource struct {
	Name   string `json:"name"`
	Access string `json:"access"`

	// Location.
	AddressSpace       string `json:"addressSpace,omitempty"`
	StartAddress       *int   `json:"startAddress,omitempty"`
	PtrResource        string `json:"ptrResource,omitempty"`
	InterfaceObjectRef *int   `json:"interfaceObjectRef,omitempty"`
	PropertyID         *int   `json:"propertyId,omitempty"`
	Occurrence         *int   `json:"occurrence,omitempty"`

	// Type.
	Length  *int   `json:"length,omitempty"`
	Flavour string `json:"flavour,omitempty"`

	// Access rights.
	ReadRights  string `json:"readRights,omitempty"`
	WriteRights string `json:"writeRights,omitempty"`
}
