package etsproj

import (
	"log/slog"

	"github.com/advancedknx/ets-proj-parser/pkg/builder"
	"github.com/advancedknx/ets-proj-parser/pkg/project"
	"github.com/advancedknx/ets-proj-parser/pkg/version"
	"github.com/advancedknx/ets-proj-parser/pkg/xmlstream"
)

// projectInfoHandler maps P-*/project.xml. KNX and Project precede
// ProjectInformation, so their attributes are held until it appears.
func projectInfoHandler(b *builder.Builder, logger *slog.Logger) *xmlstream.Mux {
	var application, toolVersion, projectID string

	return xmlstream.NewMux().
		Open("KNX", func(e xmlstream.Element) error {
			application = e.Attr("CreatedBy")
			toolVersion = e.Attr("ToolVersion")
			checkToolVersion(logger, application, toolVersion)
			return nil
		}).
		Open("Project", func(e xmlstream.Element) error {
			projectID = e.Attr("Id")
			return nil
		}).
		Open("ProjectInformation", func(e xmlstream.Element) error {
			b.SetProjectInformation(project.ProjectInformation{
				ID:                projectID,
				Name:              e.Attr("Name"),
				EtsVersion:        project.EtsVersion{Application: application, Version: toolVersion},
				GroupAddressStyle: e.Attr("GroupAddressStyle"),
				DeviceCount:       e.Attr("DeviceCount"),
				LastModified:      e.Attr("LastModified"),
				Comment:           e.Attr("Comment"),
				CodePage:          e.Attr("CodePage"),
				LastUsedPuid:      e.Attr("LastUsedPuid"),
				GUID:              e.Attr("Guid"),
				CompletionStatus:  e.Attr("CompletionStatus"),
				ProjectStart:      e.Attr("ProjectStart"),
			})
			return nil
		})
}

// checkToolVersion warns about tool versions the element mapping was not
// written for. The build continues either way.
func checkToolVersion(logger *slog.Logger, application, s string) {
	if s == "" {
		return
	}
	v, err := version.Parse(s)
	if err != nil {
		logger.Warn("Unreadable tool version", slog.String("created_by", application), slog.String("tool_version", s))
		return
	}
	if !v.Supported() {
		logger.Warn("Unsupported tool version", slog.String("created_by", application), slog.String("tool_version", v.String()))
	}
}

// topologyHandler maps P-*/0.xml.
func topologyHandler(b *builder.Builder) *xmlstream.Mux {
	return xmlstream.NewMux().
		// Topology
		Open("Area", func(e xmlstream.Element) error {
			b.AddArea(e.Attr("Id"), e.Attr("Name"), e.Attr("Address"))
			return nil
		}).
		Open("Line", func(e xmlstream.Element) error {
			return b.AddLine(e.Attr("Id"), e.Attr("Name"), e.Attr("Address"), e.Attr("MediumTypeRefId"))
		}).
		Open("UnassignedDevices", func(xmlstream.Element) error {
			return b.StartUnassigned()
		}).
		Close("UnassignedDevices", b.StopUnassigned).
		Open("DeviceInstance", func(e xmlstream.Element) error {
			return b.AddDevice(project.Device{
				ID:          e.Attr("Id"),
				Name:        e.Attr("Name"),
				Description: e.Attr("Description"),
				Comment:     e.Attr("Comment"),
				Address:     e.Attr("Address"),

				IsCommunicationObjectVisibilityCalculated: e.Bool("IsCommunicationObjectVisibilityCalculated"),

				ProgrammingStatus: project.ProgrammingStatus{
					SerialNumber:             e.Attr("SerialNumber"),
					ApplicationProgramLoaded: e.Bool("ApplicationProgramLoaded"),
					CommunicationPartLoaded:  e.Bool("CommunicationPartLoaded"),
					IndividualAddressLoaded:  e.Bool("IndividualAddressLoaded"),
					ParametersLoaded:         e.Bool("ParametersLoaded"),
					MediumConfigLoaded:       e.Bool("MediumConfigLoaded"),
					LastUsedAPDULength:       e.Int("LastUsedAPDULength"),
					MaxReadAPDULength:        e.Int("ReadMaxAPDULength"),
					LastModified:             e.Attr("LastModified"),
					LastDownload:             e.Attr("LastDownload"),
				},
				ProductRefID:          e.Attr("ProductRefId"),
				Hardware2ProgramRefID: e.Attr("Hardware2ProgramRefId"),
			})
		}).
		Open("Security", func(e xmlstream.Element) error {
			return b.SetSecurity(e.Int("SequenceNumber"), e.Attr("SequenceNumberTimestamp"))
		}).
		Open("ParameterInstanceRef", func(e xmlstream.Element) error {
			return b.AddParameterReference(e.Attr("RefId"), e.Attr("Value"))
		}).
		Open("ComObjectInstanceRef", func(e xmlstream.Element) error {
			return b.AddCommunicationReference(project.CommunicationReference{
				RefID:         e.Attr("RefId"),
				Text:          e.Attr("Text"),
				Description:   e.Attr("Description"),
				DatapointType: e.Attr("DatapointType"),
				ReadFlag:      e.Bool("ReadFlag"),
				TransmitFlag:  e.Bool("TransmitFlag"),
				UpdateFlag:    e.Bool("UpdateFlag"),
				WriteFlag:     e.Bool("WriteFlag"),
				Priority:      e.Attr("Priority"),
				IsActive:      e.Bool("IsActive"),
				ChannelID:     e.Attr("ChannelId"),
			})
		}).
		Open("Connectors", func(xmlstream.Element) error {
			return b.AddConnector()
		}).
		Open("Send", func(e xmlstream.Element) error {
			return b.AddSend(e.Attr("GroupAddressRefId"))
		}).
		Open("Receive", func(e xmlstream.Element) error {
			return b.AddReceive(e.Attr("GroupAddressRefId"))
		}).

		// Buildings. The reference elements also occur outside the building
		// forest (trades); there they are not part of the hierarchy.
		Open("BuildingPart", func(e xmlstream.Element) error {
			return b.OpenBuildingPart(e.Attr("Id"), e.Attr("Name"), e.Attr("Type"), e.Attr("DefaultLine"))
		}).
		Close("BuildingPart", b.CloseBuildingPart).
		Open("DeviceInstanceRef", func(e xmlstream.Element) error {
			if b.BuildingDepth() == 0 {
				return nil
			}
			return b.AddDeviceReference(e.Attr("RefId"))
		}).
		Open("Function", func(e xmlstream.Element) error {
			if b.BuildingDepth() == 0 {
				return nil
			}
			return b.AddFunction(e.Attr("Id"), e.Attr("Name"), e.Attr("Type"))
		}).
		Open("GroupAddressRef", func(e xmlstream.Element) error {
			if b.BuildingDepth() == 0 {
				return nil
			}
			return b.AddGroupAddressReference(e.Attr("Id"), e.Attr("Name"), e.Attr("Role"), e.Attr("RefId"))
		}).

		// Group addresses
		Open("GroupRange", func(e xmlstream.Element) error {
			return b.OpenGroupRange(e.Attr("Id"), e.Attr("Name"), e.Int("RangeStart"), e.Int("RangeEnd"), e.Bool("Unfiltered"))
		}).
		Close("GroupRange", b.CloseGroupRange).
		Open("GroupAddress", func(e xmlstream.Element) error {
			return b.AddGroupAddress(project.GroupAddress{
				ID:            e.Attr("Id"),
				Name:          e.Attr("Name"),
				Address:       e.Int("Address"),
				Description:   e.Attr("Description"),
				DatapointType: e.Attr("DatapointType"),
				Central:       e.Bool("Central"),
			})
		})
}

// hardwareHandler maps one M-*/Hardware.xml.
func hardwareHandler(b *builder.Builder) *xmlstream.Mux {
	var manufacturer string

	return xmlstream.NewMux().
		Open("Manufacturer", func(e xmlstream.Element) error {
			manufacturer = e.Attr("RefId")
			return nil
		}).
		Open("Hardware", func(e xmlstream.Element) error {
			// The Hardware list container carries no attributes.
			if len(e.Attrs) == 0 {
				return nil
			}
			b.AddProductFamily(project.ProductFamily{
				ID:           e.Attr("Id"),
				Name:         e.Attr("Name"),
				BusCurrent:   e.Float("BusCurrent"),
				SerialNumber: e.Attr("SerialNumber"),
				Flags: project.ProductFlags{
					IsAccessory:             e.Bool("IsAccessory"),
					IsPowerSupply:           e.Bool("IsPowerSupply"),
					IsChoke:                 e.Bool("IsChoke"),
					IsCoupler:               e.Bool("IsCoupler"),
					IsPowerLineRepeater:     e.Bool("IsPowerLineRepeater"),
					IsPowerLineSignalFilter: e.Bool("IsPowerLineSignalFilter"),
					IsCable:                 e.Bool("IsCable"),
					IsIPEnabled:             e.Bool("IsIPEnabled"),
					HasApplicationProgram:   e.Bool("HasApplicationProgram"),
					HasApplicationProgram2:  e.Bool("HasApplicationProgram2"),
					HasIndividualAddress:    e.Bool("HasIndividualAddress"),
					NoDownloadWithoutPlugin: e.Bool("NoDownloadWithoutPlugin"),
				},
				OriginalManufacturerRefID: e.Attr("OriginalManufacturer"),
				ManufacturerRefID:         manufacturer,
			})
			return nil
		}).
		Open("Product", func(e xmlstream.Element) error {
			return b.AddProduct(project.Product{
				ID:                 e.Attr("Id"),
				Text:               e.Attr("Text"),
				VisibleDescription: e.Attr("VisibleDescription"),
				OrderNumber:        e.Attr("OrderNumber"),
			})
		}).
		Open("ApplicationProgramRef", func(e xmlstream.Element) error {
			return b.SetProductFamilyApplicationProgram(e.Attr("RefId"))
		})
}

// masterDataHandler maps knx_master.xml.
func masterDataHandler(b *builder.Builder) *xmlstream.Mux {
	return xmlstream.NewMux().
		Open("Manufacturer", func(e xmlstream.Element) error {
			b.AddManufacturer(project.Manufacturer{
				ID:                e.Attr("Id"),
				KNXManufacturerID: e.Attr("KnxManufacturerId"),
				Name:              e.Attr("Name"),
			})
			return nil
		}).
		Open("DatapointType", func(e xmlstream.Element) error {
			b.AddDatapointType(project.DatapointType{
				ID:        e.Attr("Id"),
				Number:    e.Int("Number"),
				Name:      e.Attr("Name"),
				Text:      e.Attr("Text"),
				SizeInBit: e.Int("SizeInBit"),
			})
			return nil
		}).
		Open("DatapointSubtype", func(e xmlstream.Element) error {
			return b.AddDatapointSubtype(project.DatapointSubtype{
				ID:     e.Attr("Id"),
				Number: e.Int("Number"),
				Name:   e.Attr("Name"),
				Text:   e.Attr("Text"),
			})
		}).
		Open("MediumType", func(e xmlstream.Element) error {
			b.AddMediumType(project.MediumType{
				ID:                  e.Attr("Id"),
				Number:              e.Int("Number"),
				Name:                e.Attr("Name"),
				Text:                e.Attr("Text"),
				DomainAddressLength: e.Int("DomainAddressLength"),
			})
			return nil
		}).
		Open("MaskVersion", func(e xmlstream.Element) error {
			b.AddMaskVersion(project.MaskVersion{
				ID:                   e.Attr("Id"),
				MaskVersion:          e.Int("MaskVersion"),
				Name:                 e.Attr("Name"),
				ManagementModel:      e.Attr("ManagementModel"),
				MediumTypeRefID:      e.Attr("MediumTypeRefId"),
				OtherMediumTypeRefID: e.Attr("OtherMediumTypeRefId"),
			})
			return nil
		}).
		Open("DownwardCompatibleMask", func(e xmlstream.Element) error {
			return b.AddCompatibleMaskVersion(e.Attr("RefId"))
		}).
		Open("Feature", func(e xmlstream.Element) error {
			return b.SetMaskVersionFeature(builder.MaskVersionFeature(e.Attr("Name")), e.Int("Value"))
		}).
		Open("Resource", func(e xmlstream.Element) error {
			return b.OpenResource(e.Attr("Name"), e.Attr("Access"))
		}).
		Close("Resource", func() error {
			b.CloseResource()
			return nil
		}).
		Open("Location", func(e xmlstream.Element) error {
			_, err := b.SetResourceLocation(builder.ResourceLocation{
				AddressSpace:       e.Attr("AddressSpace"),
				StartAddress:       nonZero(e.Int("StartAddress")),
				PtrResource:        e.Attr("PtrResource"),
				InterfaceObjectRef: nonZero(e.Int("InterfaceObjectRef")),
				PropertyID:         nonZero(e.Int("PropertyID")),
				Occurrence:         nonZero(e.Int("Occurrence")),
			})
			return err
		}).
		Open("ResourceType", func(e xmlstream.Element) error {
			return b.SetResourceType(e.Int("Length"), e.Attr("Flavour"))
		}).
		Open("AccessRights", func(e xmlstream.Element) error {
			return b.SetResourceAccessRights(e.Attr("Read"), e.Attr("Write"))
		})
}

// applicationHandler maps one M-*/M-*.xml application program file.
func applicationHandler(b *builder.Builder) *xmlstream.Mux {
	var manufacturer string

	return xmlstream.NewMux().
		Open("Manufacturer", func(e xmlstream.Element) error {
			manufacturer = e.Attr("RefId")
			return nil
		}).
		Open("ApplicationProgram", func(e xmlstream.Element) error {
			b.AddApplicationProgram(project.ApplicationProgram{
				ID:                e.Attr("Id"),
				Name:              e.Attr("Name"),
				Number:            e.Int("ApplicationNumber"),
				Version:           e.Attr("ApplicationVersion"),
				ProgramType:       e.Attr("ProgramType"),
				MaskVersion:       e.Attr("MaskVersion"),
				ManufacturerRefID: manufacturer,
			})
			return nil
		})
}

// nonZero drops zero location values; 0 means "not set" in the master data.
func nonZero(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}
