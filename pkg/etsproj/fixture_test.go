package etsproj

import (
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const workdir = "/work"

const projectXML = `<?xml version="1.0" encoding="utf-8"?>
<KNX xmlns="http://knx.org/xml/project/20" CreatedBy="ETS5" ToolVersion="5.7.1093.38570">
  <Project Id="P-0001">
    <ProjectInformation Name="Home" GroupAddressStyle="ThreeLevel" Guid="6a1f" CompletionStatus="Editing"/>
  </Project>
</KNX>`

const topologyXML = `<?xml version="1.0" encoding="utf-8"?>
<KNX xmlns="http://knx.org/xml/project/20">
  <Project Id="P-0001">
    <Installations>
      <Installation Name="">
        <Topology>
          <Area Id="P-0001-0_A-1" Name="Backbone" Address="1">
            <Line Id="P-0001-0_L-1" Name="Floor" Address="1" MediumTypeRefId="MT-0">
              <DeviceInstance Id="P-0001-0_DI-1" Name="Switch" Address="1" ProductRefId="M-0083_H-1-O0001_P-1" SerialNumber="AAEC" ApplicationProgramLoaded="true" ParametersLoaded="1" LastUsedAPDULength="15" ReadMaxAPDULength="x">
                <Security SequenceNumber="42" SequenceNumberTimestamp="2020-01-01T00:00:00Z"/>
                <ParameterInstanceRefs>
                  <ParameterInstanceRef RefId="M-0083_A-0001_P-1" Value="3"/>
                </ParameterInstanceRefs>
                <ComObjectInstanceRefs>
                  <ComObjectInstanceRef RefId="O-1_R-1" DatapointType="DPST-1-1" WriteFlag="Enabled" IsActive="true">
                    <Connectors>
                      <Send GroupAddressRefId="P-0001-0_GA-1"/>
                      <Receive GroupAddressRefId="P-0001-0_GA-2"/>
                    </Connectors>
                  </ComObjectInstanceRef>
                </ComObjectInstanceRefs>
              </DeviceInstance>
              <DeviceInstance Id="P-0001-0_DI-2" Name="Dimmer" Address="12"/>
            </Line>
          </Area>
          <UnassignedDevices>
            <DeviceInstance Id="P-0001-0_DI-3" Name="Spare"/>
          </UnassignedDevices>
        </Topology>
        <Buildings>
          <BuildingPart Id="P-0001-0_BP-1" Name="House" Type="Building">
            <BuildingPart Id="P-0001-0_BP-2" Name="Kitchen" Type="Room">
              <DeviceInstanceRef RefId="P-0001-0_DI-1"/>
              <Function Id="P-0001-0_F-1" Name="Light" Type="SwitchableLight">
                <GroupAddressRef Id="P-0001-0_F-1_GR-1" Name="on/off" Role="SwitchOnOff" RefId="P-0001-0_GA-1"/>
              </Function>
            </BuildingPart>
          </BuildingPart>
        </Buildings>
        <Trades>
          <Trade Id="P-0001-0_T-1" Name="Lights">
            <DeviceInstanceRef RefId="P-0001-0_DI-2"/>
          </Trade>
        </Trades>
        <GroupAddresses>
          <GroupRanges>
            <GroupRange Id="P-0001-0_GR-1" Name="Lights" RangeStart="1" RangeEnd="2047">
              <GroupRange Id="P-0001-0_GR-2" Name="Switching" RangeStart="256" RangeEnd="511" Unfiltered="true">
                <GroupAddress Id="P-0001-0_GA-1" Name="Kitchen on/off" Address="257" DatapointType="DPST-1-1"/>
              </GroupRange>
              <GroupAddress Id="P-0001-0_GA-2" Name="Central off" Address="1" Central="true"/>
            </GroupRange>
          </GroupRanges>
        </GroupAddresses>
      </Installation>
    </Installations>
  </Project>
</KNX>`

const hardwareXML = `<?xml version="1.0" encoding="utf-8"?>
<KNX xmlns="http://knx.org/xml/project/20">
  <ManufacturerData>
    <Manufacturer RefId="M-0083">
      <Hardware>
        <Hardware Id="M-0083_H-1" Name="Switch actuator" BusCurrent="10.5" SerialNumber="AKS" HasApplicationProgram="true" HasIndividualAddress="1">
          <Products>
            <Product Id="M-0083_H-1-O0001_P-1" Text="AKS-0416" OrderNumber="AKS-0416.03"/>
          </Products>
          <Hardware2Programs>
            <Hardware2Program Id="M-0083_H-1_HP-1">
              <ApplicationProgramRef RefId="M-0083_A-0001"/>
            </Hardware2Program>
          </Hardware2Programs>
        </Hardware>
      </Hardware>
    </Manufacturer>
  </ManufacturerData>
</KNX>`

const masterXML = `<?xml version="1.0" encoding="utf-8"?>
<KNX xmlns="http://knx.org/xml/project/20">
  <MasterData>
    <DatapointTypes>
      <DatapointType Id="DPT-1" Number="1" Name="1.xxx" Text="1-bit" SizeInBit="1">
        <DatapointSubtypes>
          <DatapointSubtype Id="DPST-1-1" Number="1" Name="DPT_Switch" Text="switch"/>
        </DatapointSubtypes>
      </DatapointType>
    </DatapointTypes>
    <MediumTypes>
      <MediumType Id="MT-0" Number="0" Name="TP" Text="Twisted Pair" DomainAddressLength="2"/>
    </MediumTypes>
    <MaskVersions>
      <MaskVersion Id="MV-0701" MaskVersion="1793" Name="System 7" ManagementModel="Bim112" MediumTypeRefId="MT-0">
        <DownwardCompatibleMasks>
          <DownwardCompatibleMask RefId="MV-0705"/>
        </DownwardCompatibleMasks>
        <HawkConfigurationData>
          <Features>
            <Feature Name="MaxGroupAddress" Value="254"/>
            <Feature Name="Unknown" Value="1"/>
          </Features>
          <Resources>
            <Resource Name="DeviceManufacturerId" Access="InterfaceObject">
              <Location AddressSpace="SystemProperty" InterfaceObjectRef="0" PropertyID="12"/>
              <ResourceType Length="2" Flavour="Manufacturer"/>
              <AccessRights Read="Configuration" Write="None"/>
            </Resource>
          </Resources>
          <Procedures>
            <Procedure ProcedureType="Load">
              <LdCtrlCompareProp>
                <Location AddressSpace="Stray"/>
              </LdCtrlCompareProp>
            </Procedure>
          </Procedures>
        </HawkConfigurationData>
      </MaskVersion>
    </MaskVersions>
    <Manufacturers>
      <Manufacturer Id="M-0083" KnxManufacturerId="131" Name="MDT"/>
    </Manufacturers>
  </MasterData>
</KNX>`

const applicationXML = `<?xml version="1.0" encoding="utf-8"?>
<KNX xmlns="http://knx.org/xml/project/20">
  <ManufacturerData>
    <Manufacturer RefId="M-0083">
      <ApplicationPrograms>
        <ApplicationProgram Id="M-0083_A-0001" Name="Switch" ApplicationNumber="1" ApplicationVersion="17" ProgramType="ApplicationProgram" MaskVersion="MV-0701"/>
      </ApplicationPrograms>
    </Manufacturer>
  </ManufacturerData>
</KNX>`

// archiveFiles returns the documents of a complete archive, keyed by
// workdir-relative path.
func archiveFiles() map[string]string {
	return map[string]string{
		"P-0001/project.xml":       projectXML,
		"P-0001/0.xml":             topologyXML,
		"M-0083/Hardware.xml":      hardwareXML,
		"M-0083/M-0083_A-0001.xml": applicationXML,
		"knx_master.xml":           masterXML,
	}
}

// memWorkdir writes files below workdir on a MemMapFs. An empty body removes
// the file from the set.
func memWorkdir(t *testing.T, overrides map[string]string) afero.Fs {
	t.Helper()
	files := archiveFiles()
	for name, body := range overrides {
		if body == "" {
			delete(files, name)
			continue
		}
		files[name] = body
	}

	fs := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, path.Join(workdir, name), []byte(body), 0644))
	}
	return fs
}
