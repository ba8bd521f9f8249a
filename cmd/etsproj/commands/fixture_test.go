package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/advancedknx/ets-proj-parser/pkg/config"
)

var projectFiles = map[string]string{
	"P-0001/project.xml": `<?xml version="1.0" encoding="utf-8"?>
<KNX CreatedBy="ETS5" ToolVersion="5.7.1093.38570">
  <Project Id="P-0001">
    <ProjectInformation Name="Home" GroupAddressStyle="ThreeLevel"/>
  </Project>
</KNX>`,
	"P-0001/0.xml": `<?xml version="1.0" encoding="utf-8"?>
<KNX>
  <Project Id="P-0001">
    <Installations>
      <Installation Name="">
        <Topology>
          <Area Id="A-1" Name="Backbone" Address="1">
            <Line Id="L-1" Name="Floor" Address="1">
              <DeviceInstance Id="DI-1" Name="Switch" Address="1" SerialNumber="AAEC" ParametersLoaded="true"/>
              <DeviceInstance Id="DI-2" Name="Dimmer" Address="2"/>
            </Line>
          </Area>
        </Topology>
        <Buildings>
          <BuildingPart Id="BP-1" Name="House" Type="Building">
            <BuildingPart Id="BP-2" Name="Kitchen" Type="Room">
              <DeviceInstanceRef RefId="DI-1"/>
            </BuildingPart>
          </BuildingPart>
        </Buildings>
        <GroupAddresses>
          <GroupRanges>
            <GroupRange Id="GR-1" Name="Lights" RangeStart="1" RangeEnd="2047">
              <GroupAddress Id="GA-1" Name="Kitchen on/off" Address="257" DatapointType="DPST-1-1"/>
              <GroupAddress Id="GA-2" Name="Central off" Address="1" Central="true"/>
            </GroupRange>
          </GroupRanges>
        </GroupAddresses>
      </Installation>
    </Installations>
  </Project>
</KNX>`,
	"M-0083/Hardware.xml": `<?xml version="1.0" encoding="utf-8"?>
<KNX>
  <ManufacturerData>
    <Manufacturer RefId="M-0083">
      <Hardware>
        <Hardware Id="M-0083_H-1" Name="Switch actuator"/>
      </Hardware>
    </Manufacturer>
  </ManufacturerData>
</KNX>`,
	"knx_master.xml": `<?xml version="1.0" encoding="utf-8"?>
<KNX>
  <MasterData>
    <Manufacturers>
      <Manufacturer Id="M-0083" KnxManufacturerId="131" Name="MDT"/>
    </Manufacturers>
  </MasterData>
</KNX>`,
}

// writeProjectDir writes an extracted project and returns its directory.
func writeProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range projectFiles {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Workdir = filepath.Join(t.TempDir(), "work")
	return cfg
}

// writeExport parses the test project and saves it as name.
func writeExport(t *testing.T, name string) string {
	t.Helper()
	output := filepath.Join(t.TempDir(), name)
	var buf bytes.Buffer
	_, err := RunParse(context.Background(), ParseOptions{
		Source: writeProjectDir(t),
		Output: output,
		Config: testConfig(t),
	}, &buf)
	if err != nil {
		t.Fatalf("RunParse failed: %v", err)
	}
	return output
}
