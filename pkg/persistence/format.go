package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/advancedknx/ets-proj-parser/pkg/project"
)

// Format is an export encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for format names and file extensions that have
// no encoding.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatCBOR, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// cborEncMode produces deterministic output, so identical projects export to
// identical files.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create export CBOR encoder mode: %v", err))
	}
}

// Encode writes p to w. indent only affects JSON and YAML output.
func Encode(w io.Writer, p *project.Project, format Format, indent bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		if indent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(p)

	case FormatCBOR:
		return cborEncMode.NewEncoder(w).Encode(p)

	case FormatYAML:
		m, err := project.Serialize(p)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		if indent {
			enc.SetIndent(2)
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Decode reads a project from r.
func Decode(r io.Reader, format Format) (*project.Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	switch format {
	case FormatJSON:
		d := json.NewDecoder(bytes.NewReader(data))
		if err := d.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}

	case FormatCBOR:
		p := &project.Project{}
		if err := cbor.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("decode cbor: %w", err)
		}
		p.Topology.NormalizeAddresses()
		return p, nil

	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return project.Deserialize(m)
}
